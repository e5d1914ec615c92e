package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/models"
)

// csvHeader is the column layout of the per-account reports. Chinese
// headers because the reports are read next to the original messages.
var csvHeader = []string{
	"日期", "转出方", "接收方", "我方账号", "收入/支出",
	"金额", "余额", "银行名称", "备注", "预期余额",
}

// Writer renders verified transactions into per-account CSV files.
type Writer struct {
	logger *log.Logger
}

// NewWriter returns a report writer.
func NewWriter(logger *log.Logger) *Writer {
	return &Writer{logger: logger}
}

// WriteAccountCSVs writes one CSV per account into outputDir, named
// 账户<number>.csv. An I/O failure on one account's file is logged and
// the remaining accounts are still written. Every record handed in is
// expected to have been through the verifier.
func (w *Writer) WriteAccountCSVs(records []*models.Transaction, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	byAccount := make(map[string][]*models.Transaction)
	var accounts []string
	for _, r := range records {
		if _, ok := byAccount[r.AccountNumber]; !ok {
			accounts = append(accounts, r.AccountNumber)
		}
		byAccount[r.AccountNumber] = append(byAccount[r.AccountNumber], r)
	}

	for _, account := range accounts {
		path := filepath.Join(outputDir, fileName(account))
		if err := writeAccountFile(path, byAccount[account]); err != nil {
			w.logger.Error("failed to write report", "file", path, "error", err)
			continue
		}
		w.logger.Info("wrote report", "file", path, "records", len(byAccount[account]))
	}
	return nil
}

// fileName keeps the blank-account placeholder from producing a file
// named "账户 .csv".
func fileName(account string) string {
	account = strings.TrimSpace(account)
	if account == "" {
		account = "unknown"
	}
	return fmt.Sprintf("账户%s.csv", account)
}

func writeAccountFile(path string, records []*models.Transaction) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer file.Close()

	// UTF-8 BOM so Excel opens the Chinese headers correctly.
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("error writing BOM: %w", err)
	}

	csvWriter := csv.NewWriter(file)
	if err := csvWriter.Write(csvHeader); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, r := range records {
		record := []string{
			r.ISODate(),
			r.From,
			r.To,
			r.AccountNumber,
			r.Direction.String(),
			r.Amount.StringFixed(2),
			r.Balance.String(),
			r.BankName,
			r.Note,
			r.RunningBalance.StringFixed(2),
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("error writing transaction: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
