package service

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/config"
)

func TestProcessorRun(t *testing.T) {
	messageDir := t.TempDir()
	outputDir := t.TempDir()

	// Two files covering a year boundary; the second file's account has
	// no balance reported on its second message.
	fileA := "【工商银行】您尾号1234账户于12月30日收入100.00元,余额100.00元\n" +
		"【工商银行】您尾号1234账户于1月2日收入50.00元,余额150.00元\n" +
		"双十二大促,12月12日全场五折,回T退订\n"
	fileB := "【建设银行】您尾号5678账户于12月31日收入500.00元,余额500.00元\n" +
		"【建设银行】您尾号5678账户于1月5日收入20.00元\n"
	require.NoError(t, os.WriteFile(filepath.Join(messageDir, "a.txt"), []byte(fileA), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(messageDir, "b.txt"), []byte(fileB), 0o644))

	cfg := &config.Config{
		MessageDir:  messageDir,
		OutputDir:   outputDir,
		InitialYear: 2022,
		Keywords:    []string{"银行"},
	}

	p := NewProcessor(cfg, log.New(io.Discard))
	records, err := p.Run()
	require.NoError(t, err)
	require.Len(t, records, 4)

	// Chronological across files, promotional line filtered out.
	assert.Equal(t, "2022-12-30", records[0].ISODate())
	assert.Equal(t, "2022-12-31", records[1].ISODate())
	assert.Equal(t, "2023-01-02", records[2].ISODate())
	assert.Equal(t, "2023-01-05", records[3].ISODate())

	assert.Equal(t, "1234", records[0].AccountNumber)
	assert.Equal(t, "5678", records[1].AccountNumber)

	// Account 1234 is consistent; 5678's second message had no balance.
	assert.Empty(t, records[2].Note)
	assert.Contains(t, records[3].Note, "没有余额信息")
	assert.Equal(t, "520.00", records[3].Balance.Value.StringFixed(2))

	require.NoError(t, p.WriteReports(records))
	_, err = os.Stat(filepath.Join(outputDir, "账户1234.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outputDir, "账户5678.csv"))
	assert.NoError(t, err)
}

func TestProcessorRunFailsOnUnparsableAmount(t *testing.T) {
	messageDir := t.TempDir()
	content := "【工商银行】您尾号1234账户于10月12日发生一笔交易,详询银行客服\n"
	require.NoError(t, os.WriteFile(filepath.Join(messageDir, "a.txt"), []byte(content), 0o644))

	cfg := &config.Config{
		MessageDir:  messageDir,
		OutputDir:   t.TempDir(),
		InitialYear: 2022,
		Keywords:    []string{"银行"},
	}

	_, err := NewProcessor(cfg, log.New(io.Discard)).Run()
	assert.Error(t, err)
}

func TestProcessorRunEmptyDirectory(t *testing.T) {
	cfg := &config.Config{
		MessageDir:  t.TempDir(),
		OutputDir:   t.TempDir(),
		InitialYear: 2022,
		Keywords:    []string{"银行"},
	}

	records, err := NewProcessor(cfg, log.New(io.Discard)).Run()
	require.NoError(t, err)
	assert.Empty(t, records)
}
