package service

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/config"
	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/extractor"
	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/filter"
	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/intake"
	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/models"
	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/report"
	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/resolver"
	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/verifier"
	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/vocab"
)

// Processor wires the pipeline together: intake, year resolution,
// chronological merge, keyword filter, extraction, verification.
type Processor struct {
	config *config.Config
	logger *log.Logger
}

// NewProcessor creates a processor over the given configuration.
func NewProcessor(cfg *config.Config, logger *log.Logger) *Processor {
	return &Processor{
		config: cfg,
		logger: logger,
	}
}

// Run executes the pipeline and returns the verified ledger.
//
// Error containment is deliberately asymmetric: an unreadable source
// file is logged and skipped inside the intake reader, but a message
// that fails extraction aborts the whole run. A silently dropped message
// would corrupt every running balance after it.
func (p *Processor) Run() ([]*models.Transaction, error) {
	voc := vocab.Default()
	if p.config.VocabFile != "" {
		loaded, err := vocab.Load(p.config.VocabFile)
		if err != nil {
			return nil, err
		}
		voc = loaded
	}

	sources, err := intake.New(p.logger).ReadDirectory(p.config.MessageDir)
	if err != nil {
		return nil, err
	}

	var messages []models.DatedMessage
	for _, src := range sources {
		resolved := resolver.New(p.config.InitialYear).Resolve(src.Lines)
		p.logger.Debug("resolved source", "file", src.Name, "messages", len(resolved))
		messages = append(messages, resolved...)
	}

	sorted, err := resolver.SortByDate(messages)
	if err != nil {
		return nil, err
	}

	kept := filter.Keep(sorted, p.config.Keywords)
	p.logger.Info("filtered messages", "total", len(sorted), "kept", len(kept))

	ext := extractor.New(voc)
	records := make([]*models.Transaction, 0, len(kept))
	for _, msg := range kept {
		record, err := ext.Extract(msg.Text, msg.Year)
		if err != nil {
			return nil, fmt.Errorf("extraction failed: %w", err)
		}
		records = append(records, record)
	}

	verified, status := verifier.New(p.logger).Verify(records)
	if status != "" {
		p.logger.Info(status)
	}
	return verified, nil
}

// WriteReports renders the verified ledger into per-account CSV files.
func (p *Processor) WriteReports(records []*models.Transaction) error {
	return report.NewWriter(p.logger).WriteAccountCSVs(records, p.config.OutputDir)
}
