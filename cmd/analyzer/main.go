package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/config"
	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/models"
	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/report"
	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/service"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "Reconstruct a verified ledger from bank SMS notification logs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Parse, verify and write per-account CSV reports",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger(cmd)

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		processor := service.NewProcessor(cfg, logger)
		records, err := processor.Run()
		if err != nil {
			return err
		}

		if dump, _ := cmd.Flags().GetBool("dump"); dump {
			pp.Println(records)
		}

		if err := processor.WriteReports(records); err != nil {
			return err
		}

		printSummary(records)
		return nil
	},
}

var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Print monthly income/outcome totals per account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger(cmd)

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		records, err := service.NewProcessor(cfg, logger).Run()
		if err != nil {
			return err
		}

		for _, row := range report.MonthlyTotals(records) {
			fmt.Printf("%-16s %s  income %12s  outcome %12s\n",
				row.Account, row.Month, row.Income.StringFixed(2), row.Outcome.StringFixed(2))
		}
		return nil
	},
}

func newLogger(cmd *cobra.Command) *log.Logger {
	opts := log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "analyzer",
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		opts.Level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, opts)
}

func printSummary(records []*models.Transaction) {
	flaggedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")) // red
	cleanStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))   // gray

	flagged := 0
	for _, r := range records {
		if r.Note == "" {
			continue
		}
		flagged++
		line := fmt.Sprintf("%s | %-12s | %10s | %s",
			r.ISODate(), r.AccountNumber, r.Amount.StringFixed(2), r.Note)
		fmt.Println(flaggedStyle.Render("! " + line))
	}

	if flagged == 0 {
		fmt.Println(cleanStyle.Render(fmt.Sprintf("All %d transaction(s) verified clean", len(records))))
		return
	}
	fmt.Printf("\n%d of %d transaction(s) carry a discrepancy note\n", flagged, len(records))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("messages", "", "Directory of notification exports")
	rootCmd.PersistentFlags().String("output", "", "Report output directory")
	rootCmd.PersistentFlags().Int("year", 0, "Year the earliest export starts in")
	rootCmd.PersistentFlags().String("vocab", "", "Direction vocabulary rules file")

	processCmd.Flags().Bool("dump", false, "Pretty-print extracted records before writing reports")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(totalsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
