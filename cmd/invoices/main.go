// invoices extracts structured field data from scanned invoice documents and
// learns new templates from labeled examples.
//
// Usage:
//
//	invoices extract <inputs...> -o results.csv [--templates extra.json] [--no-default-templates]
//	invoices learn <document> --field NAME=VALUE [--field ...] [--keyword ...] [--output templates.json]
//	invoices templates list [document]
//	invoices templates validate <document>
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/invoice-extractor/internal/common"
)

var cfg *common.Config

var rootCmd = &cobra.Command{
	Use:           "invoices",
	Short:         "Extract structured data from invoice documents",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(templatesCmd)
}

func main() {
	_ = godotenv.Load()
	cfg = common.LoadConfig()
	setupLogger(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
