package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/invoice-extractor/internal/export"
	"github.com/joseph-ayodele/invoice-extractor/internal/ocr"
	"github.com/joseph-ayodele/invoice-extractor/internal/pipeline"
	"github.com/joseph-ayodele/invoice-extractor/internal/template"
	"github.com/joseph-ayodele/invoice-extractor/internal/template/defaults"
)

var extractFlags struct {
	output        string
	templateFiles []string
	noDefaults    bool
	language      string
	dpi           int
	threshold     float64
	workers       int
	showRawText   bool
}

var extractCmd = &cobra.Command{
	Use:   "extract <inputs...>",
	Short: "Extract structured data from invoice documents into CSV or XLSX",
	Long: `Run OCR over each input document (PDF, PNG, JPEG, TXT, ...), pick the
best-matching template from the library and extract its fields. Results are
written as CSV, or XLSX when the output file ends in .xlsx.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.StringVarP(&extractFlags.output, "output", "o", "", "Destination CSV or XLSX file (required)")
	f.StringArrayVarP(&extractFlags.templateFiles, "templates", "t", nil, "Extra template document (JSON or YAML). Repeatable.")
	f.BoolVar(&extractFlags.noDefaults, "no-default-templates", false, "Do not load the built-in template library")
	f.StringVar(&extractFlags.language, "language", "", "Language hint passed to tesseract (default from INVOICE_OCR_LANG)")
	f.IntVar(&extractFlags.dpi, "dpi", 0, "DPI used when rasterizing PDF files (default from INVOICE_OCR_DPI)")
	f.Float64Var(&extractFlags.threshold, "confidence-threshold", -1, "Minimum template confidence required before extraction")
	f.IntVar(&extractFlags.workers, "workers", 0, "Number of concurrent documents (default from INVOICE_WORKERS)")
	f.BoolVar(&extractFlags.showRawText, "show-raw-text", false, "Print the OCR'd text to stdout for debugging")
	_ = extractCmd.MarkFlagRequired("output")
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger := slog.Default()

	repo, err := loadRepository(extractFlags.templateFiles, !extractFlags.noDefaults)
	if err != nil {
		return err
	}
	if repo.Len() == 0 {
		return fmt.Errorf("no templates loaded: supply --templates or drop --no-default-templates")
	}

	for _, input := range args {
		if _, err := os.Stat(input); err != nil {
			return fmt.Errorf("input file %s does not exist", input)
		}
	}

	ocrCfg := ocr.Config{
		Pdftotext:   cfg.OCR.Pdftotext,
		Pdftoppm:    cfg.OCR.Pdftoppm,
		Tesseract:   cfg.OCR.Tesseract,
		Language:    cfg.OCR.Language,
		DPI:         cfg.OCR.DPI,
		MaxPages:    cfg.OCR.MaxPages,
		TessdataDir: cfg.OCR.TessdataDir,
	}
	if extractFlags.language != "" {
		ocrCfg.Language = extractFlags.language
	}
	if extractFlags.dpi > 0 {
		ocrCfg.DPI = extractFlags.dpi
	}

	threshold := cfg.Extract.ConfidenceThreshold
	if extractFlags.threshold >= 0 {
		threshold = extractFlags.threshold
	}
	workers := cfg.Extract.Workers
	if extractFlags.workers > 0 {
		workers = extractFlags.workers
	}

	extractor := pipeline.NewExtractor(repo, ocr.NewExtractor(ocrCfg, logger), logger,
		pipeline.WithConfidenceThreshold(threshold),
		pipeline.WithWorkers(workers),
		pipeline.WithQueueSize(cfg.Extract.QueueSize),
	)

	results := extractor.ProcessBatch(cmd.Context(), args)

	if extractFlags.showRawText {
		for _, r := range results {
			fmt.Println(strings.Repeat("=", 80))
			fmt.Printf("Raw text for %s:\n", r.Source)
			fmt.Println(r.RawText)
		}
	}

	svc := export.NewService(logger)
	if strings.EqualFold(filepath.Ext(extractFlags.output), ".xlsx") {
		err = svc.ExportXLSX(results, extractFlags.output)
	} else {
		err = svc.ExportCSV(results, extractFlags.output)
	}
	if err != nil {
		return err
	}

	summary := pipeline.Summarize(results)
	fmt.Printf("Extraction complete. Saved %d record(s) to %s.\n", summary.Documents, extractFlags.output)
	fmt.Printf("Matched %d, failed %d, grand total %s.\n", summary.Matched, summary.Failed, summary.GrandTotal.StringFixed(2))
	return nil
}

// loadRepository builds the template library: the embedded defaults unless
// excluded, extended by any supplied template documents, in order.
func loadRepository(paths []string, useDefaults bool) (*template.Repository, error) {
	repo := template.NewRepository()
	if useDefaults {
		builtin, err := defaults.Repository()
		if err != nil {
			return nil, err
		}
		repo.Extend(builtin.Templates())
	}
	for _, path := range paths {
		extra, err := template.LoadRepository(path)
		if err != nil {
			return nil, fmt.Errorf("load templates from %s: %w", path, err)
		}
		repo.Extend(extra.Templates())
	}
	return repo, nil
}
