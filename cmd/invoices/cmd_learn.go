package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/learn"
	"github.com/joseph-ayodele/invoice-extractor/internal/ocr"
	"github.com/joseph-ayodele/invoice-extractor/internal/template"
)

var learnFlags struct {
	textInput bool
	language  string
	name      string
	keywords  []string
	fields    []string
	output    string
	printText bool
}

var learnCmd = &cobra.Command{
	Use:   "learn <document>",
	Short: "Generate a template definition from one example invoice",
	Long: `Analyze a sample invoice and derive a template from known field values,
supplied as --field NAME=VALUE pairs. The document is OCR'd unless
--text-input marks it as pre-OCR'd UTF-8 text. Without --output the learned
template document is printed to stdout; with --output it is merged into the
given template document, creating it if needed.`,
	Args: cobra.ExactArgs(1),
	RunE: runLearn,
}

func init() {
	f := learnCmd.Flags()
	f.BoolVar(&learnFlags.textInput, "text-input", false, "Treat the document as pre-OCR'd UTF-8 text")
	f.StringVar(&learnFlags.language, "language", "", "Language hint for tesseract")
	f.StringVar(&learnFlags.name, "name", "", "Template name (default: the document file's stem)")
	f.StringArrayVar(&learnFlags.keywords, "keyword", nil, "Keyword used to match this template. Repeatable.")
	f.StringArrayVar(&learnFlags.fields, "field", nil, "Field sample as NAME=VALUE. Repeatable.")
	f.StringVarP(&learnFlags.output, "output", "o", "", "Template document to create or update")
	f.BoolVar(&learnFlags.printText, "print-text", false, "Print the OCR text to stdout for inspection")
}

func runLearn(cmd *cobra.Command, args []string) error {
	samples, err := collectFieldSamples(learnFlags.fields)
	if err != nil {
		return err
	}

	documentPath := args[0]
	if _, err := os.Stat(documentPath); err != nil {
		return fmt.Errorf("document %s does not exist", documentPath)
	}

	text, err := readDocumentText(cmd, documentPath)
	if err != nil {
		return err
	}
	if learnFlags.printText {
		fmt.Println(text)
	}

	name := learnFlags.name
	if name == "" {
		base := filepath.Base(documentPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	def, err := learn.LearnTemplate(text, name, learnFlags.keywords, samples)
	if err != nil {
		return err
	}

	if learnFlags.output == "" {
		doc := &template.Document{Templates: []template.Definition{def}}
		data, err := doc.Encode(".json")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	repo := template.NewRepository()
	if _, err := os.Stat(learnFlags.output); err == nil {
		repo, err = template.LoadRepository(learnFlags.output)
		if err != nil {
			return err
		}
	}
	learned, err := def.Build()
	if err != nil {
		return err
	}
	repo.Add(learned)
	if err := template.SaveRepository(repo, learnFlags.output); err != nil {
		return err
	}
	fmt.Printf("Template saved to %s\n", learnFlags.output)
	return nil
}

func collectFieldSamples(raw []string) (map[string]string, error) {
	samples := make(map[string]string, len(raw))
	for _, arg := range raw {
		name, value, found := strings.Cut(arg, "=")
		if !found {
			return nil, fmt.Errorf("field definitions must use the NAME=VALUE syntax, got %q", arg)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("field name cannot be empty in %q", arg)
		}
		samples[name] = strings.TrimSpace(value)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("at least one --field argument is required")
	}
	return samples, nil
}

func readDocumentText(cmd *cobra.Command, path string) (string, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	if learnFlags.textInput || constants.MapExtToFormat(ext) == constants.TXT {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read document: %w", err)
		}
		return string(data), nil
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
	if learnFlags.language != "" {
		ocrCfg.Language = learnFlags.language
	}
	res, err := ocr.NewExtractor(ocrCfg, slog.Default()).Extract(cmd.Context(), path)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
