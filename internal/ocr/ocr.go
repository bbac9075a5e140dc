// Package ocr turns invoice documents (PDFs, scans, photos) into plain text
// by shelling out to pdftotext, pdftoppm and tesseract. The template engine
// never calls this directly; the pipeline feeds it the resulting text.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/invoice-extractor/constants"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Language string // Tesseract language hint, default "eng"
	DPI      int    // rasterization DPI for scanned PDFs, default 300
	MaxPages int    // 0 = no limit

	TessdataDir   string
	HeicConverter string // "heif-convert" | "magick" | "sips"

	EnableTSVConfidence bool
	PSM                 int // e.g., 6 is good for uniform block of text
	OEM                 int // 1 = LSTM; leave 0 to use default
}

type Result struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.IMAGE | constants.TXT
	Method     string // "pdf-text" | "pdf-ocr" | "image-ocr" | "plain-text"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// minEmbeddedTextLen is the threshold below which a PDF's embedded text layer
// is considered empty (a pure scan) and the rasterize+OCR path is taken.
const minEmbeddedTextLen = 32

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("starting ocr extraction", "path", path, "method", "auto", "ext", ext)
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err := e.extractPDF(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	case constants.IMAGE:
		var warns []string
		if constants.IsHEICExt(ext) {
			out, w, cleanup, err := convertHEICtoPNG(ctx, e.runner, e.cfg.HeicConverter, path)
			warns = append(warns, w...)
			if cleanup != nil {
				defer cleanup()
			}
			if err != nil {
				e.logger.Error("heic conversion failed", "path", path, "error", err)
				return Result{SourceType: constants.IMAGE, Warnings: warns}, err
			}
			path = out
		}
		res, err := e.extractImage(ctx, path)
		res.Duration = time.Since(start)
		res.Warnings = append(res.Warnings, warns...)
		return res, err
	case constants.TXT:
		res, err := e.extractPlainText(path)
		res.Duration = time.Since(start)
		return res, err
	default:
		e.logger.Error("unsupported ocr extension", "extension", ext)
		return Result{}, fmt.Errorf("unsupported extension: %q", ext)
	}
}

// extractPDF prefers the embedded text layer; scanned PDFs without one fall
// back to rasterize+OCR.
func (e *Extractor) extractPDF(ctx context.Context, path string) (Result, error) {
	text, pages, warns, err := e.pdfToText(ctx, path)
	if err == nil && len(strings.TrimSpace(text)) >= minEmbeddedTextLen {
		text = Normalize(text)
		return Result{
			Text:       text,
			Pages:      pages,
			SourceType: constants.PDF,
			Method:     "pdf-text",
			Language:   e.cfg.Language,
			Warnings:   warns,
			Confidence: heuristicConfidence(text),
		}, nil
	}
	if err != nil {
		warns = append(warns, fmt.Sprintf("pdftotext failed, falling back to OCR: %v", err))
	} else {
		warns = append(warns, "pdf has no usable text layer, falling back to OCR")
	}

	text, pages, ocrWarns, err := e.pdfToOCR(ctx, path)
	warns = append(warns, ocrWarns...)
	if err != nil {
		return Result{SourceType: constants.PDF, Warnings: warns}, err
	}
	text = Normalize(text)
	return Result{
		Text:       text,
		Pages:      pages,
		SourceType: constants.PDF,
		Method:     "pdf-ocr",
		Language:   e.cfg.Language,
		Warnings:   warns,
		Confidence: heuristicConfidence(text),
	}, nil
}

// extractPlainText reads pre-OCR'd text straight off disk. Useful for tests
// and for re-running extraction on saved OCR output.
func (e *Extractor) extractPlainText(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{SourceType: constants.TXT}, fmt.Errorf("read text file: %w", err)
	}
	return Result{
		Text:       string(data),
		Pages:      1,
		SourceType: constants.TXT,
		Method:     "plain-text",
		Confidence: 1.0,
	}, nil
}
