package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// pdfToText pulls the embedded text layer. Pages are delimited by \f in
// pdftotext output, so the page count is derived from the separator count.
func (e *Extractor) pdfToText(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}
	text = string(out)
	return text, 1 + strings.Count(text, "\f"), nil, nil
}

// pdfToOCR rasterizes the PDF with pdftoppm and runs tesseract over each
// rendered page. Per-page OCR failures become warnings rather than aborting
// the whole document.
func (e *Extractor) pdfToOCR(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	tmpDir, err := os.MkdirTemp("", "inv-pp-*")
	if err != nil {
		return "", 0, nil, fmt.Errorf("create temp dir for pdf render: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			e.logger.Warn("failed to remove temp dir", "dir", tmpDir, "error", rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	if _, errb, runErr := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", strconv.Itoa(e.cfg.DPI), "-png", path, prefix); runErr != nil {
		return "", 0, []string{string(errb)}, runErr
	}

	// pdftoppm names output page-1.png, page-2.png, ... in page order.
	images, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(images)
	if e.cfg.MaxPages > 0 && len(images) > e.cfg.MaxPages {
		images = images[:e.cfg.MaxPages]
	}
	if len(images) == 0 {
		return "", 0, []string{"pdftoppm produced no images"}, fmt.Errorf("no pages rendered")
	}

	var buf strings.Builder
	var warns []string
	for _, img := range images {
		pageText, pageWarns, ocrErr := e.tesseractOCR(ctx, img)
		if ocrErr != nil {
			warns = append(warns, ocrErr.Error())
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\f\n")
		}
		buf.WriteString(pageText)
		warns = append(warns, pageWarns...)
	}
	return buf.String(), len(images), warns, nil
}
