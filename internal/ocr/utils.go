package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// convertHEICtoPNG renders a HEIC/HEIF file to a temporary PNG so tesseract
// can consume it. The converter binary is picked via ocr.Config.HeicConverter.
//
// Returns (outPath, warnings, cleanup, err). cleanup removes the temp dir and
// is non-nil whenever the dir was created, including on error.
func convertHEICtoPNG(ctx context.Context, r Runner, converter, in string) (string, []string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "inv-heic-*")
	if err != nil {
		return "", nil, nil, fmt.Errorf("create temp dir for HEIC conversion: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }
	out := filepath.Join(tmpDir, "page.png")

	var args []string
	switch converter {
	case "heif-convert", "magick":
		args = []string{in, out}
	case "sips":
		args = []string{"-s", "format", "png", in, "--out", out}
	default:
		return "", nil, cleanup, fmt.Errorf("HEIC not supported: set ocr.Config.HeicConverter to one of: heif-convert | magick | sips")
	}

	if _, errb, runErr := r.Run(ctx, converter, args...); runErr != nil {
		return "", []string{string(errb)}, cleanup, fmt.Errorf("%s failed: %w", converter, runErr)
	}
	if _, statErr := os.Stat(out); statErr != nil {
		return "", nil, cleanup, fmt.Errorf("HEIC conversion produced no output: %v", statErr)
	}
	return out, nil, cleanup, nil
}
