package ocr

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/invoice-extractor/constants"
)

func (e *Extractor) extractImage(ctx context.Context, path string) (Result, error) {
	txt, warns, err := e.tesseractOCR(ctx, path)
	if err != nil {
		return Result{SourceType: constants.IMAGE, Warnings: warns}, err
	}
	txt = Normalize(txt)

	// Confidence blends tesseract's own word confidence (when TSV mode is on)
	// with a content heuristic. A failed TSV pass degrades to heuristic-only.
	var tessConf float32
	if e.cfg.EnableTSVConfidence {
		c, w, tsvErr := e.tesseractTSVConfidence(ctx, path)
		if tsvErr != nil {
			warns = append(warns, tsvErr.Error())
		} else {
			tessConf = c
			warns = append(warns, w...)
		}
	}

	conf := heuristicConfidence(txt)
	if tessConf > 0 {
		conf = 0.7*tessConf + 0.3*conf
	}
	if conf > 1.0 {
		conf = 1.0
	}

	return Result{
		Text:       txt,
		Pages:      1,
		SourceType: constants.IMAGE,
		Method:     "image-ocr",
		Language:   e.cfg.Language,
		Warnings:   warns,
		Confidence: conf,
	}, nil
}

// tesseractArgs builds the shared argument list for both plain-text and TSV runs.
func (e *Extractor) tesseractArgs(path string) []string {
	args := []string{path, "stdout", "-l", e.cfg.Language}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	return args
}

func (e *Extractor) tesseractOCR(ctx context.Context, path string) (string, []string, error) {
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, e.tesseractArgs(path)...)
	if err != nil {
		return "", []string{string(errb)}, fmt.Errorf("tesseract: %w", err)
	}
	// strip obvious box-drawing line noise before the text hits the matcher
	return reBoxNoise.ReplaceAllString(string(out), ""), nil, nil
}

// tesseractTSVConfidence reruns tesseract in TSV mode and averages the per-word
// conf column into a 0..1 score. Rows with conf -1 are layout markers, not words.
func (e *Extractor) tesseractTSVConfidence(ctx context.Context, path string) (float32, []string, error) {
	args := append(e.tesseractArgs(path), "tsv")
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return 0, []string{string(errb)}, fmt.Errorf("tesseract TSV: %w", err)
	}

	var sum, n float64
	for i, ln := range strings.Split(string(out), "\n") {
		if i == 0 || ln == "" {
			continue // header or trailing blank
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < 12 {
			continue
		}
		confStr := cols[len(cols)-1]
		if confStr == "" || confStr == "-1" {
			continue
		}
		if v, perr := strconv.ParseFloat(confStr, 64); perr == nil {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, nil, nil
	}
	return float32(sum / n / 100.0), nil, nil
}
