// Package pipeline wires OCR, template selection and field extraction into an
// end-to-end document flow. Batch-level resilience lives here: one document's
// extraction failure never stops the rest of the batch.
package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-extractor/internal/async"
	"github.com/joseph-ayodele/invoice-extractor/internal/ocr"
	"github.com/joseph-ayodele/invoice-extractor/internal/template"
)

// DefaultConfidenceThreshold is the minimum template match score required
// before extraction is attempted.
const DefaultConfidenceThreshold = 0.1

// Result is the structured outcome of extracting one document.
type Result struct {
	ID           uuid.UUID
	Source       string
	TemplateName string
	Confidence   float64
	Fields       map[string]string
	RawText      string
	// Err records a per-document failure (OCR or extraction); the batch
	// carries on regardless.
	Err error
}

// Extractor extracts structured data from invoice documents.
type Extractor struct {
	repo      *template.Repository
	ocr       *ocr.Extractor
	threshold float64
	workers   int
	queueSize int
	logger    *slog.Logger
}

type Option func(*Extractor)

func WithConfidenceThreshold(t float64) Option {
	return func(e *Extractor) {
		if t >= 0 {
			e.threshold = t
		}
	}
}

func WithWorkers(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.queueSize = n
		}
	}
}

func NewExtractor(repo *template.Repository, ocrx *ocr.Extractor, logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Extractor{
		repo:      repo,
		ocr:       ocrx,
		threshold: DefaultConfidenceThreshold,
		workers:   4,
		queueSize: 256,
		logger:    logger,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// ExtractFromText selects the best template for text and runs its field
// rules. A best template below the confidence threshold is discarded:
// the result carries no template name and confidence 0. A matched template
// whose extraction fails keeps its fields empty for transparency, with the
// failure recorded on the result.
func (e *Extractor) ExtractFromText(text, source string) Result {
	result := Result{
		ID:      uuid.New(),
		Source:  source,
		Fields:  map[string]string{},
		RawText: text,
	}
	best := e.repo.BestTemplate(text)
	if best == nil {
		return result
	}
	confidence := best.MatchScore(text)
	if confidence < e.threshold {
		e.logger.Debug("pipeline.match.below_threshold",
			"source", source, "template", best.Name(), "confidence", confidence)
		return result
	}
	result.TemplateName = best.Name()
	result.Confidence = confidence

	fields, err := best.Extract(text)
	if err != nil {
		e.logger.Warn("pipeline.extract.failed",
			"source", source, "template", best.Name(), "error", err)
		result.Err = err
		return result
	}
	result.Fields = fields
	return result
}

// ProcessFile runs OCR on one document and extracts its fields.
func (e *Extractor) ProcessFile(ctx context.Context, path string) (Result, error) {
	ocrRes, err := e.ocr.Extract(ctx, path)
	if err != nil {
		e.logger.Error("pipeline.ocr.failed", "path", path, "error", err)
		return Result{ID: uuid.New(), Source: path, Fields: map[string]string{}, Err: err}, err
	}
	e.logger.Info("pipeline.ocr.ok",
		"path", path,
		"method", ocrRes.Method,
		"pages", ocrRes.Pages,
		"ocr_confidence", ocrRes.Confidence,
	)
	res := e.ExtractFromText(ocrRes.Text, path)
	e.logger.Info("pipeline.extract.ok",
		"path", path,
		"template", res.TemplateName,
		"confidence", res.Confidence,
		"fields", len(res.Fields),
	)
	return res, nil
}

// ProcessBatch fans the paths out over a worker queue and returns one result
// per input, in input order. Per-document failures are recorded on their
// result and do not abort the batch.
func (e *Extractor) ProcessBatch(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))
	var mu sync.Mutex

	queue := async.NewBatchQueue(func(ctx context.Context, job async.Job) {
		res, _ := e.ProcessFile(ctx, job.Path)
		mu.Lock()
		results[job.Index] = res
		mu.Unlock()
	}, e.logger,
		async.WithWorkers(e.workers),
		async.WithQueueSize(e.queueSize),
	)

	for i, path := range paths {
		_ = queue.Enqueue(ctx, async.Job{ID: uuid.New(), Index: i, Path: path})
	}
	queue.Shutdown(ctx)
	return results
}
