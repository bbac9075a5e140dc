package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joseph-ayodele/invoice-extractor/internal/pipeline"
)

// Service renders extraction results for downstream consumption.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteCSV streams the batch as CSV to w.
func (s *Service) WriteCSV(w io.Writer, results []pipeline.Result) error {
	columns := Columns(results)
	writer := csv.NewWriter(w)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write(Row(r, columns)); err != nil {
			return fmt.Errorf("csv row for %s: %w", r.Source, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("csv flush: %w", err)
	}
	return nil
}

// ExportCSV writes the batch to a CSV file at destination.
func (s *Service) ExportCSV(results []pipeline.Result, destination string) error {
	start := time.Now()
	f, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := s.WriteCSV(f, results); err != nil {
		return err
	}
	s.logger.Info("export.csv.ok",
		"destination", destination,
		"rows", len(results),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
