// Package export renders batches of extraction results as CSV or XLSX.
// Column layout is the union of all field names across the batch: the core
// columns first, the rest sorted.
package export

import (
	"sort"
	"strconv"

	"github.com/joseph-ayodele/invoice-extractor/internal/pipeline"
)

// Core columns every export starts with, in this order.
var coreColumns = []string{"source", "template", "confidence"}

// Columns computes the export header for a batch: core columns followed by
// the sorted union of every result's field names.
func Columns(results []pipeline.Result) []string {
	seen := map[string]struct{}{}
	for _, c := range coreColumns {
		seen[c] = struct{}{}
	}
	var extra []string
	for _, r := range results {
		for name := range r.Fields {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(append([]string{}, coreColumns...), extra...)
}

// Row renders one result against the given column layout. Missing fields
// become empty cells.
func Row(r pipeline.Result, columns []string) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		switch col {
		case "source":
			row[i] = r.Source
		case "template":
			row[i] = r.TemplateName
		case "confidence":
			row[i] = strconv.FormatFloat(r.Confidence, 'f', 2, 64)
		default:
			row[i] = r.Fields[col]
		}
	}
	return row
}
