package pipeline

import (
	"github.com/shopspring/decimal"
)

// totalField is the conventional field name for an invoice's grand total.
const totalField = "total"

// Summary aggregates a batch of extraction results.
type Summary struct {
	Documents  int
	Matched    int
	Failed     int
	GrandTotal decimal.Decimal
	// TotalsByTemplate sums the "total" field per matched template.
	TotalsByTemplate map[string]decimal.Decimal
}

// Summarize folds a batch of results into counts and money totals. Totals are
// summed with decimals, not floats: extracted currency values are already
// normalized to plain "1234.56" strings by the currency transform.
func Summarize(results []Result) Summary {
	s := Summary{
		Documents:        len(results),
		GrandTotal:       decimal.Zero,
		TotalsByTemplate: map[string]decimal.Decimal{},
	}
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		}
		if r.TemplateName == "" {
			continue
		}
		s.Matched++
		raw, ok := r.Fields[totalField]
		if !ok {
			continue
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		s.GrandTotal = s.GrandTotal.Add(amount)
		s.TotalsByTemplate[r.TemplateName] = s.TotalsByTemplate[r.TemplateName].Add(amount)
	}
	return s
}
