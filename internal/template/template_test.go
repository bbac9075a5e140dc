package template

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/common"
)

func mustFieldSpec(t *testing.T, pattern string, group int, transform constants.Transform, required bool) FieldSpec {
	t.Helper()
	spec, err := NewFieldSpec(pattern, group, transform, required)
	require.NoError(t, err)
	return spec
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		text     string
		want     float64
	}{
		{"no keywords never match", nil, "anything at all", 0},
		{"all keywords present", []string{"acme", "invoice"}, "ACME Industrial\nInvoice #: 1", 1},
		{"half present", []string{"acme", "statement"}, "ACME Industrial", 0.5},
		{"none present", []string{"acme"}, "Northwind Traders", 0},
		{"case insensitive", []string{"northwind traders"}, "NORTHWIND TRADERS", 1},
		{"overlapping keywords each count", []string{"total", "total due"}, "Total Due: $5", 1},
		{"empty keyword counts in denominator only", []string{"acme", ""}, "acme", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := NewRegexTemplate("t", tt.keywords, nil)
			got := tmpl.MatchScore(tt.text)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestExtract(t *testing.T) {
	text := "ACME Industrial\nInvoice #: 1013-1016-1\nInvoice Date: 10/16/2023\nTotal Due: $1,234.00\n"

	t.Run("extracts and transforms fields", func(t *testing.T) {
		tmpl := NewRegexTemplate("acme", []string{"acme"}, map[string]FieldSpec{
			"invoice_number": mustFieldSpec(t, `invoice\s*#\s*[:#\-]*\s*([A-Za-z0-9-]+)`, 1, constants.TransformText, true),
			"total":          mustFieldSpec(t, `total\s+due\s*[:#\-]*\s*\$?\s*(-?[0-9][0-9,]*(?:\.[0-9]{1,2})?)`, 1, constants.TransformCurrency, true),
			"invoice_date":   mustFieldSpec(t, `invoice\s+date\s*[:#\-]*\s*([A-Za-z0-9,/\- ]+)`, 1, constants.TransformDate, false),
		})
		fields, err := tmpl.Extract(text)
		require.NoError(t, err)
		assert.Equal(t, "1013-1016-1", fields["invoice_number"])
		assert.Equal(t, "1234.00", fields["total"], "currency transform strips comma and symbol")
		assert.Equal(t, "10/16/2023", fields["invoice_date"])
	})

	t.Run("optional miss omits the key", func(t *testing.T) {
		tmpl := NewRegexTemplate("acme", nil, map[string]FieldSpec{
			"po_number": mustFieldSpec(t, `po\s+number\s*:\s*(\d+)`, 1, constants.TransformText, false),
		})
		fields, err := tmpl.Extract(text)
		require.NoError(t, err)
		_, present := fields["po_number"]
		assert.False(t, present, "missing optional field must be absent, not empty")
	})

	t.Run("required miss fails the whole extraction", func(t *testing.T) {
		tmpl := NewRegexTemplate("acme", nil, map[string]FieldSpec{
			"invoice_number": mustFieldSpec(t, `invoice\s*#\s*[:#\-]*\s*([A-Za-z0-9-]+)`, 1, constants.TransformText, false),
			"vat_id":         mustFieldSpec(t, `vat\s+id\s*:\s*(\w+)`, 1, constants.TransformText, true),
		})
		fields, err := tmpl.Extract(text)
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrRequiredFieldMissing))
		assert.Nil(t, fields)
	})

	t.Run("nonexistent capture group is a malformed pattern", func(t *testing.T) {
		tmpl := NewRegexTemplate("acme", nil, map[string]FieldSpec{
			"total": mustFieldSpec(t, `total\s+due`, 1, constants.TransformText, false),
		})
		_, err := tmpl.Extract(text)
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrMalformedPattern))
	})
}

func TestApplyTransform(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		transform constants.Transform
		want      string
	}{
		{"currency strips commas and dollar sign", " $1,234.56 ", constants.TransformCurrency, "1234.56"},
		{"number strips commas", "1,234,567.8", constants.TransformNumber, "1234567.8"},
		{"date collapses newlines", "January 5,\n2023", constants.TransformDate, "January 5, 2023"},
		{"text trims only", "  INV-1001  ", constants.TransformText, "INV-1001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyTransform(tt.value, tt.transform))
		})
	}
}

func TestNewFieldSpecRejectsBadPattern(t *testing.T) {
	_, err := NewFieldSpec(`([`, 1, constants.TransformText, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrMalformedTemplate))
}
