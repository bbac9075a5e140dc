package learn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/common"
	"github.com/joseph-ayodele/invoice-extractor/internal/template"
)

const acmeText = `
ACME Industrial Supplies
Invoice #: 1013-1016-1
Invoice Date: 10/16/2023
Total Due: $1,234.00
`

func applyLearned(t *testing.T, lf LearnedField, text string) (string, bool) {
	t.Helper()
	spec, err := template.NewFieldSpec(lf.Pattern, lf.Group, lf.Transform, lf.Required)
	require.NoError(t, err)
	tmpl := template.NewRegexTemplate("t", nil, map[string]template.FieldSpec{lf.Name: spec})
	fields, err := tmpl.Extract(text)
	require.NoError(t, err)
	v, ok := fields[lf.Name]
	return v, ok
}

func TestDeriveField(t *testing.T) {
	t.Run("derived rule re-extracts its own sample", func(t *testing.T) {
		lf, err := DeriveField(acmeText, "invoice_number", "1013-1016-1")
		require.NoError(t, err)
		assert.Equal(t, 1, lf.Group)
		assert.True(t, lf.Required)
		assert.Equal(t, constants.TransformText, lf.Transform)

		got, ok := applyLearned(t, lf, acmeText)
		require.True(t, ok)
		assert.Equal(t, "1013-1016-1", got)
	})

	t.Run("currency rule captures with or without symbol", func(t *testing.T) {
		lf, err := DeriveField(acmeText, "total", "$1,234.00")
		require.NoError(t, err)
		assert.Equal(t, constants.TransformCurrency, lf.Transform)

		got, ok := applyLearned(t, lf, acmeText)
		require.True(t, ok)
		assert.Equal(t, "1234.00", got)

		bare := "ACME Industrial Supplies\nTotal Due: 987.65\n"
		got, ok = applyLearned(t, lf, bare)
		require.True(t, ok)
		assert.Equal(t, "987.65", got)
	})

	t.Run("case insensitive sample search", func(t *testing.T) {
		text := "Reference\nCode: INV-77\n"
		lf, err := DeriveField(text, "code", "inv-77")
		require.NoError(t, err)

		got, ok := applyLearned(t, lf, text)
		require.True(t, ok)
		assert.Equal(t, "INV-77", got)
	})

	t.Run("label on the previous line becomes the prefix", func(t *testing.T) {
		text := "Amount Due\n$452.10\n"
		lf, err := DeriveField(text, "total", "$452.10")
		require.NoError(t, err)

		other := "Amount Due\n$99.00\n"
		got, ok := applyLearned(t, lf, other)
		require.True(t, ok)
		assert.Equal(t, "99.00", got)
	})

	t.Run("sample absent from every line", func(t *testing.T) {
		_, err := DeriveField(acmeText, "total", "$9,999.99")
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrNotFound))
	})

	t.Run("empty sample", func(t *testing.T) {
		_, err := DeriveField(acmeText, "total", "   ")
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrInvalidInput))
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := DeriveField(acmeText, "", "1013-1016-1")
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrInvalidInput))
	})
}

// Re-deriving a field using the extracted value as the new sample must
// reproduce the original value pattern and transform.
func TestDeriveFieldStableUnderReDerivation(t *testing.T) {
	samples := map[string]string{
		"invoice_number": "1013-1016-1",
		"invoice_date":   "10/16/2023",
		"total":          "$1,234.00",
	}
	for name, sample := range samples {
		t.Run(name, func(t *testing.T) {
			first, err := DeriveField(acmeText, name, sample)
			require.NoError(t, err)

			extracted, ok := applyLearned(t, first, acmeText)
			require.True(t, ok)

			pattern1, transform1 := ClassifyValue(sample)
			pattern2, transform2 := ClassifyValue(extracted)
			assert.Equal(t, pattern1, pattern2)
			assert.Equal(t, transform1, transform2)
		})
	}
}
