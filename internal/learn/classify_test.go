package learn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/invoice-extractor/constants"
)

func TestClassifyValue(t *testing.T) {
	tests := []struct {
		name          string
		sample        string
		wantPattern   string
		wantTransform constants.Transform
	}{
		{"currency with symbol", "$1,234.00", `-?[0-9][0-9,]*(?:\.[0-9]{1,2})?`, constants.TransformCurrency},
		{"currency without symbol", "1,234.56", `-?[0-9][0-9,]*(?:\.[0-9]{1,2})?`, constants.TransformCurrency},
		{"negative currency", "$-50.25", `-?[0-9][0-9,]*(?:\.[0-9]{1,2})?`, constants.TransformCurrency},
		{"number with long decimals", "3.14159", `-?[0-9][0-9,]*(?:\.[0-9]+)?`, constants.TransformNumber},
		{"slash date", "10/16/2023", `[A-Za-z0-9,/\- ]+`, constants.TransformDate},
		{"dash date", "10-16-23", `[A-Za-z0-9,/\- ]+`, constants.TransformDate},
		{"long month date", "January 5, 2023", `[A-Za-z0-9,/\- ]+`, constants.TransformDate},
		{"alphanumeric token", "INV-1001", `[A-Za-z0-9-]+`, constants.TransformText},
		{"alphanumeric with punctuation", "PO # 42/A", `[A-Za-z0-9 .,/#-]+`, constants.TransformText},
		{"anything else", "hello@example.com!", `[^\n]+`, constants.TransformText},
		{"empty sample", "   ", `[\S\s]*`, constants.TransformText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, transform := ClassifyValue(tt.sample)
			assert.Equal(t, tt.wantPattern, pattern)
			assert.Equal(t, tt.wantTransform, transform)
		})
	}
}

// A bare integer satisfies both the currency and the number shape; the
// currency check runs first, so it classifies as currency.
func TestClassifyValueCurrencyBeforeNumber(t *testing.T) {
	_, transform := ClassifyValue("1234")
	assert.Equal(t, constants.TransformCurrency, transform)
}
