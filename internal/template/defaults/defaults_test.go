package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedLibraryLoads(t *testing.T) {
	doc, err := Document()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(doc.Templates), 2)

	repo, err := Repository()
	require.NoError(t, err)
	assert.Equal(t, len(doc.Templates), repo.Len())
}

func TestNorthwindSampleExtraction(t *testing.T) {
	text := `
Northwind Traders
Invoice Number: INV-1001
Invoice Date: January 5, 2023
Due Date: February 5, 2023
Total Due: $1,234.56
`
	repo, err := Repository()
	require.NoError(t, err)

	best := repo.BestTemplate(text)
	require.NotNil(t, best)
	assert.Equal(t, "Northwind Traders Simple Invoice", best.Name())

	fields, err := best.Extract(text)
	require.NoError(t, err)
	assert.Equal(t, "INV-1001", fields["invoice_number"])
	assert.Equal(t, "1234.56", fields["total"])
	assert.Equal(t, "January 5, 2023", fields["invoice_date"])
	assert.Equal(t, "February 5, 2023", fields["due_date"])
}
