package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-extractor/internal/pipeline"
)

func sampleResults() []pipeline.Result {
	return []pipeline.Result{
		{
			Source:       "a.pdf",
			TemplateName: "ACME Invoice",
			Confidence:   1,
			Fields:       map[string]string{"invoice_number": "A-1", "total": "10.50"},
		},
		{
			Source:       "b.pdf",
			TemplateName: "Northwind Traders Simple Invoice",
			Confidence:   0.5,
			Fields:       map[string]string{"invoice_number": "INV-1001", "due_date": "February 5, 2023"},
		},
		{
			Source: "c.pdf", // no template matched
			Fields: map[string]string{},
		},
	}
}

func TestColumns(t *testing.T) {
	columns := Columns(sampleResults())
	assert.Equal(t, []string{"source", "template", "confidence", "due_date", "invoice_number", "total"}, columns,
		"core columns first, remaining columns sorted")
}

func TestRow(t *testing.T) {
	columns := Columns(sampleResults())
	row := Row(sampleResults()[1], columns)
	assert.Equal(t, []string{"b.pdf", "Northwind Traders Simple Invoice", "0.50", "February 5, 2023", "INV-1001", ""}, row,
		"missing fields render as empty cells")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	svc := NewService(nil)
	require.NoError(t, svc.WriteCSV(&buf, sampleResults()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4, "header plus one row per result")
	assert.Equal(t, "source,template,confidence,due_date,invoice_number,total", lines[0])
	assert.Equal(t, "a.pdf,ACME Invoice,1.00,,A-1,10.50", lines[1])
	assert.Equal(t, `b.pdf,Northwind Traders Simple Invoice,0.50,"February 5, 2023",INV-1001,`, lines[2])
	assert.Equal(t, "c.pdf,,0.00,,,", lines[3])
}

func TestXLSXBytes(t *testing.T) {
	svc := NewService(nil)
	b, err := svc.XLSXBytes(sampleResults())
	require.NoError(t, err)
	assert.NotEmpty(t, b)
	// XLSX files are zip archives
	assert.Equal(t, []byte{'P', 'K'}, b[:2])
}
