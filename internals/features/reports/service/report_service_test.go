package service

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []map[string]any {
	return []map[string]any{
		{"admission_no": "ADM-001", "name": "Grace Wanjiku", "balance": 8500},
		{"admission_no": "ADM-002", "name": "Brian Otieno", "balance": 0},
	}
}

func TestGenerateCSVHeaderMatchesRecordKeys(t *testing.T) {
	records := sampleRecords()
	f, err := Generate("Fee Balances", FormatCSV, records)
	require.NoError(t, err)
	assert.Equal(t, "fee-balances.csv", f.Name)
	assert.Equal(t, "text/csv", f.ContentType)

	rows, err := csv.NewReader(bytes.NewReader(f.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(records)+1)
	assert.Len(t, rows[0], len(records[0]), "one CSV column per record key")
	assert.Equal(t, []string{"admission_no", "balance", "name"}, rows[0])
	assert.Equal(t, "Grace Wanjiku", rows[1][2])
}

func TestGenerateJSON(t *testing.T) {
	f, err := Generate("Fee Balances", FormatJSON, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, "fee-balances.json", f.Name)
	assert.Contains(t, string(f.Data), "ADM-001")
}

func TestGeneratePDFAndXLSXProduceNonEmptyFiles(t *testing.T) {
	pdf, err := Generate("Fee Balances", FormatPDF, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, "fee-balances.pdf", pdf.Name)
	assert.True(t, bytes.HasPrefix(pdf.Data, []byte("%PDF")))

	xlsx, err := Generate("Fee Balances", FormatXLSX, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, "fee-balances.xlsx", xlsx.Name)
	assert.NotEmpty(t, xlsx.Data)
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	_, err := Generate("Fee Balances", "docx", sampleRecords())
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
