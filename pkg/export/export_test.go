package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klasora/console-go/internal/models"
)

func sampleDataset() models.ReportDataset {
	return models.ReportDataset{
		Title:   "Enrollment",
		Headers: []string{"admission_no", "full_name"},
		Rows: []map[string]string{
			{"admission_no": "GW-1000", "full_name": "Amara Wijaya"},
			{"admission_no": "GW-1001", "full_name": "Bayu Wijaya"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"admission_no", "full_name"}, records[0])
	assert.Equal(t, []string{"GW-1000", "Amara Wijaya"}, records[1])
}

func TestCSVExporterMissingCellLeftEmpty(t *testing.T) {
	data := sampleDataset()
	data.Rows = append(data.Rows, map[string]string{"admission_no": "GW-1002"})

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"GW-1002", ""}, records[3])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(models.ReportDataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output is a PDF document")
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(models.ReportDataset{})
	require.Error(t, err)
}
