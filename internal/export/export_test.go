package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/zhubert/studydesk/internal/models"
)

func sampleApps() []models.Application {
	return []models.Application{
		{
			ApplicationID: "123456/2025", StudentName: "Ada", University: "ETH Zurich",
			Program: "MSc CS", CountryCode: "ch", Intake: "Fall", Year: 2025,
			Status: "Offer", StatusColor: "#43a047", Starred: true,
			Date: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			ApplicationID: "654321/2026", StudentName: "Grace", University: "Universität Wien",
			Program: "MA", CountryCode: "AT", Intake: "Winter", Year: 2026,
			Status: "Pending", StatusColor: "not-a-colour",
		},
	}
}

func TestApplicationsDataset(t *testing.T) {
	ds := ApplicationsDataset(sampleApps())

	require.Len(t, ds.Rows, 2)
	assert.Equal(t, ColStatus, ds.ColorColumn)
	assert.Equal(t, "CH", ds.Rows[0][ColCountry])
	assert.Equal(t, "yes", ds.Rows[0][ColStarred])
	assert.Equal(t, "", ds.Rows[1][ColStarred])
	assert.Equal(t, "", ds.Rows[1][ColDate])
	assert.Equal(t, "#43a047", ds.rowColor(0))
	assert.Equal(t, "", ds.rowColor(1), "invalid colours are not applied")
	assert.Equal(t, "", ds.rowColor(5))
}

func TestXLSXExporter_Render(t *testing.T) {
	out, err := NewXLSXExporter().Render(ApplicationsDataset(sampleApps()))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Applications", f.GetSheetName(0))
	rows, err := f.GetRows("Applications")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ColApplicationID, rows[0][0])
	assert.Equal(t, "123456/2025", rows[1][0])
	assert.Equal(t, "Universität Wien", rows[2][2])

	statusCell, _ := excelize.CoordinatesToCellName(7, 2)
	styleID, err := f.GetCellStyle("Applications", statusCell)
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotEmpty(t, style.Fill.Color)
}

func TestXLSXExporter_NoHeaders(t *testing.T) {
	_, err := NewXLSXExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporter_Render(t *testing.T) {
	out, err := NewPDFExporter().Render(ApplicationsDataset(sampleApps()), "Applications")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	_, err = NewPDFExporter().Render(Dataset{}, "")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"xlsx", FormatXLSX, false},
		{".PDF", FormatPDF, false},
		{"csv", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	ds := ApplicationsDataset(sampleApps())

	for _, name := range []string{"out.xlsx", "out.pdf"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, ds))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	assert.Error(t, WriteFile(filepath.Join(dir, "out.txt"), ds))
}

func TestDefaultFileName(t *testing.T) {
	assert.Equal(t, "applications.xlsx", DefaultFileName(FormatXLSX, ""))
	assert.Equal(t, "applications-s1.pdf", DefaultFileName(FormatPDF, "s1"))
	assert.Equal(t, "applications-abc.pdf", DefaultFileName(FormatPDF, "../a b/c"))
}
