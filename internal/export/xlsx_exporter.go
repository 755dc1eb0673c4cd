package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/zhubert/studydesk/internal/format"
)

// XLSXExporter renders datasets into a single-sheet workbook.
type XLSXExporter struct{}

// NewXLSXExporter constructs an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render produces workbook bytes with a bold header row and the colour
// column filled per row.
func (e *XLSXExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}
	f := excelize.NewFile()
	defer f.Close()

	sheet := data.Title
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return nil, fmt.Errorf("name sheet: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E0E0"}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	header := make([]any, len(data.Headers))
	colorCol := -1
	for i, h := range data.Headers {
		header[i] = h
		if h == data.ColorColumn {
			colorCol = i
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write xlsx headers: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(data.Headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("style xlsx headers: %w", err)
	}

	styles := map[string]int{}
	for r, row := range data.Rows {
		record := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			record[i] = row[h]
		}
		start, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, start, &record); err != nil {
			return nil, fmt.Errorf("write xlsx row: %w", err)
		}

		bg := data.rowColor(r)
		if colorCol < 0 || bg == "" {
			continue
		}
		id, ok := styles[bg]
		if !ok {
			id, err = f.NewStyle(&excelize.Style{
				Font: &excelize.Font{Color: format.Contrast(bg)},
				Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{bg}},
			})
			if err != nil {
				return nil, fmt.Errorf("status style: %w", err)
			}
			styles[bg] = id
		}
		cell, _ := excelize.CoordinatesToCellName(colorCol+1, r+2)
		if err := f.SetCellStyle(sheet, cell, cell, id); err != nil {
			return nil, fmt.Errorf("style xlsx cell: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
