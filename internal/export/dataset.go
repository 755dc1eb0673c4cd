// Package export renders application lists to spreadsheet and PDF files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zhubert/studydesk/internal/format"
	"github.com/zhubert/studydesk/internal/models"
)

// Dataset defines tabular export content.
type Dataset struct {
	Title   string
	Headers []string
	Rows    []map[string]string
	// ColorColumn names the header whose cells are filled with the row's
	// colour from RowColors. Empty disables colouring.
	ColorColumn string
	RowColors   []string
}

// rowColor returns the fill colour of row i, or "" for none.
func (d Dataset) rowColor(i int) string {
	if d.ColorColumn == "" || i >= len(d.RowColors) || !format.ValidHex(d.RowColors[i]) {
		return ""
	}
	return d.RowColors[i]
}

// Application export columns.
const (
	ColApplicationID = "Application ID"
	ColStudent       = "Student"
	ColUniversity    = "University"
	ColProgram       = "Program"
	ColCountry       = "Country"
	ColIntake        = "Intake"
	ColStatus        = "Status"
	ColStarred       = "Starred"
	ColDate          = "Submitted"
)

// ApplicationsDataset lays out applications one per row with the status
// cell coloured like its badge.
func ApplicationsDataset(apps []models.Application) Dataset {
	ds := Dataset{
		Title: "Applications",
		Headers: []string{
			ColApplicationID, ColStudent, ColUniversity, ColProgram, ColCountry,
			ColIntake, ColStatus, ColStarred, ColDate,
		},
		ColorColumn: ColStatus,
	}
	for _, a := range apps {
		starred := ""
		if a.Starred {
			starred = "yes"
		}
		date := ""
		if !a.Date.IsZero() {
			date = format.Date(a.Date)
		}
		ds.Rows = append(ds.Rows, map[string]string{
			ColApplicationID: a.ApplicationID,
			ColStudent:       a.StudentName,
			ColUniversity:    a.University,
			ColProgram:       a.Program,
			ColCountry:       strings.ToUpper(a.CountryCode),
			ColIntake:        format.Intake(a.Intake, a.Year),
			ColStatus:        a.Status,
			ColStarred:       starred,
			ColDate:          date,
		})
		ds.RowColors = append(ds.RowColors, a.StatusColor)
	}
	return ds
}

// Format is an output file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts "xlsx" or "pdf", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(s, "."))) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want xlsx or pdf)", s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Render encodes data in the given format.
func Render(data Dataset, f Format) ([]byte, error) {
	switch f {
	case FormatXLSX:
		return NewXLSXExporter().Render(data)
	case FormatPDF:
		return NewPDFExporter().Render(data, data.Title)
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}

// WriteFile renders data in the format implied by path's extension.
func WriteFile(path string, data Dataset) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	out, err := Render(data, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// DefaultFileName is used when no output path is given.
func DefaultFileName(f Format, scope string) string {
	name := "applications"
	if scope = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return -1
	}, scope); scope != "" {
		name += "-" + scope
	}
	return name + "." + string(f)
}
