package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/cfb-realignment/realign-cli/internal/conference"
)

// Workbook sheet names.
const (
	SheetConferences = "Conferences"
	SheetSummary     = "Summary"
	SheetSchools     = "Schools"
)

// WriteXLSX writes a workbook with one sheet of conference statistics, one of
// yearly summaries and one of per-school details.
func WriteXLSX(w io.Writer, stats []conference.Stats, summaries []conference.YearSummary, details []conference.SchoolDetail) error {
	f := xlsx.NewFile()

	confSheet, err := addSheet(f, SheetConferences,
		"Conference", "Year", "Custom", "Schools", "Avg Distance Between Schools",
		"Avg Distance From Center", "Center Lat", "Center Lon", "Capital", "Footprint")
	if err != nil {
		return err
	}
	for _, s := range stats {
		row := confSheet.AddRow()
		row.AddCell().SetString(s.Conference)
		row.AddCell().SetInt(s.Year)
		row.AddCell().SetBool(s.Custom)
		row.AddCell().SetInt(s.SchoolCount)
		row.AddCell().SetFloat(s.AvgDistanceBetweenSchools)
		row.AddCell().SetFloat(s.AvgDistanceFromCenter)
		if center, ok := s.Center(); ok {
			row.AddCell().SetFloat(center.Lat)
			row.AddCell().SetFloat(center.Lon)
		} else {
			row.AddCell()
			row.AddCell()
		}
		capital := ""
		if s.Capital != nil {
			capital = s.Capital.City + ", " + s.Capital.State
		}
		row.AddCell().SetString(capital)
		row.AddCell().SetString(s.Footprint)
	}

	summarySheet, err := addSheet(f, SheetSummary,
		"Year", "Conferences", "Avg Distance", "Avg Distance From Center")
	if err != nil {
		return err
	}
	for _, s := range summaries {
		row := summarySheet.AddRow()
		row.AddCell().SetInt(s.Year)
		row.AddCell().SetInt(s.Conferences)
		row.AddCell().SetFloat(s.AvgDistance)
		row.AddCell().SetFloat(s.AvgDistanceFromCenter)
	}

	schoolSheet, err := addSheet(f, SheetSchools,
		"Conference", "Year", "School", "Avg Distance To Others", "Distance To Capital")
	if err != nil {
		return err
	}
	for _, d := range details {
		row := schoolSheet.AddRow()
		row.AddCell().SetString(d.Conference)
		row.AddCell().SetInt(d.Year)
		row.AddCell().SetString(d.School)
		row.AddCell().SetFloat(d.AvgDistanceToOthers)
		row.AddCell().SetFloat(d.DistanceToCapital)
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "xlsx: write workbook")
	}
	return nil
}

func addSheet(f *xlsx.File, name string, headers ...string) (*xlsx.Sheet, error) {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return nil, eris.Wrapf(err, "xlsx: add sheet %s", name)
	}
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetString(h)
	}
	return sheet, nil
}
