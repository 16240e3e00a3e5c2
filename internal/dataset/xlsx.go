package dataset

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/cfb-realignment/realign-cli/internal/conference"
)

// XLSXOptions configures the roster spreadsheet reader.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// rosterColumns maps accepted header spellings to roster fields.
var rosterColumns = map[string]string{
	"name":      "name",
	"school":    "name",
	"city":      "city",
	"state":     "state",
	"latitude":  "latitude",
	"lat":       "latitude",
	"longitude": "longitude",
	"lon":       "longitude",
	"lng":       "longitude",
}

// ReadSchoolsXLSX reads a school roster from a spreadsheet. The first row is
// the header; name, latitude and longitude columns are required.
func ReadSchoolsXLSX(path string, opts XLSXOptions) ([]conference.School, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, nil
	}

	cols := make(map[string]int)
	for i, h := range rowToStrings(sheet.Rows[0]) {
		if field, ok := rosterColumns[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, seen := cols[field]; !seen {
				cols[field] = i
			}
		}
	}
	for _, required := range []string{"name", "latitude", "longitude"} {
		if _, ok := cols[required]; !ok {
			return nil, eris.Errorf("xlsx: roster sheet %q missing %s column", sheet.Name, required)
		}
	}

	var schools []conference.School
	for i, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		get := func(field string) string {
			idx, ok := cols[field]
			if !ok || idx >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[idx])
		}

		name := get("name")
		if name == "" {
			continue
		}
		lat, err := parseDegrees(get("latitude"))
		if err != nil {
			return nil, eris.Wrapf(err, "xlsx: row %d latitude", i+2)
		}
		lon, err := parseDegrees(get("longitude"))
		if err != nil {
			return nil, eris.Wrapf(err, "xlsx: row %d longitude", i+2)
		}
		schools = append(schools, conference.School{
			Name:      name,
			City:      get("city"),
			State:     get("state"),
			Latitude:  conference.Coordinate(lat),
			Longitude: conference.Coordinate(lon),
		})
	}
	return schools, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
