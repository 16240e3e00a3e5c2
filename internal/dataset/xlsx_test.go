package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createTestXLSX(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				cell := row.AddCell()
				cell.SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "roster.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadSchoolsXLSX(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Schools": {
			{"School", "City", "State", "Lat", "Lng"},
			{"Alabama", "Tuscaloosa", "AL", "33.2098", "-87.5692"},
			{"", "", "", "", ""},
			{"Oregon", "Eugene", "OR", "44.0448", "-123.0726"},
		},
	})

	schools, err := ReadSchoolsXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, schools, 2)
	assert.Equal(t, "Alabama", schools[0].Name)
	assert.Equal(t, "Tuscaloosa", schools[0].City)
	assert.Equal(t, "AL", schools[0].State)
	assert.InDelta(t, 33.2098, float64(schools[0].Latitude), 1e-12)
	assert.InDelta(t, -123.0726, float64(schools[1].Longitude), 1e-12)
}

func TestReadSchoolsXLSX_MissingColumn(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Schools": {{"Name", "Latitude"}, {"Alabama", "33.2"}},
	})

	_, err := ReadSchoolsXLSX(path, XLSXOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "longitude")
}

func TestReadSchoolsXLSX_BadCoordinate(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Schools": {{"Name", "Latitude", "Longitude"}, {"Alabama", "south", "-87.5"}},
	})

	_, err := ReadSchoolsXLSX(path, XLSXOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestReadSchoolsXLSX_SheetName(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Notes":  {{"ignore me"}},
		"Roster": {{"name", "latitude", "longitude"}, {"Utah", "40.7649", "-111.8421"}},
	})

	schools, err := ReadSchoolsXLSX(path, XLSXOptions{SheetName: "Roster"})
	require.NoError(t, err)
	require.Len(t, schools, 1)
	assert.Equal(t, "Utah", schools[0].Name)

	_, err = ReadSchoolsXLSX(path, XLSXOptions{SheetName: "Missing"})
	assert.Error(t, err)
}

func TestReadSchoolsXLSX_SheetIndexOutOfRange(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{"Only": {{"name"}}})
	_, err := ReadSchoolsXLSX(path, XLSXOptions{SheetIndex: 5})
	assert.Error(t, err)
}
