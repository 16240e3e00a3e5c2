package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCities(t *testing.T) {
	in := `City,State,Latitude,Longitude
Birmingham,AL,33.5186,-86.8104
,,,
 Denver , CO ,39.7392,-104.9903
`
	cities, err := ParseCities(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, cities, 2)

	assert.Equal(t, "Birmingham", cities[0].Name)
	assert.Equal(t, "AL", cities[0].State)
	assert.InDelta(t, 33.5186, cities[0].Lat, 1e-12)
	assert.InDelta(t, -86.8104, cities[0].Lon, 1e-12)

	assert.Equal(t, "Denver", cities[1].Name)
	assert.Equal(t, "CO", cities[1].State)
}

func TestParseCities_ColumnOrder(t *testing.T) {
	in := "Longitude,Latitude,State,City,Population\n-97.7431,30.2672,TX,Austin,974447\n"
	cities, err := ParseCities(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, "Austin", cities[0].Name)
	assert.InDelta(t, 30.2672, cities[0].Lat, 1e-12)
}

func TestParseCities_BadCoordinate(t *testing.T) {
	in := "City,State,Latitude,Longitude\nNowhere,ZZ,north,-90\n"
	_, err := ParseCities(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseCities_Empty(t *testing.T) {
	cities, err := ParseCities(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cities)
}

func TestLoadCities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "majorCities.csv")
	require.NoError(t, os.WriteFile(path, []byte("City,State,Latitude,Longitude\nOmaha,NE,41.2565,-95.9345\n"), 0o600))

	cities, err := LoadCities(path)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, "Omaha", cities[0].Name)
}

func TestLoadCities_Missing(t *testing.T) {
	_, err := LoadCities(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
