package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCities() []City {
	return []City{
		{Name: "Birmingham", State: "AL", Point: Point{Lat: 33.5186, Lon: -86.8104}},
		{Name: "Atlanta", State: "GA", Point: Point{Lat: 33.7490, Lon: -84.3880}},
		{Name: "Memphis", State: "TN", Point: Point{Lat: 35.1495, Lon: -90.0490}},
		{Name: "Dallas", State: "TX", Point: Point{Lat: 32.7767, Lon: -96.7970}},
	}
}

func TestFindNearestCity(t *testing.T) {
	city, err := FindNearestCity(Point{Lat: 33.2098, Lon: -87.5692}, testCities())
	require.NoError(t, err)
	assert.Equal(t, "Birmingham", city.Name)
	assert.Equal(t, "AL", city.State)
}

func TestFindNearestCity_ExactMatch(t *testing.T) {
	cities := testCities()
	city, err := FindNearestCity(cities[2].Point, cities)
	require.NoError(t, err)
	assert.Equal(t, "Memphis", city.Name)
}

func TestFindNearestCity_TieKeepsFirst(t *testing.T) {
	west := City{Name: "West", State: "XX", Point: Point{Lat: 0, Lon: -1}}
	east := City{Name: "East", State: "YY", Point: Point{Lat: 0, Lon: 1}}

	city, err := FindNearestCity(Point{}, []City{west, east})
	require.NoError(t, err)
	assert.Equal(t, "West", city.Name)

	city, err = FindNearestCity(Point{}, []City{east, west})
	require.NoError(t, err)
	assert.Equal(t, "East", city.Name)
}

func TestFindNearestCity_Empty(t *testing.T) {
	_, err := FindNearestCity(Point{}, nil)
	assert.ErrorIs(t, err, ErrEmptyReferenceCorpus)
}
