package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvexHull_Triangle(t *testing.T) {
	pts := []Point{{Lat: 30, Lon: -90}, {Lat: 40, Lon: -80}, {Lat: 35, Lon: -100}}
	hull := ConvexHull(pts)
	assert.ElementsMatch(t, pts, hull)
}

func TestConvexHull_TooFewPoints(t *testing.T) {
	assert.Empty(t, ConvexHull(nil))
	assert.Empty(t, ConvexHull([]Point{{Lat: 1, Lon: 1}}))
	assert.Empty(t, ConvexHull([]Point{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}}))
}

func TestConvexHull_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
	}{
		{"collinear", []Point{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}, {Lat: 3, Lon: 3}}},
		{"duplicates", []Point{{Lat: 1, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}}},
		{"all identical", []Point{{Lat: 1, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 1, Lon: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, ConvexHull(tt.pts))
		})
	}
}

func TestConvexHull_ExcludesInteriorPoint(t *testing.T) {
	corners := []Point{{Lat: 30, Lon: -100}, {Lat: 30, Lon: -80}, {Lat: 45, Lon: -80}, {Lat: 45, Lon: -100}}
	interior := Point{Lat: 37, Lon: -90}
	edge := Point{Lat: 30, Lon: -90}

	hull := ConvexHull(append([]Point{interior, edge}, corners...))
	assert.ElementsMatch(t, corners, hull)
	assert.NotContains(t, hull, interior)
	assert.NotContains(t, hull, edge)
	assert.True(t, hull.Contains(interior))
	assert.True(t, hull.Contains(edge))
	assert.False(t, hull.Contains(Point{Lat: 50, Lon: -90}))
}

func TestConvexHull_CounterClockwise(t *testing.T) {
	pts := []Point{
		{Lat: 33.2, Lon: -87.5}, {Lat: 44.0, Lon: -123.0}, {Lat: 47.6, Lon: -122.3},
		{Lat: 25.7, Lon: -80.2}, {Lat: 42.3, Lon: -71.1}, {Lat: 39.1, Lon: -94.5},
		{Lat: 40.0, Lon: -105.2},
	}
	hull := ConvexHull(pts)
	require.GreaterOrEqual(t, len(hull), 3)

	for i := range hull {
		a, b, c := hull[i], hull[(i+1)%len(hull)], hull[(i+2)%len(hull)]
		assert.Greater(t, cross(a, b, c), 0.0)
	}
	for _, p := range pts {
		assert.True(t, hull.Contains(p), "hull should contain %s", p)
	}
	// Starts at the lowest latitude.
	assert.Equal(t, Point{Lat: 25.7, Lon: -80.2}, hull[0])
}

func TestConvexHull_Idempotent(t *testing.T) {
	pts := []Point{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 4}, {Lat: 4, Lon: 4}, {Lat: 4, Lon: 0}, {Lat: 2, Lon: 2}}
	assert.Equal(t, ConvexHull(pts), ConvexHull(pts))
}

func TestHull_Closed(t *testing.T) {
	hull := Hull{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 0}}
	ring := hull.Closed()
	require.Len(t, ring, 4)
	assert.Equal(t, ring[0], ring[3])
	assert.Empty(t, Hull{}.Closed())
}

func TestHull_Polygon(t *testing.T) {
	hull := ConvexHull([]Point{{Lat: 30, Lon: -90}, {Lat: 40, Lon: -80}, {Lat: 35, Lon: -100}})
	poly := hull.Polygon()
	require.NotNil(t, poly)
	assert.Equal(t, 4326, poly.SRID())
	assert.Equal(t, 1, poly.NumLinearRings())

	ring := poly.LinearRing(0)
	assert.Equal(t, 4, ring.NumCoords())
	first, last := ring.Coord(0), ring.Coord(3)
	assert.Equal(t, first, last)
	// X is longitude.
	assert.LessOrEqual(t, first.X(), -80.0)

	assert.Nil(t, Hull{}.Polygon())
}
