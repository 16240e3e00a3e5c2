package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointToPoint_SamePointIsZero(t *testing.T) {
	points := []Point{
		{Lat: 0, Lon: 0},
		{Lat: 33.2098, Lon: -87.5692},
		{Lat: -45.5, Lon: 170.25},
		{Lat: 90, Lon: 0},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, PointToPoint(p.Lat, p.Lon, p.Lat, p.Lon, Degrees), "degrees %s", p)
		r := p.Radians()
		assert.Equal(t, 0.0, PointToPoint(r.Lat, r.Lon, r.Lat, r.Lon, Radians), "radians %s", p)
	}
}

func TestPointToPoint_QuarterGreatCircle(t *testing.T) {
	d := PointToPoint(0, 0, 0, 90, Degrees)
	assert.InEpsilon(t, math.Pi/2*EarthRadiusMiles, d, 1e-9)
	assert.InEpsilon(t, 6217.0, d, 0.01)

	r := PointToPoint(0, 0, 0, math.Pi/2, Radians)
	assert.InDelta(t, d, r, 1e-9)
}

func TestPointToPoint_Symmetric(t *testing.T) {
	tuscaloosa := Point{Lat: 33.2098, Lon: -87.5692}
	eugene := Point{Lat: 44.0521, Lon: -123.0868}

	ab := Distance(tuscaloosa, eugene, Degrees)
	ba := Distance(eugene, tuscaloosa, Degrees)
	assert.InDelta(t, ab, ba, 1e-9)
	assert.InDelta(t, 2040, ab, 40)
}

func TestPointToPoint_NearDuplicateWithinTolerance(t *testing.T) {
	d := PointToPoint(40.0, -75.0, 40.0+1e-9, -75.0-1e-9, Degrees)
	assert.Equal(t, 0.0, d)
}

func TestPointToPoint_NearDuplicateOutsideTolerance(t *testing.T) {
	d := PointToPoint(40.0, -75.0, 40.000001, -75.000001, Degrees)
	assert.False(t, math.IsNaN(d))
	assert.GreaterOrEqual(t, d, 0.0)
	assert.Less(t, d, 0.001)
}

func TestPointToPoint_Antipodal(t *testing.T) {
	d := PointToPoint(0, 0, 0, 180, Degrees)
	assert.False(t, math.IsNaN(d))
	assert.InEpsilon(t, math.Pi*EarthRadiusMiles, d, 1e-9)
}

func TestTotalDistance(t *testing.T) {
	origin := Point{}
	points := []Point{{Lat: 0, Lon: 90}, {Lat: 0, Lon: -90}, {Lat: 0, Lon: 0}}

	total := TotalDistance(origin, points, Degrees)
	assert.InEpsilon(t, math.Pi*EarthRadiusMiles, total, 1e-9)
	assert.Equal(t, 0.0, TotalDistance(origin, nil, Degrees))
}

func TestAverageDistance(t *testing.T) {
	origin := Point{}
	points := []Point{{Lat: 0, Lon: 90}, {Lat: 0, Lon: -90}}

	avg, err := AverageDistance(origin, points, Degrees)
	require.NoError(t, err)
	assert.InEpsilon(t, math.Pi/2*EarthRadiusMiles, avg, 1e-9)
}

func TestAverageDistance_Empty(t *testing.T) {
	_, err := AverageDistance(Point{}, nil, Degrees)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDegenerateInput)
}

func TestAveragePairwiseDistance_TwoPoints(t *testing.T) {
	a := Point{Lat: 30.2849, Lon: -97.7341}
	b := Point{Lat: 40.8202, Lon: -96.7005}

	avg, err := AveragePairwiseDistance([]Point{a, b}, Degrees)
	require.NoError(t, err)
	assert.InDelta(t, Distance(a, b, Degrees), avg, 1e-9)
}

func TestAveragePairwiseDistance_Triangle(t *testing.T) {
	a := Point{Lat: 0, Lon: 0}
	b := Point{Lat: 0, Lon: 90}
	c := Point{Lat: 90, Lon: 0}

	// Every pair is a quarter great circle apart.
	avg, err := AveragePairwiseDistance([]Point{a, b, c}, Degrees)
	require.NoError(t, err)
	assert.InEpsilon(t, math.Pi/2*EarthRadiusMiles, avg, 1e-9)
}

func TestAveragePairwiseDistance_Radians(t *testing.T) {
	a := Point{Lat: 30.2849, Lon: -97.7341}
	b := Point{Lat: 40.8202, Lon: -96.7005}

	deg, err := AveragePairwiseDistance([]Point{a, b}, Degrees)
	require.NoError(t, err)
	rad, err := AveragePairwiseDistance([]Point{a.Radians(), b.Radians()}, Radians)
	require.NoError(t, err)
	assert.InDelta(t, deg, rad, 1e-6)
}

func TestAveragePairwiseDistance_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
	}{
		{"empty", nil},
		{"single", []Point{{Lat: 1, Lon: 1}}},
		{"all identical", []Point{{Lat: 1, Lon: 1}, {Lat: 1, Lon: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AveragePairwiseDistance(tt.points, Degrees)
			assert.ErrorIs(t, err, ErrDegenerateInput)
		})
	}
}

func TestAveragePairwiseDistance_DuplicatesExcludeEachOther(t *testing.T) {
	a := Point{Lat: 35, Lon: -90}
	b := Point{Lat: 36, Lon: -90}

	// Both copies of a skip each other, so every per-point average is d(a, b).
	avg, err := AveragePairwiseDistance([]Point{a, a, b}, Degrees)
	require.NoError(t, err)
	assert.InDelta(t, Distance(a, b, Degrees), avg, 1e-9)
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    Unit
		wantErr bool
	}{
		{"", Degrees, false},
		{"degrees", Degrees, false},
		{"DEG", Degrees, false},
		{"radians", Radians, false},
		{" rad ", Radians, false},
		{"gradians", Degrees, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnit(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "degrees", Degrees.String())
	assert.Equal(t, "radians", Radians.String())
}

func TestWrapLongitude(t *testing.T) {
	assert.Equal(t, 10.0, wrapLongitude(10))
	assert.Equal(t, 180.0, wrapLongitude(180))
	assert.InDelta(t, -170.0, wrapLongitude(190), 1e-9)
	assert.InDelta(t, 170.0, wrapLongitude(-190), 1e-9)
	assert.InDelta(t, 0.0, wrapLongitude(720), 1e-9)
}
