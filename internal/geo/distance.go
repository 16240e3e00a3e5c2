// Package geo provides the spherical geometry behind conference footprints:
// great-circle distances, distance aggregates, a geographic center solver,
// territory hulls and nearest-city lookup.
package geo

import (
	"math"

	"github.com/rotisserie/eris"
)

// EarthRadiusMiles is the mean Earth radius used for all distances.
const EarthRadiusMiles = 3958.8

// samePointTolerance is the per-axis radian difference under which two
// points are treated as identical.
const samePointTolerance = 1e-8

// PointToPoint returns the great-circle distance in miles between two points
// using the spherical law of cosines. Coordinates are interpreted in unit.
func PointToPoint(lat1, lon1, lat2, lon2 float64, unit Unit) float64 {
	if unit == Degrees {
		lat1, lon1 = toRadians(lat1), toRadians(lon1)
		lat2, lon2 = toRadians(lat2), toRadians(lon2)
	}
	if math.Abs(lat1-lat2) < samePointTolerance && math.Abs(lon1-lon2) < samePointTolerance {
		return 0
	}

	cosAngle := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(lon1-lon2)
	// acos is undefined outside [-1, 1]; rounding can push near-duplicates past 1.
	cosAngle = math.Max(-1, math.Min(1, cosAngle))
	return math.Acos(cosAngle) * EarthRadiusMiles
}

// Distance is PointToPoint for Point values.
func Distance(a, b Point, unit Unit) float64 {
	return PointToPoint(a.Lat, a.Lon, b.Lat, b.Lon, unit)
}

// TotalDistance sums the distance from main to every point. It returns 0 for
// an empty set.
func TotalDistance(main Point, points []Point, unit Unit) float64 {
	var total float64
	for _, p := range points {
		total += Distance(main, p, unit)
	}
	return total
}

// AverageDistance returns the mean distance from main to points.
// It returns ErrDegenerateInput when points is empty.
func AverageDistance(main Point, points []Point, unit Unit) (float64, error) {
	if len(points) == 0 {
		return 0, eris.Wrap(ErrDegenerateInput, "geo: average distance of empty point set")
	}
	return TotalDistance(main, points, unit) / float64(len(points)), nil
}

// AveragePairwiseDistance returns the mean, over every point, of that point's
// average distance to the rest of the set.
//
// The rest of the set excludes every element equal in value to the point, so
// two entries sharing exact coordinates never count against each other. A set
// where that exclusion leaves a point with nothing to compare against is
// degenerate, as is any set with fewer than two points.
func AveragePairwiseDistance(points []Point, unit Unit) (float64, error) {
	if len(points) < 2 {
		return 0, eris.Wrapf(ErrDegenerateInput, "geo: pairwise distance needs at least 2 points, got %d", len(points))
	}

	others := make([]Point, 0, len(points))
	var sum float64
	for _, main := range points {
		others = others[:0]
		for _, p := range points {
			if p != main {
				others = append(others, p)
			}
		}
		avg, err := AverageDistance(main, others, unit)
		if err != nil {
			return 0, eris.Wrapf(err, "geo: no distinct points to compare with %s", main)
		}
		sum += avg
	}
	return sum / float64(len(points)), nil
}
