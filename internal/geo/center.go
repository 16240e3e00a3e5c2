package geo

import (
	"math"

	"github.com/rotisserie/eris"
)

const (
	// initialSearchRadius is the first probe distance of the pattern search,
	// in radians (10018 km over the 6371 km Earth radius).
	initialSearchRadius = 10018 / 6371.0
	// minSearchRadius ends the pattern search.
	minSearchRadius = 2e-9
)

// probeBearings are the compass bearings, in degrees, probed around the
// current center on every pattern-search round.
var probeBearings = [8]float64{0, 45, 90, 135, 180, 225, 270, 315}

// GeographicCenter approximates the geometric median of points (degrees in,
// degrees out): the location minimizing the summed great-circle distance to
// every point.
//
// The search is a heuristic and not guaranteed optimal:
//  1. Seed with the normalized mean of the points' unit vectors.
//  2. Replace the seed with any input point whose summed distance is lower.
//  3. Pattern search: probe 8 bearings at the current radius, move to any
//     strictly better probe, otherwise halve the radius, until the radius
//     drops to minSearchRadius.
//
// An empty set returns ErrDegenerateInput; a single point is returned as is.
func GeographicCenter(points []Point) (Point, error) {
	switch len(points) {
	case 0:
		return Point{}, eris.Wrap(ErrDegenerateInput, "geo: geographic center of empty point set")
	case 1:
		return points[0], nil
	}

	rad := make([]Point, len(points))
	for i, p := range points {
		rad[i] = p.Radians()
	}

	current := vectorMean(rad)
	best := TotalDistance(current, rad, Radians)

	for _, p := range rad {
		if d := TotalDistance(p, rad, Radians); d < best {
			current, best = p, d
		}
	}

	for radius := initialSearchRadius; radius > minSearchRadius; {
		moved := false
		for _, probe := range probes(current, radius) {
			if d := TotalDistance(probe, rad, Radians); d < best {
				current, best = probe, d
				moved = true
			}
		}
		if !moved {
			radius /= 2
		}
	}

	center := current.Degrees()
	center.Lon = wrapLongitude(center.Lon)
	return center, nil
}

// AverageDistanceFromCenter returns the mean distance in miles from the
// geographic center of points (degrees) to each point. It returns
// ErrDegenerateInput for fewer than 2 points.
func AverageDistanceFromCenter(points []Point) (float64, error) {
	if len(points) < 2 {
		return 0, eris.Wrapf(ErrDegenerateInput, "geo: distance from center needs at least 2 points, got %d", len(points))
	}
	center, err := GeographicCenter(points)
	if err != nil {
		return 0, err
	}
	return AverageDistance(center, points, Degrees)
}

// vectorMean averages the 3D unit vectors of radian points and returns the
// resulting direction as a radian point.
func vectorMean(rad []Point) Point {
	var x, y, z float64
	for _, p := range rad {
		x += math.Cos(p.Lat) * math.Cos(p.Lon)
		y += math.Cos(p.Lat) * math.Sin(p.Lon)
		z += math.Sin(p.Lat)
	}
	n := float64(len(rad))
	x, y, z = x/n, y/n, z/n

	return Point{
		Lat: math.Atan2(z, math.Sqrt(x*x+y*y)),
		Lon: math.Atan2(y, x),
	}
}

// probes returns the destinations reached from origin (radians) after
// travelling the angular distance delta along each probe bearing.
func probes(origin Point, delta float64) [8]Point {
	var out [8]Point
	for i, bearing := range probeBearings {
		out[i] = Destination(origin, toRadians(bearing), delta)
	}
	return out
}

// Destination returns the point reached from origin travelling an angular
// distance delta along the initial bearing. All values are in radians.
func Destination(origin Point, bearing, delta float64) Point {
	sinLat, cosLat := math.Sincos(origin.Lat)
	sinDelta, cosDelta := math.Sincos(delta)

	lat := math.Asin(sinLat*cosDelta + cosLat*sinDelta*math.Cos(bearing))
	lon := origin.Lon + math.Atan2(
		math.Sin(bearing)*sinDelta*cosLat,
		cosDelta-sinLat*math.Sin(lat),
	)
	return Point{Lat: lat, Lon: lon}
}
