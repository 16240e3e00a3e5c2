package geo

import "fmt"

// Point is a latitude/longitude pair. The unit is not stored; callers pass
// a Unit alongside points wherever it matters.
type Point struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// NewPoint returns a Point for the given latitude and longitude.
func NewPoint(lat, lon float64) Point {
	return Point{Lat: lat, Lon: lon}
}

// Radians converts a point expressed in degrees to radians.
func (p Point) Radians() Point {
	return Point{Lat: toRadians(p.Lat), Lon: toRadians(p.Lon)}
}

// Degrees converts a point expressed in radians to degrees.
func (p Point) Degrees() Point {
	return Point{Lat: toDegrees(p.Lat), Lon: toDegrees(p.Lon)}
}

// Valid reports whether p lies within the degree ranges [-90,90] and [-180,180].
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

func (p Point) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.Lat, p.Lon)
}
