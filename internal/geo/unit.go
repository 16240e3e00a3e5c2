package geo

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// Unit describes the angular unit of latitude/longitude inputs.
type Unit int

// Supported coordinate units.
const (
	Degrees Unit = iota
	Radians
)

// String implements fmt.Stringer.
func (u Unit) String() string {
	switch u {
	case Degrees:
		return "degrees"
	case Radians:
		return "radians"
	default:
		return "unknown"
	}
}

// ParseUnit parses "degrees"/"deg" or "radians"/"rad". An empty string means degrees.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "degrees", "deg":
		return Degrees, nil
	case "radians", "rad":
		return Radians, nil
	default:
		return Degrees, eris.Errorf("geo: unknown unit %q", s)
	}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// wrapLongitude maps a longitude in degrees into [-180, 180].
func wrapLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
