// Package conference models conference-by-year membership and computes the
// geographic statistics shown for each conference: spread, center, capital
// city and territory.
package conference

import (
	"bytes"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/cfb-realignment/realign-cli/internal/geo"
)

// Sports a conference-year can be tagged with.
const (
	SportFootball   = "football"
	SportBasketball = "basketball"
)

// Coordinate is a degree value that decodes from either a JSON number or a
// numeric string. A null or empty value is an error rather than 0, which
// would put the school at (0, 0).
type Coordinate float64

// UnmarshalJSON implements json.Unmarshaler.
func (c *Coordinate) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		return eris.New("conference: missing coordinate")
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return eris.Wrapf(err, "conference: parse coordinate %q", string(b))
	}
	*c = Coordinate(v)
	return nil
}

// School is a member institution and its campus location.
type School struct {
	ID        int        `json:"id,omitempty"`
	Name      string     `json:"name"`
	City      string     `json:"city,omitempty"`
	State     string     `json:"state,omitempty"`
	Latitude  Coordinate `json:"latitude"`
	Longitude Coordinate `json:"longitude"`
}

// Point returns the school location in degrees.
func (s School) Point() geo.Point {
	return geo.Point{Lat: float64(s.Latitude), Lon: float64(s.Longitude)}
}

// Conference is the membership of one conference in one season.
type Conference struct {
	ID         int      `json:"id,omitempty"`
	Year       int      `json:"year"`
	Name       string   `json:"conference"`
	Football   bool     `json:"football"`
	Basketball bool     `json:"basketball"`
	Custom     bool     `json:"custom,omitempty"`
	Schools    []School `json:"schools"`
}

// Points returns the school locations in membership order.
func (c Conference) Points() []geo.Point {
	pts := make([]geo.Point, len(c.Schools))
	for i, s := range c.Schools {
		pts[i] = s.Point()
	}
	return pts
}

// Plays reports whether the conference-year is tagged for sport.
func (c Conference) Plays(sport string) bool {
	switch sport {
	case SportFootball:
		return c.Football
	case SportBasketball:
		return c.Basketball
	default:
		return true
	}
}

// Capital is the major city nearest a conference's geographic center.
type Capital struct {
	City      string  `json:"city"`
	State     string  `json:"state"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Point returns the capital location in degrees.
func (c Capital) Point() geo.Point {
	return geo.Point{Lat: c.Latitude, Lon: c.Longitude}
}

func capitalFromCity(city geo.City) *Capital {
	return &Capital{City: city.Name, State: city.State, Latitude: city.Lat, Longitude: city.Lon}
}

// Stats holds the computed geography of one conference-year.
type Stats struct {
	Conference                string   `json:"conference"`
	Year                      int      `json:"year"`
	Custom                    bool     `json:"custom,omitempty"`
	SchoolCount               int      `json:"schoolCount"`
	AvgDistanceBetweenSchools float64  `json:"avgDistanceBetweenSchools"`
	AvgDistanceFromCenter     float64  `json:"avgDistanceFromCenter"`
	CenterLat                 *float64 `json:"centerLat"`
	CenterLon                 *float64 `json:"centerLon"`
	Capital                   *Capital `json:"capital"`
	Footprint                 string   `json:"footprint,omitempty"`
	Territory                 geo.Hull `json:"territory"`
}

// Center returns the geographic center and whether one was computed.
func (s Stats) Center() (geo.Point, bool) {
	if s.CenterLat == nil || s.CenterLon == nil {
		return geo.Point{}, false
	}
	return geo.Point{Lat: *s.CenterLat, Lon: *s.CenterLon}, true
}

// SchoolDetail is the per-school breakdown shown when a school is selected.
type SchoolDetail struct {
	Conference          string  `json:"conference"`
	Year                int     `json:"year"`
	School              string  `json:"school"`
	AvgDistanceToOthers float64 `json:"avgDistanceToOthers"`
	DistanceToCapital   float64 `json:"distanceToCapital"`
}

// YearSummary is the all-conference average for one season.
type YearSummary struct {
	Year                  int     `json:"year"`
	Conferences           int     `json:"conferences"`
	AvgDistance           float64 `json:"avgDistance"`
	AvgDistanceFromCenter float64 `json:"avgDistanceFromCenter"`
}
