package main

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/cfb-realignment/realign-cli/internal/geo"
)

// parsePoint parses a "lat,lon" argument in degrees.
func parsePoint(s string) (geo.Point, error) {
	lat, lon, ok := strings.Cut(s, ",")
	if !ok {
		return geo.Point{}, eris.Errorf("point %q: want lat,lon", s)
	}
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return geo.Point{}, eris.Wrapf(err, "point %q: latitude", s)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return geo.Point{}, eris.Wrapf(err, "point %q: longitude", s)
	}
	p := geo.Point{Lat: la, Lon: lo}
	if !p.Valid() {
		return geo.Point{}, eris.Errorf("point %q: out of range", s)
	}
	return p, nil
}

func parsePoints(args []string) ([]geo.Point, error) {
	pts := make([]geo.Point, 0, len(args))
	for _, a := range args {
		p, err := parsePoint(a)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}
