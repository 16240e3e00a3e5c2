package export

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"

	"github.com/cfb-realignment/realign-cli/internal/geo"
)

// EncodeHullWKB converts a hull to EWKB bytes with SRID 4326.
// Returns nil, nil for an empty hull.
func EncodeHullWKB(h geo.Hull) ([]byte, error) {
	poly := h.Polygon()
	if poly == nil {
		return nil, nil
	}
	return encodeEWKB(poly)
}

// EncodePointWKB converts a point to EWKB bytes with SRID 4326, longitude first.
func EncodePointWKB(p geo.Point) ([]byte, error) {
	return encodeEWKB(pointGeom(p))
}

func encodeEWKB(g geom.T) ([]byte, error) {
	data, err := ewkb.Marshal(g, ewkb.NDR)
	if err != nil {
		return nil, eris.Wrap(err, "export: encode WKB")
	}
	return data, nil
}

// DecodeHullWKB reverses EncodeHullWKB. Empty input gives an empty hull.
func DecodeHullWKB(data []byte) (geo.Hull, error) {
	if len(data) == 0 {
		return geo.Hull{}, nil
	}
	g, err := ewkb.Unmarshal(data)
	if err != nil {
		return nil, eris.Wrap(err, "export: decode hull WKB")
	}
	poly, ok := g.(*geom.Polygon)
	if !ok {
		return nil, eris.Errorf("export: hull WKB is %T, want polygon", g)
	}
	return hullFromPolygon(poly), nil
}

// DecodePointWKB reverses EncodePointWKB.
func DecodePointWKB(data []byte) (geo.Point, error) {
	g, err := ewkb.Unmarshal(data)
	if err != nil {
		return geo.Point{}, eris.Wrap(err, "export: decode point WKB")
	}
	pt, ok := g.(*geom.Point)
	if !ok {
		return geo.Point{}, eris.Errorf("export: point WKB is %T, want point", g)
	}
	return geo.Point{Lat: pt.Y(), Lon: pt.X()}, nil
}
