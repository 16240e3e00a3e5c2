// Package export writes analysis results out as GeoJSON, EWKB, shapefiles and
// spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/cfb-realignment/realign-cli/internal/conference"
	"github.com/cfb-realignment/realign-cli/internal/geo"
)

// Feature kinds written to the "kind" property.
const (
	KindTerritory = "territory"
	KindCenter    = "center"
	KindCapital   = "capital"
)

// FeatureCollection builds one territory, center and capital feature per
// conference-year, skipping whichever of those the stats lack.
func FeatureCollection(stats []conference.Stats) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, 3*len(stats))}
	for _, s := range stats {
		if poly := s.Territory.Polygon(); poly != nil {
			fc.Features = append(fc.Features, &geojson.Feature{
				ID:         featureID(s, KindTerritory),
				Geometry:   poly,
				Properties: territoryProperties(s),
			})
		}
		if center, ok := s.Center(); ok {
			fc.Features = append(fc.Features, &geojson.Feature{
				ID:       featureID(s, KindCenter),
				Geometry: pointGeom(center),
				Properties: map[string]any{
					"kind":       KindCenter,
					"conference": s.Conference,
					"year":       s.Year,
				},
			})
		}
		if s.Capital != nil {
			fc.Features = append(fc.Features, &geojson.Feature{
				ID:       featureID(s, KindCapital),
				Geometry: pointGeom(s.Capital.Point()),
				Properties: map[string]any{
					"kind":       KindCapital,
					"conference": s.Conference,
					"year":       s.Year,
					"city":       s.Capital.City,
					"state":      s.Capital.State,
				},
			})
		}
	}
	return fc
}

// WriteGeoJSON writes stats as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, stats []conference.Stats) error {
	data, err := FeatureCollection(stats).MarshalJSON()
	if err != nil {
		return eris.Wrap(err, "export: marshal geojson")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "export: write geojson")
	}
	return nil
}

// EncodeHullGeoJSON returns the hull as a GeoJSON Polygon geometry. An empty
// hull encodes as nil.
func EncodeHullGeoJSON(h geo.Hull) ([]byte, error) {
	poly := h.Polygon()
	if poly == nil {
		return nil, nil
	}
	data, err := geojson.Marshal(poly)
	if err != nil {
		return nil, eris.Wrap(err, "export: encode hull geojson")
	}
	return data, nil
}

// DecodeHullGeoJSON reverses EncodeHullGeoJSON. Empty input gives an empty hull.
func DecodeHullGeoJSON(data []byte) (geo.Hull, error) {
	if len(data) == 0 {
		return geo.Hull{}, nil
	}
	var g geom.T
	if err := geojson.Unmarshal(data, &g); err != nil {
		return nil, eris.Wrap(err, "export: decode hull geojson")
	}
	poly, ok := g.(*geom.Polygon)
	if !ok {
		return nil, eris.Errorf("export: hull geojson is %T, want polygon", g)
	}
	return hullFromPolygon(poly), nil
}

// hullFromPolygon walks the outer ring backwards, undoing the axis swap done
// by geo.Hull.Polygon, and drops the closing vertex.
func hullFromPolygon(poly *geom.Polygon) geo.Hull {
	if poly.NumLinearRings() == 0 {
		return geo.Hull{}
	}
	ring := poly.LinearRing(0)
	n := ring.NumCoords()
	if n < 4 {
		return geo.Hull{}
	}
	h := make(geo.Hull, 0, n-1)
	for i := n - 1; i >= 1; i-- {
		c := ring.Coord(i)
		h = append(h, geo.Point{Lat: c.Y(), Lon: c.X()})
	}
	return h
}

func territoryProperties(s conference.Stats) map[string]any {
	props := map[string]any{
		"kind":                      KindTerritory,
		"conference":                s.Conference,
		"year":                      s.Year,
		"custom":                    s.Custom,
		"schoolCount":               s.SchoolCount,
		"avgDistanceBetweenSchools": s.AvgDistanceBetweenSchools,
		"avgDistanceFromCenter":     s.AvgDistanceFromCenter,
		"footprint":                 s.Footprint,
	}
	if s.Capital != nil {
		props["capital"] = s.Capital.City + ", " + s.Capital.State
	}
	return props
}

func pointGeom(p geo.Point) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{p.Lon, p.Lat}).SetSRID(4326)
}

func featureID(s conference.Stats, kind string) string {
	return fmt.Sprintf("%s/%d/%s", s.Conference, s.Year, kind)
}
