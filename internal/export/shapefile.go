package export

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cfb-realignment/realign-cli/internal/conference"
	"github.com/cfb-realignment/realign-cli/internal/geo"
)

// Shapefile attribute columns. dBase caps names at 10 characters.
var shapeFields = []shp.Field{
	shp.StringField("CONF", 64),
	shp.NumberField("YEAR", 4),
	shp.NumberField("SCHOOLS", 4),
	shp.FloatField("AVG_BTWN", 12, 3),
	shp.FloatField("AVG_CTR", 12, 3),
	shp.StringField("CAPITAL", 64),
	shp.StringField("FOOTPRINT", 16),
}

// WriteShapefile writes conference territories as a polygon shapefile at
// path (plus the .shx and .dbf siblings). Conference-years without a
// territory are left out.
func WriteShapefile(path string, stats []conference.Stats) error {
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}
	defer w.Close()

	w.SetFields(shapeFields)

	var skipped int
	for _, s := range stats {
		if len(s.Territory) < 3 {
			skipped++
			continue
		}
		poly := shapePolygon(s.Territory)
		row := int(w.Write(&poly))

		capital := ""
		if s.Capital != nil {
			capital = s.Capital.City + ", " + s.Capital.State
		}
		w.WriteAttribute(row, 0, s.Conference)
		w.WriteAttribute(row, 1, s.Year)
		w.WriteAttribute(row, 2, s.SchoolCount)
		w.WriteAttribute(row, 3, s.AvgDistanceBetweenSchools)
		w.WriteAttribute(row, 4, s.AvgDistanceFromCenter)
		w.WriteAttribute(row, 5, capital)
		w.WriteAttribute(row, 6, s.Footprint)
	}

	if skipped > 0 {
		zap.L().Debug("export: skipped conference-years without territory",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	return nil
}

// shapePolygon builds a single-ring shapefile polygon. Hull order is
// clockwise once longitude is X, which is what shapefile outer rings use.
func shapePolygon(h geo.Hull) shp.Polygon {
	ring := h.Closed()
	pts := make([]shp.Point, len(ring))
	for i, p := range ring {
		pts[i] = shp.Point{X: p.Lon, Y: p.Lat}
	}
	return shp.Polygon(*shp.NewPolyLine([][]shp.Point{pts}))
}
