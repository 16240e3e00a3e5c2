package geo

import (
	"sort"

	"github.com/twpayne/go-geom"
)

// Hull is a convex polygon boundary in vertex order. The first vertex is not
// repeated at the end.
type Hull []Point

// ConvexHull returns the convex hull of points, treating latitude as x and
// longitude as y on a plane. That approximation is fine at the scale of a
// single country.
//
// Vertices are counter-clockwise in the (lat, lon) plane, starting from the
// lowest latitude (lowest longitude on ties). Collinear boundary points are
// dropped. Fewer than 3 distinct, non-collinear points yield an empty hull.
func ConvexHull(points []Point) Hull {
	pts := uniquePoints(points)
	if len(pts) < 3 {
		return Hull{}
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Lat != pts[j].Lat {
			return pts[i].Lat < pts[j].Lat
		}
		return pts[i].Lon < pts[j].Lon
	})

	hull := make(Hull, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// The last point closes the ring back onto the first.
	hull = hull[:len(hull)-1]

	if len(hull) < 3 {
		return Hull{}
	}
	return hull
}

// Closed returns the hull vertices with the first vertex repeated at the end,
// the ring form map layers expect. An empty hull stays empty.
func (h Hull) Closed() []Point {
	if len(h) == 0 {
		return []Point{}
	}
	ring := make([]Point, 0, len(h)+1)
	ring = append(ring, h...)
	return append(ring, h[0])
}

// Contains reports whether p lies inside or on the boundary of the hull.
func (h Hull) Contains(p Point) bool {
	if len(h) < 3 {
		return false
	}
	for i := range h {
		if cross(h[i], h[(i+1)%len(h)], p) < 0 {
			return false
		}
	}
	return true
}

// Polygon returns the hull as a closed go-geom polygon in SRID 4326 with
// longitude as X and latitude as Y. Swapping the axes flips the winding, so
// the ring is walked backwards to stay counter-clockwise in (lon, lat).
// An empty hull returns nil.
func (h Hull) Polygon() *geom.Polygon {
	if len(h) < 3 {
		return nil
	}
	ring := h.Closed()
	flat := make([]float64, 0, 2*len(ring))
	for i := len(ring) - 1; i >= 0; i-- {
		flat = append(flat, ring[i].Lon, ring[i].Lat)
	}
	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)}).SetSRID(4326)
}

// cross returns the z component of (a->b) x (a->c) in the (lat, lon) plane.
// Positive values mean c lies counter-clockwise of a->b.
func cross(a, b, c Point) float64 {
	return (b.Lat-a.Lat)*(c.Lon-a.Lon) - (b.Lon-a.Lon)*(c.Lat-a.Lat)
}

func uniquePoints(points []Point) []Point {
	seen := make(map[Point]struct{}, len(points))
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
