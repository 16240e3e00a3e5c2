package geo

// City is a named reference location used for nearest-city lookups.
type City struct {
	Name  string `json:"city"`
	State string `json:"state"`
	Point
}

// FindNearestCity returns the city closest to target (degrees). When several
// cities are equally close, the first one in input order wins. An empty
// corpus returns ErrEmptyReferenceCorpus.
func FindNearestCity(target Point, cities []City) (City, error) {
	if len(cities) == 0 {
		return City{}, ErrEmptyReferenceCorpus
	}

	nearest := 0
	nearestDist := Distance(target, cities[0].Point, Degrees)
	for i := 1; i < len(cities); i++ {
		if d := Distance(target, cities[i].Point, Degrees); d < nearestDist {
			nearest, nearestDist = i, d
		}
	}
	return cities[nearest], nil
}
