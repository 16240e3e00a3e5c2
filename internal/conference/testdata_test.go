package conference

import "github.com/cfb-realignment/realign-cli/internal/geo"

func school(name string, lat, lon float64) School {
	return School{Name: name, Latitude: Coordinate(lat), Longitude: Coordinate(lon)}
}

func testConference() Conference {
	return Conference{
		Year:     1995,
		Name:     "Big Eight",
		Football: true,
		Schools: []School{
			school("Nebraska", 40.8202, -96.7005),
			school("Oklahoma", 35.2059, -97.4457),
			school("Colorado", 40.0076, -105.2659),
			school("Missouri", 38.9404, -92.3277),
			school("Kansas", 38.9543, -95.2558),
		},
	}
}

func testCities() []geo.City {
	return []geo.City{
		{Name: "Denver", State: "CO", Point: geo.Point{Lat: 39.7392, Lon: -104.9903}},
		{Name: "Kansas City", State: "MO", Point: geo.Point{Lat: 39.0997, Lon: -94.5786}},
		{Name: "Wichita", State: "KS", Point: geo.Point{Lat: 37.6872, Lon: -97.3301}},
		{Name: "Dallas", State: "TX", Point: geo.Point{Lat: 32.7767, Lon: -96.7970}},
	}
}
