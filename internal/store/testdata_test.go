package store

import (
	"time"

	"github.com/cfb-realignment/realign-cli/internal/conference"
	"github.com/cfb-realignment/realign-cli/internal/geo"
)

func testRun() *Run {
	lat, lon := 33.0, -86.0
	return &Run{
		Label:     "sec-1992",
		Sport:     conference.SportFootball,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Stats: []conference.Stats{
			{
				Conference:                "SEC",
				Year:                      1992,
				SchoolCount:               4,
				AvgDistanceBetweenSchools: 300.5,
				AvgDistanceFromCenter:     180.25,
				CenterLat:                 &lat,
				CenterLon:                 &lon,
				Capital:                   &conference.Capital{City: "Birmingham", State: "AL", Latitude: 33.5186, Longitude: -86.8104},
				Footprint:                 geo.FootprintRegional,
				Territory: geo.ConvexHull([]geo.Point{
					{Lat: 30, Lon: -90}, {Lat: 30, Lon: -82}, {Lat: 36, Lon: -82}, {Lat: 36, Lon: -90},
				}),
			},
			{Conference: "Solo", Year: 1992, SchoolCount: 1, Territory: geo.Hull{}},
		},
		Details: []conference.SchoolDetail{
			{Conference: "SEC", Year: 1992, School: "Alabama", AvgDistanceToOthers: 250, DistanceToCapital: 50},
			{Conference: "SEC", Year: 1992, School: "Auburn", AvgDistanceToOthers: 260, DistanceToCapital: 110},
		},
	}
}
