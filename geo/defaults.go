package geo

import "travelglobe/gfx"

// DefaultDestinations returns the built-in travel list: seven visited
// cities and three planned ones.
func DefaultDestinations() Destinations {
	return Destinations{
		{Name: "Tokyo, Japan", Lat: 35.6762, Lng: 139.6503, Visited: true, Color: gfx.RGB(0x00, 0xff, 0x88), Description: "Amazing culture and technology hub"},
		{Name: "New York, USA", Lat: 40.7128, Lng: -74.0060, Visited: true, Color: gfx.RGB(0x00, 0x88, 0xff), Description: "The city that never sleeps"},
		{Name: "Paris, France", Lat: 48.8566, Lng: 2.3522, Visited: true, Color: gfx.RGB(0xff, 0x88, 0x00), Description: "City of lights and romance"},
		{Name: "London, UK", Lat: 51.5074, Lng: -0.1278, Visited: true, Color: gfx.RGB(0xff, 0x00, 0x88), Description: "Historic and modern blend"},
		{Name: "Singapore", Lat: 1.3521, Lng: 103.8198, Visited: true, Color: gfx.RGB(0x88, 0x00, 0xff), Description: "Garden city of Asia"},
		{Name: "Sydney, Australia", Lat: -33.8688, Lng: 151.2093, Visited: true, Color: gfx.RGB(0x00, 0xff, 0xff), Description: "Beautiful harbor city"},
		{Name: "Dubai, UAE", Lat: 25.2048, Lng: 55.2708, Visited: true, Color: gfx.RGB(0xff, 0xff, 0x00), Description: "Modern architectural marvel"},
		{Name: "Barcelona, Spain", Lat: 41.3851, Lng: 2.1734, Visited: false, Color: gfx.RGB(0xff, 0x44, 0x44), Description: "Next destination - Art and architecture"},
		{Name: "Reykjavik, Iceland", Lat: 64.1466, Lng: -21.9426, Visited: false, Color: gfx.RGB(0x44, 0xff, 0x44), Description: "Northern lights adventure"},
		{Name: "Bali, Indonesia", Lat: -8.3405, Lng: 115.0920, Visited: false, Color: gfx.RGB(0x44, 0x44, 0xff), Description: "Tropical paradise getaway"},
	}
}
