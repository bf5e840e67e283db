package models

import "math"

// Mean Earth radius in meters.
const earthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance between two coordinates.
func HaversineMeters(from, to Coordinate) float64 {
	lat1 := from.Latitude * math.Pi / 180
	lat2 := to.Latitude * math.Pi / 180
	dLat := (to.Latitude - from.Latitude) * math.Pi / 180
	dLon := (to.Longitude - from.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// LineLengthMeters sums the pairwise great-circle distances along the vertex
// list. A line needs at least two vertices to have a length; fewer yields nil.
func LineLengthMeters(coords []Coordinate) *float64 {
	if len(coords) < 2 {
		return nil
	}
	var total float64
	for i := 1; i < len(coords); i++ {
		total += HaversineMeters(coords[i-1], coords[i])
	}
	return &total
}
