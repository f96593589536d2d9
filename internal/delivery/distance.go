package delivery

import "math"

const earthRadiusKM = 6371.0

// roadFactor scales straight-line distance to an approximate driving
// distance.
const roadFactor = 1.3

// HaversineKM is the great-circle distance between two coordinates in
// kilometres.
func HaversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

// RoadDistanceKM estimates driving distance from the straight-line
// distance.
func RoadDistanceKM(lat1, lng1, lat2, lng2 float64) float64 {
	return HaversineKM(lat1, lng1, lat2, lng2) * roadFactor
}

// EstimateMinutes is a rough delivery time: pickup overhead plus
// urban driving pace.
func EstimateMinutes(distanceKM float64) int {
	return int(math.Round(distanceKM*3)) + 15
}
