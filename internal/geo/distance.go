// Package geo provides the coarse geographic support used to
// disambiguate matches: great-circle distance and approximate county
// centroid lookup. This is deliberately not a geocoder; centroid
// accuracy is on the order of 5-20 miles.
package geo

import "math"

const earthRadiusMiles = 3959.0

// Point is a coordinate pair in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the great-circle distance in miles between two points,
// computed with the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlon1 := lon1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	rlon2 := lon2 * math.Pi / 180

	dlat := rlat2 - rlat1
	dlon := rlon2 - rlon1

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusMiles * c
}
