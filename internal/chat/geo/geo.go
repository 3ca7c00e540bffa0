// Package geo holds the delivery-area and ETA arithmetic used by the chat router.
package geo

import (
	"math"

	"food-assistant/internal/models"
)

const (
	earthRadiusKm = 6371.0

	baseMinutes   = 15.0
	minutesPerKm  = 2.0
	minETAMinutes = 20
	maxETAMinutes = 45
)

// WithinRegion reports whether coord lies inside region, edges included.
func WithinRegion(coord models.Coordinates, region models.ServiceRegion) bool {
	return coord.Lat >= region.South && coord.Lat <= region.North &&
		coord.Lng >= region.West && coord.Lng <= region.East
}

// DistanceKm returns the haversine great-circle distance between a and b.
func DistanceKm(a, b models.Coordinates) float64 {
	lat1 := degreesToRadians(a.Lat)
	lng1 := degreesToRadians(a.Lng)
	lat2 := degreesToRadians(b.Lat)
	lng2 := degreesToRadians(b.Lng)

	dlat := lat2 - lat1
	dlng := lng2 - lng1
	h := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// EstimateDelivery maps the origin-to-destination distance onto delivery minutes:
// round(15 + 2*km) clamped to [20, 45]. DistanceKm is rounded to one decimal.
func EstimateDelivery(origin, dest models.Coordinates) models.DeliveryEstimate {
	km := DistanceKm(origin, dest)
	return models.DeliveryEstimate{
		Minutes:    MinutesForDistance(km),
		DistanceKm: math.Round(km*10) / 10,
	}
}

// MinutesForDistance applies the delivery-time rule to a raw distance.
func MinutesForDistance(km float64) int {
	minutes := int(math.Round(baseMinutes + minutesPerKm*km))
	if minutes < minETAMinutes {
		return minETAMinutes
	}
	if minutes > maxETAMinutes {
		return maxETAMinutes
	}
	return minutes
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
