package geo

import (
	"testing"

	"food-assistant/internal/models"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func lahore() models.ServiceRegion {
	return models.ServiceRegion{Name: "Lahore", North: 31.6963, South: 31.3884, East: 74.5133, West: 74.1866}
}

func restaurant() models.Coordinates {
	return models.Coordinates{Lat: 31.582045, Lng: 74.329376}
}

// ==========================
// Region Tests
// ==========================

func TestWithinRegion(t *testing.T) {
	tests := []struct {
		name  string
		coord models.Coordinates
		want  bool
	}{
		{"restaurant is inside", restaurant(), true},
		{"north-west corner is inclusive", models.Coordinates{Lat: 31.6963, Lng: 74.1866}, true},
		{"south-east corner is inclusive", models.Coordinates{Lat: 31.3884, Lng: 74.5133}, true},
		{"karachi is outside", models.Coordinates{Lat: 24.8607, Lng: 67.0011}, false},
		{"just north of the box", models.Coordinates{Lat: 31.6964, Lng: 74.3}, false},
		{"just east of the box", models.Coordinates{Lat: 31.5, Lng: 74.5134}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinRegion(tt.coord, lahore()))
		})
	}
}

// ==========================
// Distance Tests
// ==========================

func TestDistanceKm_ZeroForSamePoint(t *testing.T) {
	points := []models.Coordinates{
		restaurant(),
		{Lat: 0, Lng: 0},
		{Lat: -33.9, Lng: 151.2},
		{Lat: 89.9, Lng: -179.9},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, DistanceKm(p, p))
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	pairs := [][2]models.Coordinates{
		{restaurant(), {Lat: 31.4504, Lng: 74.3587}},
		{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}},
		{{Lat: 51.5, Lng: -0.12}, {Lat: 40.7, Lng: -74.0}},
	}
	for _, p := range pairs {
		assert.InDelta(t, DistanceKm(p[0], p[1]), DistanceKm(p[1], p[0]), 1e-9)
		assert.Greater(t, DistanceKm(p[0], p[1]), 0.0)
	}
}

func TestDistanceKm_OneDegreeOfLongitudeAtEquator(t *testing.T) {
	d := DistanceKm(models.Coordinates{Lat: 0, Lng: 0}, models.Coordinates{Lat: 0, Lng: 1})
	assert.InDelta(t, 111.195, d, 0.01)
}

// ==========================
// Delivery Estimate Tests
// ==========================

func TestMinutesForDistance(t *testing.T) {
	tests := []struct {
		km   float64
		want int
	}{
		{0, 20},
		{2.4, 20},
		{3, 21},
		{5, 25},
		{10, 35},
		{14.9, 45},
		{20, 45},
		{500, 45},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MinutesForDistance(tt.km), "km=%v", tt.km)
	}
}

func TestEstimateDelivery_ClampedInsideRegion(t *testing.T) {
	region := lahore()
	origin := restaurant()
	for lat := region.South; lat <= region.North; lat += 0.05 {
		for lng := region.West; lng <= region.East; lng += 0.05 {
			dest := models.Coordinates{Lat: lat, Lng: lng}
			est := EstimateDelivery(origin, dest)
			km := DistanceKm(origin, dest)

			assert.GreaterOrEqual(t, est.Minutes, 20)
			assert.LessOrEqual(t, est.Minutes, 45)
			assert.Equal(t, MinutesForDistance(km), est.Minutes)
			assert.InDelta(t, km, est.DistanceKm, 0.05)
		}
	}
}

func TestEstimateDelivery_RoundsDistanceToOneDecimal(t *testing.T) {
	est := EstimateDelivery(models.Coordinates{Lat: 0, Lng: 0}, models.Coordinates{Lat: 0, Lng: 0.1})
	assert.Equal(t, 11.1, est.DistanceKm)
	assert.Equal(t, 37, est.Minutes)
}
