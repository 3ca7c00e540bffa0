package models

// Coordinates are WGS84 degrees.
type Coordinates struct {
	Lat float64 `json:"lat" mapstructure:"lat"`
	Lng float64 `json:"lng" mapstructure:"lng"`
}

// Location is a pinned point with an optional display name.
type Location struct {
	Coordinates
	Name string `json:"name,omitempty"`
}

// ServiceRegion is the axis-aligned box the business delivers within.
type ServiceRegion struct {
	Name  string  `json:"name" mapstructure:"name"`
	North float64 `json:"north" mapstructure:"north"`
	South float64 `json:"south" mapstructure:"south"`
	East  float64 `json:"east" mapstructure:"east"`
	West  float64 `json:"west" mapstructure:"west"`
}

// RestaurantOrigin is the single fulfillment point used for ETAs.
type RestaurantOrigin struct {
	Name        string      `json:"name" mapstructure:"name"`
	Coordinates Coordinates `json:"coordinates" mapstructure:"coordinates"`
}

type DeliveryEstimate struct {
	Minutes    int     `json:"minutes"`
	DistanceKm float64 `json:"distanceKm"`
}
