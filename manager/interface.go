package manager

import (
	"context"
)

// Weather returns current conditions for a point.
type Weather interface {
	Current(ctx context.Context, coords Coordinates) (Conditions, error)
}

// Resolver turns user input or a device position into a displayable place.
type Resolver interface {
	ResolveByName(ctx context.Context, query string) (Place, error)
	// ResolveByCoordinates never fails; it falls back to a placeholder name.
	ResolveByCoordinates(ctx context.Context, coords Coordinates) Place
}

// Locator is the device geolocation capability.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

type Place struct {
	Coordinates Coordinates
	Name        string
	Subtitle    string
}

type Conditions struct {
	TemperatureC int
	WindKmh      float64
	Code         int
}

// GeoResult is the first match of a forward geocoding search.
type GeoResult struct {
	Coordinates Coordinates
	Name        string
	Region      string
}

// Address is what a reverse geocoding lookup knows about a point.
type Address struct {
	City            string
	Locality        string
	Subdivision     string
	SubdivisionCode string
}

// Snapshot is the weather currently on display.
type Snapshot struct {
	Name          string  `json:"name"`
	Subtitle      string  `json:"subtitle,omitempty"`
	TemperatureC  int     `json:"temperatureC"`
	WindKmh       float64 `json:"windKmh"`
	ConditionCode int     `json:"conditionCode"`
}
