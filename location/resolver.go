// Package location turns place names and device positions into the name
// shown above the weather.
package location

import (
	"context"
	"io"
	"log"
	"strings"

	"weatheros/manager"
)

const (
	Subtitle        = "YOUR LOCATION"
	UnknownLocation = "UNKNOWN LOCATION"
	GPSCoordinates  = "GPS COORDINATES"
)

type Geocoder interface {
	Search(ctx context.Context, name string) (manager.GeoResult, error)
}

type ReverseGeocoder interface {
	Reverse(ctx context.Context, coords manager.Coordinates) (manager.Address, error)
}

type Resolver struct {
	geocoder Geocoder
	reverse  ReverseGeocoder
	logger   *log.Logger
}

// New returns a Resolver. reverse may be nil, in which case every device
// position resolves to GPSCoordinates.
func New(geocoder Geocoder, reverse ReverseGeocoder, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Resolver{
		geocoder: geocoder,
		reverse:  reverse,
		logger:   logger,
	}
}

func (r *Resolver) ResolveByName(ctx context.Context, query string) (manager.Place, error) {
	result, err := r.geocoder.Search(ctx, query)
	if err != nil {
		return manager.Place{}, err
	}

	region := result.Region
	if code, ok := RegionCode(region); ok {
		region = code
	}

	return manager.Place{
		Coordinates: result.Coordinates,
		Name:        withRegion(result.Name, region),
	}, nil
}

func (r *Resolver) ResolveByCoordinates(ctx context.Context, coords manager.Coordinates) manager.Place {
	place := manager.Place{Coordinates: coords, Name: GPSCoordinates, Subtitle: Subtitle}
	if r.reverse == nil {
		return place
	}

	addr, err := r.reverse.Reverse(ctx, coords)
	if err != nil {
		r.logger.Printf("reverse geocoding %.4f,%.4f: %v", coords.Latitude, coords.Longitude, err)
		return place
	}

	city := addr.City
	if city == "" {
		city = addr.Locality
	}
	if city == "" {
		place.Name = UnknownLocation
		return place
	}

	code, ok := RegionCode(addr.Subdivision)
	if !ok {
		code = subdivisionSuffix(addr.SubdivisionCode)
	}

	place.Name = withRegion(city, code)
	return place
}

// subdivisionSuffix returns "PR" for an ISO 3166-2 code like "BR-PR".
func subdivisionSuffix(code string) string {
	parts := strings.Split(code, "-")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func withRegion(name, region string) string {
	if region == "" {
		return name
	}
	return name + " - " + region
}
