// Package device provides the geolocation capability of a terminal host:
// an IP-based lookup, or a fixed position from configuration.
package device

import (
	"context"
	"errors"
	"net/url"

	"weatheros/apis/transport"
	"weatheros/manager"
)

const DefaultURL = "http://ip-api.com/json/"

func NewIPLocator(client *transport.Client, baseURL string) *ipLocator {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &ipLocator{
		client:  client,
		baseURL: baseURL,
	}
}

type ipLocator struct {
	client  *transport.Client
	baseURL string
}

// Locate asks ip-api for the position of the host's public address. A
// "fail" status is returned as an error carrying the service's message.
func (l ipLocator) Locate(ctx context.Context) (manager.Coordinates, error) {
	params := url.Values{}
	params.Set("fields", "status,message,lat,lon")

	var response struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}

	if err := l.client.GetJSON(ctx, l.baseURL, params, &response); err != nil {
		return manager.Coordinates{}, err
	}

	if response.Status != "success" {
		if response.Message == "" {
			response.Message = "position unavailable"
		}
		return manager.Coordinates{}, errors.New(response.Message)
	}

	return manager.Coordinates{Latitude: response.Lat, Longitude: response.Lon}, nil
}

// Static always reports the same position.
type Static manager.Coordinates

func (s Static) Locate(context.Context) (manager.Coordinates, error) {
	return manager.Coordinates(s), nil
}
