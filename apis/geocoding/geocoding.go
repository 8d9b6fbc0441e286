package geocoding

import (
	"context"
	"net/url"

	"weatheros/apis/transport"
	"weatheros/manager"
)

const DefaultURL = "https://geocoding-api.open-meteo.com/v1/search"

func New(client *transport.Client, baseURL, language string) *geocoding {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &geocoding{
		client:   client,
		baseURL:  baseURL,
		language: language,
	}
}

// geocoding looks places up with the Open-Meteo geocoding API.
type geocoding struct {
	client   *transport.Client
	baseURL  string
	language string
}

// Search returns the best match for name, or manager.ErrNotFound.
func (g geocoding) Search(ctx context.Context, name string) (manager.GeoResult, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("count", "1")
	params.Set("language", g.language)
	params.Set("format", "json")

	var response struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Name      string  `json:"name"`
			Admin1    string  `json:"admin1"`
		} `json:"results"`
	}

	if err := g.client.GetJSON(ctx, g.baseURL, params, &response); err != nil {
		return manager.GeoResult{}, err
	}

	if len(response.Results) == 0 {
		return manager.GeoResult{}, manager.ErrNotFound
	}

	first := response.Results[0]
	return manager.GeoResult{
		Coordinates: manager.Coordinates{Latitude: first.Latitude, Longitude: first.Longitude},
		Name:        first.Name,
		Region:      first.Admin1,
	}, nil
}
