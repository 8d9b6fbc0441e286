package bigdatacloud

import (
	"context"
	"net/url"
	"strconv"

	"weatheros/apis/transport"
	"weatheros/manager"
)

const DefaultURL = "https://api.bigdatacloud.net/data/reverse-geocode-client"

func New(client *transport.Client, baseURL, language string) *reverse {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &reverse{
		client:   client,
		baseURL:  baseURL,
		language: language,
	}
}

type reverse struct {
	client   *transport.Client
	baseURL  string
	language string
}

func (r reverse) Reverse(ctx context.Context, coords manager.Coordinates) (manager.Address, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("localityLanguage", r.language)

	var response struct {
		City                     string `json:"city"`
		Locality                 string `json:"locality"`
		PrincipalSubdivision     string `json:"principalSubdivision"`
		PrincipalSubdivisionCode string `json:"principalSubdivisionCode"`
	}

	if err := r.client.GetJSON(ctx, r.baseURL, params, &response); err != nil {
		return manager.Address{}, err
	}

	return manager.Address{
		City:            response.City,
		Locality:        response.Locality,
		Subdivision:     response.PrincipalSubdivision,
		SubdivisionCode: response.PrincipalSubdivisionCode,
	}, nil
}
