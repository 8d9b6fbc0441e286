package openmeteo

import (
	"context"
	"math"
	"net/url"
	"strconv"

	"weatheros/apis/transport"
	"weatheros/manager"
)

const DefaultURL = "https://api.open-meteo.com/v1/forecast"

func New(client *transport.Client, baseURL string) *weatherApi {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &weatherApi{
		client:  client,
		baseURL: baseURL,
	}
}

type weatherApi struct {
	client  *transport.Client
	baseURL string
}

// Current fetches current conditions at coords in the location's own time
// zone. A response without current_weather, or with any of its readings
// missing, is manager.ErrIncompleteData.
func (w weatherApi) Current(ctx context.Context, coords manager.Coordinates) (manager.Conditions, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("current_weather", "true")
	params.Set("timezone", "auto")

	var response struct {
		CurrentWeather *struct {
			Temperature *float64 `json:"temperature"`
			WindSpeed   *float64 `json:"windspeed"`
			WeatherCode *int     `json:"weathercode"`
		} `json:"current_weather"`
	}

	if err := w.client.GetJSON(ctx, w.baseURL, params, &response); err != nil {
		return manager.Conditions{}, err
	}

	current := response.CurrentWeather
	if current == nil || current.Temperature == nil || current.WindSpeed == nil || current.WeatherCode == nil {
		return manager.Conditions{}, manager.ErrIncompleteData
	}

	return manager.Conditions{
		TemperatureC: roundHalfUp(*current.Temperature),
		WindKmh:      *current.WindSpeed,
		Code:         *current.WeatherCode,
	}, nil
}

// roundHalfUp rounds .5 towards positive infinity, so -2.5 becomes -2.
// Adding 0.5 before flooring would round 0.49999999999999994 up.
func roundHalfUp(v float64) int {
	f := math.Floor(v)
	if v-f >= 0.5 {
		f++
	}
	return int(f)
}
