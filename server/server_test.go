package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"weatheros/manager"
	"weatheros/metrics"
)

type stubResolver struct{}

func (stubResolver) ResolveByName(_ context.Context, query string) (manager.Place, error) {
	if query == "Xyzzyville" {
		return manager.Place{}, manager.ErrNotFound
	}
	return manager.Place{Name: query + " - PR"}, nil
}

func (stubResolver) ResolveByCoordinates(_ context.Context, coords manager.Coordinates) manager.Place {
	return manager.Place{Coordinates: coords, Name: "GPS COORDINATES", Subtitle: "YOUR LOCATION"}
}

type stubWeather struct{}

func (stubWeather) Current(context.Context, manager.Coordinates) (manager.Conditions, error) {
	return manager.Conditions{TemperatureC: 19, WindKmh: 12, Code: 3}, nil
}

type stubLocator struct{}

func (stubLocator) Locate(context.Context) (manager.Coordinates, error) {
	return manager.Coordinates{Latitude: -25.43, Longitude: -49.27}, nil
}

func newApp(t *testing.T, opts ...manager.Option) *fiber.App {
	t.Helper()
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector("weatheros", reg)

	session := manager.New(stubResolver{}, stubWeather{}, append(opts, manager.WithRecorder(collector))...)
	app := fiber.New()
	RegisterRoutes(app, session, reg)
	return app
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestState(t *testing.T) {
	app := newApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body := decode(t, resp)
	if body["status"] != "idle" || body["message"] != manager.MsgAwaiting {
		t.Errorf("body = %v", body)
	}
}

func TestSearch(t *testing.T) {
	app := newApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":"Curitiba"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body := decode(t, resp)
	snap, _ := body["snapshot"].(map[string]any)
	if body["status"] != "ready" || snap["name"] != "Curitiba - PR" || snap["temperatureC"] != float64(19) {
		t.Errorf("body = %v", body)
	}
	if body["condition"] != "Nublado" {
		t.Errorf("condition = %v", body["condition"])
	}
}

func TestSearchQueryParamAndNotFound(t *testing.T) {
	app := newApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/search?q=Xyzzyville", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := decode(t, resp)
	if body["status"] != "error" || body["message"] != manager.MsgNotFound || body["snapshot"] != nil {
		t.Errorf("body = %v", body)
	}
}

func TestSearchEmpty(t *testing.T) {
	app := newApp(t)

	for _, target := range []string{"/api/search", "/api/search?q=%20%20"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, target, nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", target, resp.StatusCode, http.StatusBadRequest)
		}
	}
}

func TestLocate(t *testing.T) {
	resp, err := newApp(t).Test(httptest.NewRequest(http.MethodPost, "/api/locate", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotImplemented {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotImplemented)
	}

	resp, err = newApp(t, manager.WithLocator(stubLocator{})).Test(httptest.NewRequest(http.MethodPost, "/api/locate", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := decode(t, resp)
	snap, _ := body["snapshot"].(map[string]any)
	if body["status"] != "ready" || snap["subtitle"] != "YOUR LOCATION" {
		t.Errorf("body = %v", body)
	}
}

func TestMetrics(t *testing.T) {
	app := newApp(t)

	if _, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/search?q=Curitiba", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), `weatheros_pipelines_total{kind="search",status="ready"} 1`) {
		t.Errorf("metrics output missing pipeline counter:\n%s", raw)
	}
}
