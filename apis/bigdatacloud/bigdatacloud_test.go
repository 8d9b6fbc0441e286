package bigdatacloud

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"weatheros/apis/transport"
	"weatheros/manager"
)

func TestReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("latitude") != "-23.55" || q.Get("longitude") != "-46.63" || q.Get("localityLanguage") != "pt" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"city":"São Paulo","locality":"Sé","principalSubdivision":"São Paulo","principalSubdivisionCode":"BR-SP","countryName":"Brasil"}`))
	}))
	defer srv.Close()

	client := transport.New(transport.Config{Service: "reverse", Timeout: time.Second})
	got, err := New(client, srv.URL, "pt").Reverse(context.Background(), manager.Coordinates{Latitude: -23.55, Longitude: -46.63})
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}

	want := manager.Address{City: "São Paulo", Locality: "Sé", Subdivision: "São Paulo", SubdivisionCode: "BR-SP"}
	if got != want {
		t.Errorf("Reverse = %+v, want %+v", got, want)
	}
}

func TestReverseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := transport.New(transport.Config{Service: "reverse", Timeout: time.Second})
	_, err := New(client, srv.URL, "pt").Reverse(context.Background(), manager.Coordinates{})
	if !errors.Is(err, manager.ErrCommunication) {
		t.Errorf("err = %v, want ErrCommunication", err)
	}
}
