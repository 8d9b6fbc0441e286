package cli

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"weatheros/apis/bigdatacloud"
	"weatheros/apis/device"
	"weatheros/apis/geocoding"
	"weatheros/apis/openmeteo"
	"weatheros/apis/transport"
	"weatheros/config"
	"weatheros/location"
	"weatheros/manager"
	"weatheros/metrics"
)

func newSession(cfg *config.Config, logger *log.Logger, reg *prometheus.Registry) *manager.Session {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector("weatheros", reg)

	client := func(service string) *transport.Client {
		return transport.New(transport.Config{
			Service:     service,
			Timeout:     cfg.Timeout,
			Failures:    cfg.Breaker.Failures,
			OpenTimeout: cfg.Breaker.Timeout,
		}, transport.WithObserver(collector), transport.WithLogger(logger))
	}

	var reverse location.ReverseGeocoder
	if cfg.Reverse.Enabled {
		reverse = bigdatacloud.New(client("reverse"), cfg.Reverse.URL, cfg.Language)
	}
	resolver := location.New(geocoding.New(client("geocoding"), cfg.Geocoding.URL, cfg.Language), reverse, logger)

	opts := []manager.Option{
		manager.WithLogger(logger),
		manager.WithRecorder(collector),
	}
	switch cfg.Locate.Provider {
	case config.LocateIPAPI:
		opts = append(opts, manager.WithLocator(device.NewIPLocator(client("locate"), cfg.Locate.URL)))
	case config.LocateStatic:
		opts = append(opts, manager.WithLocator(device.Static{
			Latitude:  cfg.Locate.Latitude,
			Longitude: cfg.Locate.Longitude,
		}))
	}

	return manager.New(resolver, openmeteo.New(client("weather"), cfg.Weather.URL), opts...)
}
