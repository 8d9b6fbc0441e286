// Package transport is the HTTP client every collaborator call goes through.
// Each Client wraps a resty client with a circuit breaker so that a service
// that keeps failing is reported as a communication error straight away.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"weatheros/manager"
)

const userAgent = "weatheros/1.0"

// Observer is told about every finished request.
type Observer interface {
	RecordUpstream(service string, duration time.Duration, err error)
}

type Config struct {
	Service string
	Timeout time.Duration
	// Failures is the number of consecutive failures that opens the breaker.
	Failures uint32
	// OpenTimeout is how long the breaker stays open.
	OpenTimeout time.Duration
}

type Client struct {
	service  string
	http     *resty.Client
	breaker  *gobreaker.CircuitBreaker
	observer Observer
	logger   *log.Logger
}

type Option func(*Client)

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func New(cfg Config, opts ...Option) *Client {
	failures := cfg.Failures
	if failures == 0 {
		failures = 5
	}

	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	c := &Client{
		service: cfg.Service,
		http:    httpClient,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    cfg.Service,
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Printf("%s: circuit breaker %s -> %s", name, from, to)
		},
		// A request the caller abandoned says nothing about the service.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return c
}

// GetJSON sends a GET to path with params and decodes the JSON response
// into out. Every failure wraps manager.ErrCommunication.
func (c *Client) GetJSON(ctx context.Context, path string, params url.Values, out any) error {
	start := time.Now()

	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.processRequest(ctx, path, params)
	})
	if err == nil {
		if err = json.Unmarshal(body.([]byte), out); err != nil {
			err = fmt.Errorf("decode: %w", err)
		}
	}

	if c.observer != nil {
		c.observer.RecordUpstream(c.service, time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", manager.ErrCommunication, c.service, err)
	}
	return nil
}

func (c *Client) processRequest(ctx context.Context, path string, params url.Values) ([]byte, error) {
	request := c.http.R().SetContext(ctx)
	request.SetQueryParamsFromValues(params)

	response, err := request.Get(path)
	if err != nil {
		return nil, err
	}

	c.logger.Printf("%s: GET %s -> %d in %s", c.service, path, response.StatusCode(), response.Time())

	if response.StatusCode() != http.StatusOK {
		buf := &bytes.Buffer{}
		if err := json.Indent(buf, response.Body(), "", "  "); err != nil {
			buf.Reset()
			buf.Write(bytes.TrimSpace(response.Body()))
		}
		return nil, fmt.Errorf("status code: %d\n%s", response.StatusCode(), buf.String())
	}

	return response.Body(), nil
}
