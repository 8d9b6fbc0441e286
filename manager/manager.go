package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Recorder receives one call per finished pipeline.
type Recorder interface {
	Pipeline(kind string, status Status)
}

type Option func(*Session)

func WithLocator(locator Locator) Option {
	return func(s *Session) { s.locator = locator }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

func WithRecorder(recorder Recorder) Option {
	return func(s *Session) { s.recorder = recorder }
}

// Session owns the displayed state and runs lookup pipelines against it.
// Every action supersedes the previous one: transitions from an older
// pipeline are dropped once a newer one has started.
type Session struct {
	resolver Resolver
	weather  Weather
	locator  Locator
	logger   *log.Logger
	recorder Recorder
	validate *validator.Validate

	mu        sync.Mutex
	state     State
	seq       uint64
	listeners []func(State)
	// pending holds applied states not yet delivered to listeners.
	pending []State

	// notifyMu serialises delivery so listeners see states in applied order.
	notifyMu sync.Mutex
}

func New(resolver Resolver, weather Weather, opts ...Option) *Session {
	s := &Session{
		resolver: resolver,
		weather:  weather,
		logger:   log.New(io.Discard, "", 0),
		validate: validator.New(),
		state:    InitialState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called with every applied state, in order.
// fn runs outside the state lock and may call State, but must not start a
// lookup.
func (s *Session) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// CanLocate reports whether a device locator is configured.
func (s *Session) CanLocate() bool {
	return s.locator != nil
}

// Submit looks up the weather for a place name. An empty query is
// rejected with ErrEmptyQuery and leaves the state untouched; every other
// outcome is reported through the returned State.
func (s *Session) Submit(ctx context.Context, query string) (State, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.State(), ErrEmptyQuery
	}

	p := s.begin("search", MsgResolving)
	p.logf("resolving %q", query)

	place, err := s.resolver.ResolveByName(ctx, query)
	if err != nil {
		p.logf("resolve failed: %v", err)
		if errors.Is(err, ErrNotFound) {
			return p.finish(MsgNotFound), nil
		}
		return p.finish(MsgCommunication), nil
	}

	return s.fetch(ctx, p, place), nil
}

// Locate looks up the weather at the device position. Without a locator it
// returns ErrCapabilityUnavailable and leaves the state untouched.
func (s *Session) Locate(ctx context.Context) (State, error) {
	if s.locator == nil {
		return s.State(), ErrCapabilityUnavailable
	}

	p := s.begin("locate", MsgTracking)

	coords, err := s.locator.Locate(ctx)
	if err == nil && s.validate.Struct(coords) != nil {
		err = fmt.Errorf("position out of range (%g, %g)", coords.Latitude, coords.Longitude)
	}
	if err != nil {
		p.logf("locate failed: %v", err)
		return p.finish(MsgGPSErrorPrefix + firstLine(err.Error())), nil
	}
	p.logf("position %.4f,%.4f", coords.Latitude, coords.Longitude)

	place := s.resolver.ResolveByCoordinates(ctx, coords)
	place.Coordinates = coords

	return s.fetch(ctx, p, place), nil
}

// firstLine keeps error text to a single display row.
func firstLine(msg string) string {
	line, _, _ := strings.Cut(msg, "\n")
	return strings.TrimSpace(line)
}

func (s *Session) fetch(ctx context.Context, p *pipeline, place Place) State {
	p.apply(func(st State) State { return st.loading(MsgDownloading) })

	cond, err := s.weather.Current(ctx, place.Coordinates)
	if err != nil {
		p.logf("weather failed: %v", err)
		if errors.Is(err, ErrIncompleteData) {
			return p.finish(MsgIncomplete)
		}
		return p.finish(MsgConnection)
	}

	p.logf("weather for %s: %d°C code %d", place.Name, cond.TemperatureC, cond.Code)
	return p.done(Snapshot{
		Name:          place.Name,
		Subtitle:      place.Subtitle,
		TemperatureC:  cond.TemperatureC,
		WindKmh:       cond.WindKmh,
		ConditionCode: cond.Code,
	})
}

// pipeline is one user action travelling through the session.
type pipeline struct {
	s    *Session
	kind string
	seq  uint64
	id   string
}

func (s *Session) begin(kind, msg string) *pipeline {
	s.mu.Lock()
	s.seq++
	p := &pipeline{s: s, kind: kind, seq: s.seq, id: uuid.NewString()}
	s.mu.Unlock()

	p.apply(func(st State) State { return st.loading(msg) })
	return p
}

// apply runs fn against the current state unless a newer pipeline has
// started since p began. It returns the state as it stands afterwards.
func (p *pipeline) apply(fn func(State) State) (State, bool) {
	s := p.s
	s.mu.Lock()

	if p.seq != s.seq {
		p.logf("superseded by #%d, dropping transition", s.seq)
		st := s.state
		s.mu.Unlock()
		return st, false
	}

	s.state = fn(s.state)
	s.state.Seq = p.seq
	st := s.state
	s.pending = append(s.pending, st)
	s.mu.Unlock()

	s.notify()
	return st, true
}

// notify delivers pending states without holding mu. Whoever holds notifyMu
// drains the queue, so every state is delivered once the call returns.
func (s *Session) notify() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	for {
		s.mu.Lock()
		batch := s.pending
		s.pending = nil
		listeners := append(([]func(State))(nil), s.listeners...)
		s.mu.Unlock()

		if len(batch) == 0 {
			return
		}
		for _, st := range batch {
			for _, fn := range listeners {
				fn(st)
			}
		}
	}
}

func (p *pipeline) finish(msg string) State {
	st, ok := p.apply(func(st State) State { return st.failed(msg) })
	p.record(ok, Error)
	return st
}

func (p *pipeline) done(snap Snapshot) State {
	st, ok := p.apply(func(st State) State { return st.ready(snap) })
	p.record(ok, Ready)
	return st
}

func (p *pipeline) record(applied bool, status Status) {
	if applied && p.s.recorder != nil {
		p.s.recorder.Pipeline(p.kind, status)
	}
}

func (p *pipeline) logf(format string, args ...any) {
	p.s.logger.Printf("[%s #%d %s] "+format, append([]any{p.kind, p.seq, p.id}, args...)...)
}
