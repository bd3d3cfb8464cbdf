package weather

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// LocationResolver is satisfied by *Resolver.
type LocationResolver interface {
	Resolve(ctx context.Context, city, countryCode string) (Location, error)
}

// ForecastFetcher is satisfied by *Fetcher.
type ForecastFetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (ForecastResult, error)
}

// Session owns the dashboard's weather state: the current snapshot and the
// fetch-in-progress flag. At most one fetch pipeline runs per session.
type Session struct {
	resolver LocationResolver
	fetcher  ForecastFetcher
	store    Store
	observer FetchObserver
	now      func() time.Time

	fetching atomic.Bool

	mu       sync.RWMutex
	snapshot *WeatherSnapshot

	subMu   sync.Mutex
	subs    map[int]func(*WeatherSnapshot)
	nextSub int
}

// NewSession creates a Session. store may be nil when no history is kept.
func NewSession(resolver LocationResolver, fetcher ForecastFetcher, store Store) *Session {
	return &Session{
		resolver: resolver,
		fetcher:  fetcher,
		store:    store,
		now:      time.Now,
		subs:     make(map[int]func(*WeatherSnapshot)),
	}
}

// SetObserver registers an observer for fetch outcomes. Call before use.
func (s *Session) SetObserver(o FetchObserver) {
	s.observer = o
}

// ResolveAndFetch geocodes city/country, fetches the forecast and replaces
// the current snapshot on success.
//
// A call made while another is outstanding returns ErrFetchInProgress
// without touching the network. On any failure the previous snapshot is
// kept.
func (s *Session) ResolveAndFetch(ctx context.Context, city, countryCode string) (*WeatherSnapshot, error) {
	start := s.now()

	city = strings.TrimSpace(city)
	if city == "" {
		s.observe("validation", start)
		return nil, &ValidationError{Field: "city", Message: "Please enter a city name to update the weather."}
	}

	if !s.fetching.CAS(false, true) {
		log.Printf("session: fetch for %q rejected; another fetch is in progress", city)
		s.observe("busy", start)
		return nil, ErrFetchInProgress
	}
	defer s.fetching.Store(false)

	loc, err := s.resolver.Resolve(ctx, city, countryCode)
	if err != nil {
		log.Printf("ERROR: session: resolving %q (%s) failed: %v", city, countryCode, err)
		s.observe(outcomeOf(err), start)
		return nil, err
	}

	forecast, err := s.fetcher.Fetch(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		log.Printf("ERROR: session: forecast for %s failed: %v", loc.Key(), err)
		s.observe(outcomeOf(err), start)
		return nil, err
	}

	snapshot := NewSnapshot(loc, forecast, s.now())

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	if s.store != nil {
		s.store.SaveSnapshot(loc, *snapshot)
	}

	log.Printf("INFO: session: weather updated for %s", loc.Label())
	s.observe("success", start)
	s.publish(snapshot)
	return snapshot, nil
}

// Snapshot returns the current snapshot, or nil before the first success.
func (s *Session) Snapshot() *WeatherSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Summary returns the current-conditions sentence for the current snapshot.
func (s *Session) Summary() (string, bool) {
	return Summary(s.Snapshot())
}

// Fetching reports whether a fetch is outstanding.
func (s *Session) Fetching() bool {
	return s.fetching.Load()
}

// Subscribe registers fn to be called with every new snapshot. fn runs on
// the goroutine that completed the fetch, outside the session's locks.
func (s *Session) Subscribe(fn func(*WeatherSnapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// GetLatest delegates to the underlying store.
func (s *Session) GetLatest(loc Location) (WeatherSnapshot, error) {
	if s.store == nil {
		return WeatherSnapshot{}, ErrNoHistory
	}
	return s.store.GetLatest(loc)
}

// GetRange delegates to the underlying store.
func (s *Session) GetRange(loc Location, from, to time.Time) ([]WeatherSnapshot, error) {
	if s.store == nil {
		return nil, ErrNoHistory
	}
	return s.store.GetRange(loc, from, to)
}

func (s *Session) publish(snapshot *WeatherSnapshot) {
	s.subMu.Lock()
	fns := make([]func(*WeatherSnapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

func (s *Session) observe(outcome string, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveFetch(outcome, s.now().Sub(start))
	}
}

func outcomeOf(err error) string {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		service    *ServiceError
	)
	switch {
	case errors.As(err, &validation):
		return "validation"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &service):
		return "service"
	case errors.Is(err, ErrFetchInProgress):
		return "busy"
	default:
		return "error"
	}
}
