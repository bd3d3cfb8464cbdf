package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	// ErrNotFound is returned when no snapshot is held for a location.
	ErrNotFound = errors.New("no weather data for location")
)

// MemoryStore keeps the snapshot history of the current dashboard session,
// per location, oldest first. It is safe for concurrent use.
type MemoryStore struct {
	mu sync.RWMutex

	// key: weather.Location.Key()
	history map[string][]weather.WeatherSnapshot

	maxHistory int           // per location, <= 0 means unlimited
	maxAge     time.Duration // <= 0 means unlimited
	now        func() time.Time
}

// NewMemoryStore creates a MemoryStore with optional retention limits.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		history:    make(map[string][]weather.WeatherSnapshot),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveSnapshot appends a snapshot for loc and applies retention.
func (s *MemoryStore) SaveSnapshot(loc weather.Location, snapshot weather.WeatherSnapshot) {
	key := loc.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	snaps := append(s.history[key], snapshot)

	if s.maxHistory > 0 && len(snaps) > s.maxHistory {
		snaps = snaps[len(snaps)-s.maxHistory:]
	}

	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for i < len(snaps) && snaps[i].FetchedAt.Before(cutoff) {
			i++
		}
		// Always keep the newest snapshot, even if it is older than the cutoff.
		if i == len(snaps) {
			i = len(snaps) - 1
		}
		snaps = snaps[i:]
	}

	s.history[key] = snaps
}

// GetLatest returns the newest snapshot for loc.
func (s *MemoryStore) GetLatest(loc weather.Location) (weather.WeatherSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snaps := s.history[loc.Key()]
	if len(snaps) == 0 {
		return weather.WeatherSnapshot{}, ErrNotFound
	}
	return snaps[len(snaps)-1], nil
}

// GetRange returns the snapshots for loc fetched within [from, to].
func (s *MemoryStore) GetRange(loc weather.Location, from, to time.Time) ([]weather.WeatherSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []weather.WeatherSnapshot
	for _, snap := range s.history[loc.Key()] {
		if !snap.FetchedAt.Before(from) && !snap.FetchedAt.After(to) {
			result = append(result, snap)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}
