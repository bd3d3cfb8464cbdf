package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Refresher is the part of the session the scheduler drives.
type Refresher interface {
	ResolveAndFetch(ctx context.Context, city, countryCode string) (*weather.WeatherSnapshot, error)
	Snapshot() *weather.WeatherSnapshot
}

// Scheduler periodically refetches the dashboard location.
type Scheduler struct {
	scheduler      *gocron.Scheduler
	session        Refresher
	defaultCity    string
	defaultCountry string
	interval       time.Duration
	timeout        time.Duration
}

// New creates a new Scheduler. The first run happens immediately on Start.
func New(session Refresher, city, country string, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler:      s,
		session:        session,
		defaultCity:    city,
		defaultCountry: country,
		interval:       interval,
		timeout:        30 * time.Second,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
// A non-positive interval only performs the initial fetch.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh disabled; fetching default location once")
		go s.Refresh()
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.Refresh)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// Refresh refetches the location currently shown, or the default location
// before anything has been fetched. A busy session is skipped, not queued.
func (s *Scheduler) Refresh() {
	city, country := s.target()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	log.Printf("scheduler: refreshing weather for %s (%s)", city, country)
	if _, err := s.session.ResolveAndFetch(ctx, city, country); err != nil {
		if errors.Is(err, weather.ErrFetchInProgress) {
			log.Println("scheduler: fetch already in progress; skipping this run")
			return
		}
		log.Printf("scheduler: refresh failed for %s: %v", city, err)
	}
}

func (s *Scheduler) target() (string, string) {
	if snap := s.session.Snapshot(); snap != nil {
		return snap.Location.Name, snap.Location.CountryCode
	}
	return s.defaultCity, s.defaultCountry
}
