// Package scheduler runs the periodic alert watcher for the server.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"wxstory/internal/weather"
)

// Watcher periodically refreshes active alerts for a fixed set of watched
// locations so the alert cache stays warm between API requests.
type Watcher struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	locations []string
	interval  time.Duration
	log       *slog.Logger
}

// New creates a Watcher over the given locations.
func New(locations []string, interval time.Duration, service *weather.Service, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		locations: locations,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
// With no locations configured it is a no-op.
func (w *Watcher) Start() error {
	if len(w.locations) == 0 {
		w.log.Info("alert watcher disabled, no locations configured")
		return nil
	}

	minutes := int(w.interval.Minutes())
	if minutes <= 0 {
		minutes = 10
	}

	_, err := w.scheduler.Every(minutes).Minutes().Do(w.refreshAll)
	if err != nil {
		return err
	}

	w.scheduler.StartAsync()
	w.log.Info("alert watcher started", "locations", len(w.locations), "interval_minutes", minutes)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (w *Watcher) Stop() {
	if w.scheduler != nil {
		w.scheduler.Stop()
	}
}

// refreshAll walks the watch list sequentially. Upstream rate expectations
// for the alerts API make one request at a time the polite choice.
func (w *Watcher) refreshAll() {
	for _, loc := range w.locations {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		alerts, err := w.service.RefreshAlerts(ctx, loc)
		cancel()

		if err != nil {
			w.log.Warn("alert refresh failed", "location", loc, "error", err)
			continue
		}
		if len(alerts) > 0 {
			for _, a := range alerts {
				w.log.Info("active alert", "location", loc, "event", a.Event, "severity", a.Severity)
			}
		}
	}
}
