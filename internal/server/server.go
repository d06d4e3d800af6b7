package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pfrederiksen/handball-tv/internal/calendar"
	"github.com/pfrederiksen/handball-tv/internal/event"
	"github.com/pfrederiksen/handball-tv/internal/logger"
	"github.com/pfrederiksen/handball-tv/internal/schedule"
	"github.com/pfrederiksen/handball-tv/internal/storage"
)

// RefreshFunc produces a fresh parse of the schedule source.
type RefreshFunc func(ctx context.Context) (*schedule.Result, error)

// Config wires a Server together.
type Config struct {
	Listen   string
	Refresh  RefreshFunc
	Store    *storage.Store
	Calendar calendar.Options
	// Timeout bounds one refresh run end to end, including the headless
	// render. Defaults to 5 minutes.
	Timeout time.Duration
}

// Server serves the most recently generated feed and keeps it fresh.
type Server struct {
	listen  string
	refresh RefreshFunc
	store   *storage.Store
	calOpts calendar.Options
	timeout time.Duration
	mux     *http.ServeMux

	mu       sync.RWMutex
	feed     []byte
	events   []*event.Event
	stats    schedule.Stats
	lastRun  time.Time
	lastErr  string
	failures int
	stale    bool
}

// New creates a Server. It does not fetch anything until Refresh or Run
// is called.
func New(cfg Config) *Server {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	s := &Server{
		listen:  cfg.Listen,
		refresh: cfg.Refresh,
		store:   cfg.Store,
		calOpts: cfg.Calendar,
		timeout: timeout,
		mux:     http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler serving the feed and health endpoints.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Refresh runs the pipeline once and swaps in the result. On failure the
// previous feed stays in place and the failure is recorded for /health.
func (s *Server) Refresh(ctx context.Context) error {
	started := time.Now()

	res, err := s.refresh(ctx)
	if err != nil {
		s.recordFailure(err)
		return err
	}

	doc := []byte(calendar.Encode(res.Events, s.calOpts))

	s.mu.RLock()
	previous := s.events
	s.mu.RUnlock()
	added, removed := event.Changes(previous, res.Events)

	if s.store != nil {
		if err := s.store.SaveFeed(doc); err != nil {
			logger.Error("persisting feed", nil, err)
		}
		snap := &storage.Snapshot{Events: res.Events, Stats: res.Stats}
		if err := s.store.SaveSnapshot(snap); err != nil {
			logger.Error("persisting snapshot", nil, err)
		}
	}

	s.mu.Lock()
	s.feed = doc
	s.events = res.Events
	s.stats = res.Stats
	s.lastRun = time.Now().UTC()
	s.lastErr = ""
	s.failures = 0
	s.stale = false
	s.mu.Unlock()

	elapsed := time.Since(started)
	logger.Info("feed refreshed", logger.Fields{
		"events":   len(res.Events),
		"added":    len(added),
		"removed":  len(removed),
		"duration": elapsed.String(),
	})
	logger.IncrCounter("refresh.success")
	logger.SetGauge("events.current", float64(len(res.Events)))
	logger.RecordTiming("refresh.duration", elapsed)

	return nil
}

func (s *Server) recordFailure(err error) {
	s.mu.Lock()
	s.failures++
	s.lastErr = err.Error()
	failures := s.failures
	s.mu.Unlock()

	logger.Error("refresh failed", logger.Fields{
		"consecutive_failures": failures,
	}, err)
	logger.IncrCounter("refresh.failure")
}

// bootstrap establishes the first feed: a live refresh, or the persisted
// feed from a previous process when the refresh fails. No feed at all is
// fatal.
func (s *Server) bootstrap(ctx context.Context) error {
	refreshCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	refreshErr := s.Refresh(refreshCtx)
	if refreshErr == nil {
		return nil
	}
	if s.store == nil {
		return fmt.Errorf("initial refresh: %w", refreshErr)
	}

	feed, err := s.store.LoadFeed()
	if err != nil || len(feed) == 0 {
		return fmt.Errorf("initial refresh failed with no cached feed to fall back to: %w", refreshErr)
	}
	snap, err := s.store.LoadSnapshot()
	if err != nil {
		snap = &storage.Snapshot{}
	}

	s.mu.Lock()
	s.feed = feed
	s.events = snap.Events
	s.stats = snap.Stats
	s.stale = true
	if t, parseErr := time.Parse(time.RFC3339, snap.UpdatedAt); parseErr == nil {
		s.lastRun = t
	}
	s.mu.Unlock()

	logger.Warn("serving cached feed after failed initial refresh", logger.Fields{
		"events":     len(snap.Events),
		"updated_at": snap.UpdatedAt,
	})
	return nil
}

// Run bootstraps the feed, schedules refreshes per cronExpr and serves
// HTTP until ctx is canceled.
func (s *Server) Run(ctx context.Context, cronExpr string) error {
	if err := s.bootstrap(ctx); err != nil {
		return err
	}

	if cronExpr != "" {
		c := cron.New()
		_, err := c.AddFunc(cronExpr, func() {
			refreshCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()
			_ = s.Refresh(refreshCtx) // failures recorded for /health
		})
		if err != nil {
			return fmt.Errorf("invalid refresh schedule %q: %w", cronExpr, err)
		}
		c.Start()
		defer c.Stop()
	}

	srv := &http.Server{
		Addr:              s.listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving feed", logger.Fields{"listen": s.listen})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/tv-program.ics", s.handleFeed)
	s.mux.HandleFunc("/health", s.handleHealth)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	feed := s.feed
	s.mu.RUnlock()

	if len(feed) == 0 {
		http.Error(w, "no feed generated yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename=tv-program.ics`)
	if _, err := w.Write(feed); err != nil {
		logger.Debug("writing feed response", logger.Fields{"error": err.Error()})
	}
}

// healthStatus is the GET /health response body.
type healthStatus struct {
	Status              string                 `json:"status"`
	Stale               bool                   `json:"stale,omitempty"`
	LastRefresh         string                 `json:"last_refresh,omitempty"`
	Events              int                    `json:"events"`
	Stats               schedule.Stats         `json:"stats"`
	ConsecutiveFailures int                    `json:"consecutive_failures"`
	LastError           string                 `json:"last_error,omitempty"`
	Metrics             logger.MetricsSnapshot `json:"metrics"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	st := healthStatus{
		Status:              "ok",
		Stale:               s.stale,
		Events:              len(s.events),
		Stats:               s.stats,
		ConsecutiveFailures: s.failures,
		LastError:           s.lastErr,
	}
	if !s.lastRun.IsZero() {
		st.LastRefresh = s.lastRun.Format(time.RFC3339)
	}
	s.mu.RUnlock()

	if st.ConsecutiveFailures > 0 || st.Stale {
		st.Status = "degraded"
	}
	st.Metrics = logger.GetMetricsSnapshot()

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st); err != nil {
		logger.Debug("writing health response", logger.Fields{"error": err.Error()})
	}
}
