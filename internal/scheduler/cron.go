package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amaumene/cinefront/internal/metrics"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Pinger checks that the catalog backend answers
type Pinger interface {
	Ping(ctx context.Context) (int, error)
}

// BackendStatus is the result of the last health check
type BackendStatus struct {
	Reachable  bool      `json:"reachable"`
	StatusCode int       `json:"status_code,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
	Error      string    `json:"error,omitempty"`
}

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron     *cron.Cron
	pinger   Pinger
	schedule string
	timeout  time.Duration
	logger   *logrus.Logger

	mu     sync.RWMutex
	status BackendStatus
}

// NewScheduler creates a new scheduler probing the backend on schedule
func NewScheduler(pinger Pinger, schedule string, timeout time.Duration, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		pinger:   pinger,
		schedule: schedule,
		timeout:  timeout,
		logger:   logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runHealthCheck()
	})
	if err != nil {
		return fmt.Errorf("failed to add health check job: %w", err)
	}

	s.cron.Start()
	s.logger.WithField("schedule", s.schedule).Info("Scheduler started")

	// Check once right away so /status is populated before the first tick
	go s.runHealthCheck()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

// Status returns the result of the last check. CheckedAt is zero until one ran.
func (s *Scheduler) Status() BackendStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// runHealthCheck executes the backend health check job
func (s *Scheduler) runHealthCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	status := BackendStatus{CheckedAt: time.Now()}
	code, err := s.pinger.Ping(ctx)
	if err != nil {
		status.Error = err.Error()
		metrics.BackendUp.Set(0)
		s.logger.WithError(err).Warn("Catalog backend health check failed")
	} else {
		status.Reachable = true
		status.StatusCode = code
		metrics.BackendUp.Set(1)
		s.logger.WithField("status_code", code).Debug("Catalog backend health check completed")
	}

	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}
