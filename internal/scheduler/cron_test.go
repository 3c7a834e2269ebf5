package scheduler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	code int
	err  error
}

func (p stubPinger) Ping(ctx context.Context) (int, error) {
	return p.code, p.err
}

func TestHealthCheckReachable(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := NewScheduler(stubPinger{code: http.StatusNotFound}, "*/5 * * * *", time.Second, logger)

	assert.True(t, s.Status().CheckedAt.IsZero())
	s.runHealthCheck()

	status := s.Status()
	assert.True(t, status.Reachable)
	assert.Equal(t, http.StatusNotFound, status.StatusCode)
	assert.Empty(t, status.Error)
	assert.False(t, status.CheckedAt.IsZero())
}

func TestHealthCheckUnreachable(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s := NewScheduler(stubPinger{err: errors.New("connection refused")}, "*/5 * * * *", time.Second, logger)

	s.runHealthCheck()

	status := s.Status()
	assert.False(t, status.Reachable)
	assert.Equal(t, "connection refused", status.Error)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Catalog backend health check failed", hook.LastEntry().Message)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := NewScheduler(stubPinger{}, "not a schedule", time.Second, logger)
	assert.Error(t, s.Start())
}
