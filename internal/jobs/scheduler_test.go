package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clamood/console/internal/config"
	"clamood/console/internal/session"
)

type fakeVerifier struct {
	calls atomic.Int32
	err   error
}

func (f *fakeVerifier) Verify(ctx context.Context) error {
	f.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("verify without deadline")
	}
	return f.err
}

type fakePruner struct {
	maxIdle atomic.Int64
}

func (f *fakePruner) Prune(maxIdle time.Duration) int {
	f.maxIdle.Store(int64(maxIdle))
	return 1
}

func TestCheckSession(t *testing.T) {
	v := &fakeVerifier{err: session.ErrNotAuthenticated}
	s := NewScheduler(config.JobsConfig{}, v, &fakePruner{}, time.Minute, zerolog.Nop())

	s.checkSession()
	v.err = nil
	s.checkSession()

	assert.Equal(t, int32(2), v.calls.Load())
}

func TestPruneCacheUsesGCTime(t *testing.T) {
	p := &fakePruner{}
	s := NewScheduler(config.JobsConfig{}, &fakeVerifier{}, p, 5*time.Minute, zerolog.Nop())

	s.pruneCache()
	assert.Equal(t, int64(5*time.Minute), p.maxIdle.Load())
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(config.JobsConfig{SessionCheck: "not a schedule"}, &fakeVerifier{}, &fakePruner{}, time.Minute, zerolog.Nop())
	assert.Error(t, s.Start())
}

func TestScheduledJobsRun(t *testing.T) {
	v := &fakeVerifier{}
	p := &fakePruner{}
	s := NewScheduler(config.JobsConfig{
		SessionCheck: "* * * * * *",
		CachePrune:   "* * * * * *",
	}, v, p, time.Minute, zerolog.Nop())

	require.NoError(t, s.Start())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return v.calls.Load() > 0 && p.maxIdle.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)
}
