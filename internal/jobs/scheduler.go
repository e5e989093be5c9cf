package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"clamood/console/internal/config"
	"clamood/console/internal/session"
)

// Verifier checks the stored session against the API.
type Verifier interface {
	Verify(ctx context.Context) error
}

// Pruner drops cache entries nobody has used for maxIdle.
type Pruner interface {
	Prune(maxIdle time.Duration) int
}

type Scheduler struct {
	cron     *cron.Cron
	cfg      config.JobsConfig
	verifier Verifier
	pruner   Pruner
	gcTime   time.Duration
	timeout  time.Duration
	log      zerolog.Logger
}

func NewScheduler(cfg config.JobsConfig, verifier Verifier, pruner Pruner, gcTime time.Duration, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:     c,
		cfg:      cfg,
		verifier: verifier,
		pruner:   pruner,
		gcTime:   gcTime,
		timeout:  30 * time.Second,
		log:      log,
	}
}

// Start registers the jobs whose schedule is set. An empty schedule disables
// that job.
func (s *Scheduler) Start() error {
	if s.cfg.SessionCheck != "" {
		if _, err := s.cron.AddFunc(s.cfg.SessionCheck, s.checkSession); err != nil {
			return err
		}
	}
	if s.cfg.CachePrune != "" {
		if _, err := s.cron.AddFunc(s.cfg.CachePrune, s.pruneCache); err != nil {
			return err
		}
	}

	s.cron.Start()
	return nil
}

// Stop halts the schedule. The returned context is done once running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) checkSession() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	err := s.verifier.Verify(ctx)
	switch {
	case err == nil:
		s.log.Debug().Msg("session verified")
	case errors.Is(err, session.ErrNotAuthenticated):
	default:
		s.log.Warn().Err(err).Msg("session check failed")
	}
}

func (s *Scheduler) pruneCache() {
	if n := s.pruner.Prune(s.gcTime); n > 0 {
		s.log.Debug().Int("entries", n).Msg("pruned idle cache entries")
	}
}
