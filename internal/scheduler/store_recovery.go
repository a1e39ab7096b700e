package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultAttemptTimeout bounds a single reconnect attempt.
const DefaultAttemptTimeout = 15 * time.Second

// Store is the part of the database handle the recovery job needs.
type Store interface {
	Ready() bool
	Connect(ctx context.Context) error
}

// StoreRecovery periodically tries to connect a degraded store. Once the
// store is ready every further tick is a no-op.
type StoreRecovery struct {
	store    Store
	schedule string
	timeout  time.Duration
	log      *zap.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewStoreRecovery creates a job for the given cron schedule. Both five-field
// expressions and descriptors such as "@every 30s" are accepted. A tick is
// skipped while the previous attempt is still running.
func NewStoreRecovery(store Store, schedule string, log *zap.Logger) *StoreRecovery {
	if log == nil {
		log = zap.NewNop()
	}
	return &StoreRecovery{
		store:    store,
		schedule: schedule,
		timeout:  DefaultAttemptTimeout,
		log:      log,
		cron: cron.New(
			cron.WithParser(cron.NewParser(
				cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor,
			)),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
	}
}

// Start schedules the job. It returns immediately when the store is
// already ready.
func (s *StoreRecovery) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.store.Ready() {
		s.log.Debug("store recovery: store is ready, not scheduling")
		return nil
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.RunOnce(cancelCtx)
	})
	if err != nil {
		s.cancelFunc()
		s.cancelFunc = nil
		return fmt.Errorf("invalid reconnect schedule %q: %w", s.schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	s.log.Info("store recovery: started",
		zap.String("schedule", s.schedule),
		zap.Time("next_run", s.cron.Entry(entryID).Next))

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running attempt to finish and stops the scheduler.
func (s *StoreRecovery) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron.Remove(s.entryID)

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	s.log.Info("store recovery: stopped")
}

// IsRunning reports whether the job is scheduled.
func (s *StoreRecovery) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// RunOnce performs a single reconnect attempt, bounded by the attempt
// timeout, and reports whether the store is ready afterwards.
func (s *StoreRecovery) RunOnce(ctx context.Context) bool {
	if s.store.Ready() {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.store.Connect(ctx); err != nil {
		s.log.Warn("store recovery: reconnect failed",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)))
		return false
	}

	s.log.Info("store recovery: store is available again",
		zap.Duration("elapsed", time.Since(start)))
	return true
}
