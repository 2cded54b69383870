package viewstate

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"mealmate/internal/logging"
)

// scope ties a controller's tasks to its lifetime.
type scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func newScope(logger *slog.Logger) *scope {
	ctx, cancel := context.WithCancel(context.Background())
	return &scope{ctx: ctx, cancel: cancel, logger: logger}
}

// launch runs fn on a new goroutine with a fresh request id. It is a no-op after close.
func (s *scope) launch(action string, fn func(ctx context.Context)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	requestID := uuid.NewString()
	ctx := logging.WithRequestID(s.ctx, requestID)
	logger := logging.WithContext(ctx, s.logger)

	go func() {
		defer s.wg.Done()
		start := time.Now()
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("task panicked", slog.String("action", action), slog.Any("panic", rec))
			}
		}()
		logger.Debug("task started", slog.String("action", action))
		fn(ctx)
		logger.Debug("task finished", slog.String("action", action), slog.Duration("elapsed", time.Since(start)))
	}()
}

func (s *scope) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

func (s *scope) wait() {
	s.wg.Wait()
}

// sequencer hands out task numbers for one state slot. When disabled every
// task counts as current, so the last finisher wins.
type sequencer struct {
	enabled bool
	latest  atomic.Uint64
}

func (q *sequencer) next() uint64 {
	return q.latest.Add(1)
}

func (q *sequencer) current(seq uint64) bool {
	return !q.enabled || q.latest.Load() == seq
}

// Option configures a controller.
type Option func(*options)

type options struct {
	staleDiscard bool
	logger       *slog.Logger
}

// WithStaleDiscard drops results from tasks superseded by a newer action on
// the same state slot.
func WithStaleDiscard() Option {
	return func(o *options) {
		o.staleDiscard = true
	}
}

// WithLogger sets the logger for task lifecycle records.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(component string, opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.NewComponentLogger(o.logger, component)
	return o
}
