package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/piwi3910/RebarCut/internal/model"
)

// ErrSuperseded is returned by Coordinator.Run when a newer request started
// before this one finished. The stale result is discarded.
var ErrSuperseded = errors.New("optimization superseded by a newer request")

type compareFunc func(ctx context.Context, req model.OptimizeRequest) (model.Comparison, error)

// Coordinator serializes interactive optimization requests so the newest
// request wins. Starting a run cancels the context of the run in flight;
// that run then reports ErrSuperseded instead of its result.
type Coordinator struct {
	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	compare compareFunc
	log     *slog.Logger
}

// NewCoordinator creates a Coordinator that runs comparisons with opt.
func NewCoordinator(opt *Optimizer, log *slog.Logger) *Coordinator {
	return newCoordinator(opt.Compare, log)
}

func newCoordinator(fn compareFunc, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{compare: fn, log: log}
}

// Run starts a comparison for req and supersedes any run still in flight.
func (c *Coordinator) Run(ctx context.Context, req model.OptimizeRequest) (model.Comparison, error) {
	const op = "engine.Coordinator.Run"

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	c.seq++
	mine := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.mu.Unlock()

	c.log.Debug("optimization started", slog.String("op", op), slog.Uint64("seq", mine), slog.Int("items", len(req.Items)))

	cmp, err := c.compare(runCtx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if mine != c.seq {
		c.log.Debug("discarding stale optimization", slog.String("op", op), slog.Uint64("seq", mine), slog.Uint64("latest", c.seq))
		return model.Comparison{}, ErrSuperseded
	}
	c.cancel = nil

	if err != nil {
		return model.Comparison{}, err
	}
	return cmp, nil
}

// Latest returns the sequence number of the most recently started run.
func (c *Coordinator) Latest() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}
