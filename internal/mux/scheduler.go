package mux

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/janx2/subwriter/internal/logging"
)

// LaneState is the lifecycle state of one pipeline.
type LaneState int

const (
	LaneRunning LaneState = iota
	LaneCompleted
	LaneFailed
)

func (s LaneState) String() string {
	switch s {
	case LaneRunning:
		return "running"
	case LaneCompleted:
		return "completed"
	case LaneFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LaneError reports which lane failed and during which operation ("ready",
// "read" or "append").
type LaneError struct {
	Lane string
	Op   string
	Err  error
}

func (e *LaneError) Error() string {
	return fmt.Sprintf("lane %s: %s sample: %v", e.Lane, e.Op, e.Err)
}

func (e *LaneError) Unwrap() error { return e.Err }

// Pipeline binds a source to a sink under one name.
type Pipeline struct {
	Name   string
	Source Source
	Sink   Sink
}

// LaneStatus is the terminal report for one lane. Valid after Run returns.
type LaneStatus struct {
	Name  string
	State LaneState
	Err   error
}

// Scheduler drives N pipelines concurrently, each under its own sink's
// backpressure. Lanes are mutually independent: a failed lane never cancels
// its siblings, and no cross-lane ordering is guaranteed.
type Scheduler struct {
	log   *logging.Logger
	lanes []*lane
}

type lane struct {
	pipeline Pipeline

	mu    sync.Mutex
	state LaneState
	err   error
}

func NewScheduler(log *logging.Logger, pipelines ...Pipeline) *Scheduler {
	s := &Scheduler{log: log}
	for _, p := range pipelines {
		s.lanes = append(s.lanes, &lane{pipeline: p})
	}
	return s
}

// Run copies every lane to a terminal state, waits for all of them, then
// invokes finalize exactly once, synchronously. The first lane error wins
// over a finalize error in the returned result; nil means every lane
// completed and the container finalized cleanly.
func (s *Scheduler) Run(ctx context.Context, finalize func() error) error {
	var g errgroup.Group
	for _, ln := range s.lanes {
		ln := ln
		g.Go(func() error {
			err := ln.run(ctx)
			if err != nil {
				s.log.Warnw("lane failed", "lane", ln.pipeline.Name, "error", err)
			} else {
				s.log.Debugw("lane completed", "lane", ln.pipeline.Name)
			}
			return err
		})
	}

	// barrier: every lane terminal before the container may be finalized
	copyErr := g.Wait()

	finErr := finalize()
	if finErr != nil {
		finErr = fmt.Errorf("finalize container: %w", finErr)
	}

	if copyErr != nil {
		return copyErr
	}
	return finErr
}

// Lanes reports the state of every lane. Only meaningful after Run returns.
func (s *Scheduler) Lanes() []LaneStatus {
	statuses := make([]LaneStatus, 0, len(s.lanes))
	for _, ln := range s.lanes {
		ln.mu.Lock()
		statuses = append(statuses, LaneStatus{
			Name:  ln.pipeline.Name,
			State: ln.state,
			Err:   ln.err,
		})
		ln.mu.Unlock()
	}
	return statuses
}

// run pumps one lane: wait for sink readiness, pull the next sample, hand it
// over; samples reach the sink strictly in production order. The sink is
// marked finished before the lane goes terminal, on every path.
func (ln *lane) run(ctx context.Context) error {
	p := ln.pipeline
	for {
		if err := p.Sink.Ready(ctx); err != nil {
			p.Sink.Finish()
			return ln.fail("ready", err)
		}

		sample, err := p.Source.Next()
		if errors.Is(err, io.EOF) {
			p.Sink.Finish()
			ln.complete()
			return nil
		}
		if err != nil {
			p.Sink.Finish()
			return ln.fail("read", err)
		}

		if err := p.Sink.Append(sample); err != nil {
			p.Sink.Finish()
			return ln.fail("append", err)
		}
	}
}

func (ln *lane) complete() {
	ln.mu.Lock()
	ln.state = LaneCompleted
	ln.mu.Unlock()
}

func (ln *lane) fail(op string, err error) error {
	lerr := &LaneError{Lane: ln.pipeline.Name, Op: op, Err: err}
	ln.mu.Lock()
	ln.state = LaneFailed
	ln.err = lerr
	ln.mu.Unlock()
	return lerr
}
