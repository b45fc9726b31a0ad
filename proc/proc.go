// Package proc runs the poll loop over the registered sources
package proc

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"plate/entity"
	"plate/misc"
	"plate/service"

	"gorm.io/gorm"
)

// State is processor state
type State int32

const (
	// Running is set while the loop is active
	Running State = iota
	// Stopped is terminal
	Stopped
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// SourceUpdater updates a single source
type SourceUpdater interface {
	UpdateSource(ctx context.Context, ref service.SourceRef) error
}

// Processor is the single ingestion worker
type Processor struct {
	DB       *gorm.DB
	Updater  SourceUpdater
	Sources  []service.SourceRef
	Interval time.Duration
	Now      func() time.Time

	state atomic.Int32
}

// New return processor in the running state
func New(db *gorm.DB, updater SourceUpdater, sources []service.SourceRef, interval time.Duration) *Processor {
	return &Processor{
		DB:       db,
		Updater:  updater,
		Sources:  sources,
		Interval: interval,
		Now:      time.Now,
	}
}

// State return current state
func (p *Processor) State() State {
	return State(p.state.Load())
}

// Run passes over all sources every interval until ctx is done. A pass in
// progress is never interrupted, unrecoverable errors stop the loop.
func (p *Processor) Run(ctx context.Context) error {
	defer p.state.Store(int32(Stopped))

	for {
		if ctx.Err() != nil {
			misc.Info("update loop stopped")
			return nil
		}

		misc.Info("updating feeds")
		success, err := p.UpdateAll(context.WithoutCancel(ctx))
		if err != nil {
			return err
		}
		if _, err := entity.LogPass(p.DB, success, p.Now()); err != nil {
			return fmt.Errorf("failed to log pass: %w", err)
		}
		misc.PassResult(success)
		misc.PushMetrics()
		misc.Info("updating feeds complete")

		timer := time.NewTimer(p.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			misc.Info("update loop stopped")
			return nil
		case <-timer.C:
		}
	}
}

// UpdateAll updates every source in order, a recoverable failure of one
// source marks the pass failed and moves on to the next one
func (p *Processor) UpdateAll(ctx context.Context) (bool, error) {
	success := true
	for _, ref := range p.Sources {
		misc.Info(fmt.Sprintf("fetching articles for %q", ref.Name))
		err := p.Updater.UpdateSource(ctx, ref)
		if err == nil {
			continue
		}
		if !service.IsRecoverable(err) {
			return false, fmt.Errorf("update %q: %w", ref.Name, err)
		}
		misc.Error("update_source", fmt.Sprintf("update %q", ref.Name), err)
		success = false
	}
	return success, nil
}
