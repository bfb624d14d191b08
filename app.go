package main

import (
	"context"
	"sync"
	"time"

	"stock-sentiment/analysis"
	"stock-sentiment/config"
	"stock-sentiment/presentation"
)

// State is the dashboard's request lifecycle state. One submission moves
// Idle → Validating → Fetching → Rendering → Idle; any failure lands in
// ErrorDisplay, which decays back to Idle after a configured delay so the
// form becomes input-ready again without a blocking sleep.
type State string

const (
	StateIdle         State = "idle"
	StateValidating   State = "validating"
	StateFetching     State = "fetching"
	StateRendering    State = "rendering"
	StateErrorDisplay State = "error_display"
)

// App orchestrates one analysis pass per submission. Submissions are
// serialized; there are no overlapping in-flight runs and no shared mutable
// state between them beyond the lifecycle state itself.
type App struct {
	cfg       *config.Config
	pipeline  *analysis.Pipeline
	presenter *presentation.Adapter

	runMu sync.Mutex // serializes submissions

	mu         sync.Mutex // guards state, lastError, resetTimer
	state      State
	lastError  string
	resetTimer *time.Timer
}

// NewApp creates a new App in the input-ready state.
func NewApp(cfg *config.Config, pipeline *analysis.Pipeline, presenter *presentation.Adapter) *App {
	return &App{
		cfg:       cfg,
		pipeline:  pipeline,
		presenter: presenter,
		state:     StateIdle,
	}
}

// Analyze runs the full validate→fetch→normalize→aggregate→render pass for
// one submission. Failure is all-or-nothing: on any error the run's partial
// results are discarded, the state machine enters ErrorDisplay and the
// error is returned for the transport layer to map.
func (a *App) Analyze(ctx context.Context, req analysis.Request) (*presentation.ReportView, error) {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	report, err := a.pipeline.Run(ctx, req, func(ph analysis.Phase) {
		switch ph {
		case analysis.PhaseValidating:
			a.transition(StateValidating)
		case analysis.PhaseFetching:
			a.transition(StateFetching)
		}
	})
	if err != nil {
		a.fail(err)
		return nil, err
	}

	a.transition(StateRendering)
	view := a.presenter.BuildReportView(report)
	a.transition(StateIdle)

	return view, nil
}

// Status returns the current lifecycle state and, in ErrorDisplay, the
// message being shown.
func (a *App) Status() (State, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == StateErrorDisplay {
		return a.state, a.lastError
	}
	return a.state, ""
}

func (a *App) transition(s State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopResetLocked()
	a.state = s
	a.lastError = ""
}

// fail enters ErrorDisplay and schedules the timed decay back to Idle.
func (a *App) fail(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopResetLocked()
	a.state = StateErrorDisplay
	a.lastError = err.Error()
	a.resetTimer = time.AfterFunc(time.Duration(a.cfg.Analysis.ErrorDisplaySec)*time.Second, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.state == StateErrorDisplay {
			a.state = StateIdle
			a.lastError = ""
		}
	})
}

func (a *App) stopResetLocked() {
	if a.resetTimer != nil {
		a.resetTimer.Stop()
		a.resetTimer = nil
	}
}
