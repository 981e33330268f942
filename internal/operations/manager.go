package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Manager executes operation steps sequentially.
type Manager struct {
	logger *slog.Logger
}

// NewManager creates an operation manager.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger}
}

// Run executes the steps in order against a fresh state. The first step
// failure (or context cancellation) fails the run; remaining steps are
// marked skipped. The state is returned in all cases for inspection.
func (m *Manager) Run(ctx context.Context, steps []Step) (*State, error) {
	state := NewState()
	for _, step := range steps {
		state.RegisterStep(step.ID(), step.Name())
	}

	m.logger.Info("operation run started",
		slog.String("run_id", state.ID),
		slog.Int("steps", len(steps)))

	var runErr error
	for i, step := range steps {
		stepState, _ := state.StepState(step.ID())

		if runErr != nil {
			stepState.Skip()
			continue
		}
		if err := ctx.Err(); err != nil {
			stepState.Skip()
			runErr = fmt.Errorf("operation canceled before step %s: %w", step.ID(), err)
			continue
		}

		if err := step.Validate(state); err != nil {
			stepState.Fail(err)
			runErr = fmt.Errorf("step %s validation failed: %w", step.ID(), err)
			continue
		}

		stepState.Start()
		m.logger.Info("step started",
			slog.String("run_id", state.ID),
			slog.String("step", step.ID()),
			slog.Int("position", i+1))

		start := time.Now()
		if err := step.Execute(ctx, state); err != nil {
			stepState.Fail(err)
			runErr = fmt.Errorf("step %s failed: %w", step.ID(), err)
			m.logger.Error("step failed",
				slog.String("run_id", state.ID),
				slog.String("step", step.ID()),
				slog.String("error", err.Error()))
			continue
		}

		stepState.Complete("")
		m.logger.Info("step completed",
			slog.String("run_id", state.ID),
			slog.String("step", step.ID()),
			slog.Duration("duration", time.Since(start)))
	}

	if runErr != nil {
		m.logger.Error("operation run failed",
			slog.String("run_id", state.ID),
			slog.String("error", runErr.Error()))
		return state, runErr
	}

	m.logger.Info("operation run completed",
		slog.String("run_id", state.ID),
		slog.Duration("duration", time.Since(state.StartTime)))
	return state, nil
}
