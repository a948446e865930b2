package ode

import (
	"context"
	"errors"
	"math"
	"testing"
)

// decay is dx/dt = -x, the simplest well-behaved test system.
type decay struct{}

func (d *decay) StateDim() int { return 1 }
func (d *decay) Derive(x State, _ float64) (State, error) {
	return State{-x[0]}, nil
}

// explode grows fast enough to trip the divergence guard.
type explode struct{}

func (e *explode) StateDim() int { return 1 }
func (e *explode) Derive(x State, _ float64) (State, error) {
	return State{100 * x[0]}, nil
}

// failAfter returns a fixed error once t passes the trigger time.
type failAfter struct {
	after float64
	err   error
}

func (f *failAfter) StateDim() int { return 1 }
func (f *failAfter) Derive(x State, t float64) (State, error) {
	if t >= f.after {
		return nil, f.err
	}
	return State{-x[0]}, nil
}

// eulerStep is a minimal integrator for driver tests.
type eulerStep struct{}

func (e *eulerStep) Order() int { return 1 }
func (e *eulerStep) Step(sys System, x State, t, dt float64) (State, error) {
	dx, err := sys.Derive(x, t)
	if err != nil {
		return nil, err
	}
	next := make(State, len(x))
	for i := range x {
		next[i] = x[i] + dt*dx[i]
	}
	return next, nil
}

func TestDriverRun(t *testing.T) {
	drv := NewDriver(&decay{}, &eulerStep{})

	tr, err := drv.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Steps: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(tr.States) != 11 || len(tr.Times) != 11 {
		t.Fatalf("expected 11 samples, got %d states, %d times", len(tr.States), len(tr.Times))
	}
	if tr.States[0][0] != 1.0 {
		t.Errorf("initial condition not recorded: %v", tr.States[0])
	}
	if tr.StepsTaken != 10 || tr.Diverged || tr.DivergedAt != -1 {
		t.Errorf("unexpected run status: steps=%d diverged=%v at=%d", tr.StepsTaken, tr.Diverged, tr.DivergedAt)
	}

	for i, tm := range tr.Times {
		want := float64(i) * 0.1
		if math.Abs(tm-want) > 1e-12 {
			t.Errorf("time[%d] = %f, want %f", i, tm, want)
		}
	}

	final := tr.Final()[0]
	if math.Abs(final-math.Exp(-1.0)) > 0.2 {
		t.Errorf("expected final ~%.4f, got %.4f", math.Exp(-1.0), final)
	}
}

func TestDriverInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		drv  *Driver
		x0   State
		cfg  Config
		want error
	}{
		{"zero dt", NewDriver(&decay{}, &eulerStep{}), State{1}, Config{Dt: 0, Steps: 1}, ErrNonPositiveStep},
		{"negative dt", NewDriver(&decay{}, &eulerStep{}), State{1}, Config{Dt: -0.1, Steps: 1}, ErrNonPositiveStep},
		{"negative steps", NewDriver(&decay{}, &eulerStep{}), State{1}, Config{Dt: 0.1, Steps: -1}, ErrNegativeSteps},
		{"dim mismatch", NewDriver(&decay{}, &eulerStep{}), State{1, 2}, Config{Dt: 0.1, Steps: 1}, ErrDimensionMismatch},
		{"nil system", NewDriver(nil, &eulerStep{}), State{1}, Config{Dt: 0.1, Steps: 1}, ErrNilSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := tt.drv.Run(context.Background(), tt.x0, tt.cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tr != nil {
				t.Error("expected no partial trajectory on config error")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %T", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v in chain, got %v", tt.want, err)
			}
		})
	}
}

func TestDriverDivergenceGuard(t *testing.T) {
	drv := NewDriver(&explode{}, &eulerStep{})

	tr, err := drv.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Steps: 20})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !tr.Diverged {
		t.Fatal("expected divergence")
	}
	if tr.DivergedAt <= 0 || tr.DivergedAt >= 20 {
		t.Fatalf("unexpected DivergedAt: %d", tr.DivergedAt)
	}
	if tr.StepsTaken != tr.DivergedAt {
		t.Errorf("StepsTaken %d != DivergedAt %d", tr.StepsTaken, tr.DivergedAt)
	}

	// Entries past truncation stay unset, not zero-filled.
	for i := tr.DivergedAt + 1; i < len(tr.States); i++ {
		if tr.States[i] != nil {
			t.Fatalf("entry %d past truncation is set: %v", i, tr.States[i])
		}
	}
	// The offending state itself is retained for inspection.
	if tr.States[tr.DivergedAt] == nil {
		t.Error("diverging state should be recorded")
	}
}

func TestDriverGuardDisabled(t *testing.T) {
	drv := NewDriver(&explode{}, &eulerStep{})
	drv.SetGuard(0)

	tr, err := drv.Run(context.Background(), State{1.0}, Config{Dt: 0.01, Steps: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if tr.Diverged {
		t.Error("guard disabled but run marked diverged")
	}
	if tr.StepsTaken != 10 {
		t.Errorf("expected full run, got %d steps", tr.StepsTaken)
	}
}

func TestDriverStepError(t *testing.T) {
	cause := errors.New("closure shape mismatch")
	drv := NewDriver(&failAfter{after: 0.25, err: cause}, &eulerStep{})

	tr, err := drv.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Steps: 10})
	if err == nil {
		t.Fatal("expected error")
	}

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected StepError, got %T", err)
	}
	if !errors.Is(err, cause) {
		t.Error("underlying error not preserved in chain")
	}
	if stepErr.Step != 3 {
		t.Errorf("expected failure at step 3 (t=0.3), got step %d", stepErr.Step)
	}

	// The partial trajectory up to the failure is still returned.
	if tr == nil || tr.StepsTaken != 3 {
		t.Errorf("expected 3 completed steps, got %+v", tr)
	}
}

type withCoupling struct {
	decay
}

func (w *withCoupling) Coupling(x State) (State, error) {
	return State{2 * x[0]}, nil
}

func TestDriverCouplingRecording(t *testing.T) {
	drv := NewDriver(&withCoupling{}, &eulerStep{})

	tr, err := drv.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Steps: 5, RecordCoupling: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(tr.Coupling) != 6 {
		t.Fatalf("expected 6 coupling samples, got %d", len(tr.Coupling))
	}
	for i := range tr.Coupling {
		if tr.Coupling[i] == nil {
			t.Fatalf("coupling[%d] unset", i)
		}
		want := 2 * tr.States[i][0]
		if tr.Coupling[i][0] != want {
			t.Errorf("coupling[%d] = %f, want %f (aligned with state)", i, tr.Coupling[i][0], want)
		}
	}
}

type couplingFails struct {
	decay
}

func (c *couplingFails) Coupling(State) (State, error) {
	return nil, errors.New("diagnostic unavailable")
}

// A failing coupling evaluation fails the run; it must never be papered
// over with a zero record.
func TestDriverCouplingErrorFailsRun(t *testing.T) {
	drv := NewDriver(&couplingFails{}, &eulerStep{})

	tr, err := drv.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Steps: 5, RecordCoupling: true})
	if err == nil {
		t.Fatal("expected coupling evaluation error")
	}
	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected StepError wrapper, got %T: %v", err, err)
	}
	if tr == nil {
		t.Fatal("expected the partial trajectory back")
	}
	if tr.Coupling[0] != nil {
		t.Error("failed evaluation left a fabricated coupling record")
	}
}

func TestDriverCouplingNotRequested(t *testing.T) {
	drv := NewDriver(&withCoupling{}, &eulerStep{})

	tr, err := drv.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Steps: 5})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if tr.Coupling != nil {
		t.Error("coupling recorded without being requested")
	}
}

func TestDriverContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	drv := NewDriver(&decay{}, &eulerStep{})
	tr, err := drv.Run(ctx, State{1.0}, Config{Dt: 0.1, Steps: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if tr == nil {
		t.Fatal("expected partial trajectory on cancellation")
	}
}
