package ode

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MaxAbs returns the largest absolute component, the quantity the
// divergence guard watches.
func (s State) MaxAbs() float64 {
	m := 0.0
	for _, v := range s {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an autonomous-or-not ODE dX/dt = f(X, t). Derive must not
// mutate x and must return a vector of length StateDim.
type System interface {
	Derive(x State, t float64) (State, error)
	StateDim() int
}

// Integrator advances a state by one fixed step. Implementations are
// stateless between calls apart from reusable scratch buffers.
type Integrator interface {
	Step(sys System, x State, t, dt float64) (State, error)
	Order() int
}

// Coupler is implemented by systems that can report a per-variable
// coupling term at a given state. The driver records it alongside each
// stored sample when Config.RecordCoupling is set; an evaluation
// failure fails the run the same way a Derive failure does.
type Coupler interface {
	Coupling(x State) (State, error)
}

// DivergeThreshold is the blow-up guard: once any state component
// exceeds this in magnitude the run is truncated.
const DivergeThreshold = 1e3

type Config struct {
	Dt             float64
	Steps          int
	RecordCoupling bool
}

// Trajectory is the record of one run. Times and States have length
// Steps+1 with the initial condition at index 0. On early termination
// the untouched tail of States (and Coupling) stays nil; Times is
// always fully populated since the step spacing is fixed.
type Trajectory struct {
	Times    []float64
	States   []State
	Coupling []State

	StepsTaken int
	Diverged   bool
	DivergedAt int // step index of the offending state, -1 for a clean run
}

// At reports the state at step i and whether it was actually computed.
func (tr *Trajectory) At(i int) (State, bool) {
	if i < 0 || i >= len(tr.States) || tr.States[i] == nil {
		return nil, false
	}
	return tr.States[i], true
}

// Final returns the last computed state.
func (tr *Trajectory) Final() State {
	return tr.States[tr.StepsTaken]
}
