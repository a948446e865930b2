package integrators

import "github.com/feiyulu/L96-demo/internal/ode"

// RK2 is the explicit midpoint method:
//
//	k1 = f(x, t)
//	k2 = f(x + dt/2*k1, t + dt/2)
//	x' = x + dt*k2
//
// Second order, two tendency evaluations per step.
type RK2 struct {
	scratch ode.State
}

func NewRK2() *RK2 {
	return &RK2{}
}

func (r *RK2) Order() int { return 2 }

func (r *RK2) Step(sys ode.System, x ode.State, t, dt float64) (ode.State, error) {
	n := len(x)
	if len(r.scratch) != n {
		r.scratch = make(ode.State, n)
	}

	k1, err := sys.Derive(x, t)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*k1[i]
	}

	k2, err := sys.Derive(r.scratch, t+dt*0.5)
	if err != nil {
		return nil, err
	}

	result := make(ode.State, n)
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt*k2[i]
	}
	return result, nil
}
