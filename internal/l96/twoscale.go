package l96

import "github.com/feiyulu/L96-demo/internal/ode"

// FastTendency computes the fast equation
//
//	dY[i]/dt = -c*b*Y[i+1]*(Y[i+2] - Y[i-1]) - c*Y[i] + (h*c/b)*X[i/J]
//
// over the flattened fast vector, indices cyclic mod K*J so that
// neighbour references cross group boundaries, matching the periodic
// ring of the full model. Pure, O(K*J).
func FastTendency(y, x ode.State, p Params) ode.State {
	n := len(y)
	dy := make(ode.State, n)
	hcb := p.H * p.C / p.B
	for i := 0; i < n; i++ {
		dy[i] = -p.C*p.B*y[(i+1)%n]*(y[(i+2)%n]-y[cyc(i-1, n)]) - p.C*y[i] + hcb*x[i/p.J]
	}
	return dy
}

// TwoScale is the full coupled fast/slow system. State layout is the
// concatenation [X|Y]: K slow variables followed by K*J fast variables.
type TwoScale struct {
	P Params
}

func NewTwoScale(p Params) (*TwoScale, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &TwoScale{P: p}, nil
}

func (t *TwoScale) StateDim() int { return t.P.Dim() }

// Split views the combined state as its slow and fast parts. The
// returned slices alias x.
func (t *TwoScale) Split(x ode.State) (ode.State, ode.State) {
	return x[:t.P.K], x[t.P.K:]
}

func (t *TwoScale) Derive(x ode.State, _ float64) (ode.State, error) {
	xs, y := t.Split(x)
	u := t.couplingOf(y)

	dx := SlowTendency(xs, t.P.F, u)
	d := make(ode.State, t.P.Dim())
	copy(d, dx)

	if t.P.J > 0 {
		copy(d[t.P.K:], FastTendency(y, xs, t.P))
	}
	return d, nil
}

// Coupling reports the aggregate fast-to-slow forcing
// U[k] = (h*c/b) * sum_j Y[j,k] at the given combined state. The driver
// records this when coupling recording is requested.
func (t *TwoScale) Coupling(x ode.State) (ode.State, error) {
	_, y := t.Split(x)
	return t.couplingOf(y), nil
}

func (t *TwoScale) couplingOf(y ode.State) ode.State {
	u := make(ode.State, t.P.K)
	if t.P.J == 0 {
		return u
	}
	hcb := t.P.H * t.P.C / t.P.B
	for k := 0; k < t.P.K; k++ {
		sum := 0.0
		for j := 0; j < t.P.J; j++ {
			sum += y[k*t.P.J+j]
		}
		u[k] = hcb * sum
	}
	return u
}
