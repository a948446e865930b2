package closure

import "github.com/feiyulu/L96-demo/internal/ode"

// Zero is the no-parameterization default: the reduced model runs as
// the plain uncoupled slow equation.
type Zero struct {
	dim int
}

func NewZero(dim int) *Zero {
	return &Zero{dim: dim}
}

func (z *Zero) Dim() int { return z.dim }

func (z *Zero) Correct(x ode.State) (ode.State, error) {
	return make(ode.State, z.dim), nil
}
