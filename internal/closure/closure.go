// Package closure defines the parameterization seam of the reduced
// model: a pure function estimating the fast-scale coupling term from
// the slow state alone. Implementations are constructed once, declare
// their arity up front, and are invoked read-only at every tendency
// evaluation. A zero closure, a fitted polynomial and a trained model
// are indistinguishable to the engine.
package closure

import "github.com/feiyulu/L96-demo/internal/ode"

// Closure maps a slow state vector to a per-variable correction vector
// of the same length. Dim is the declared input and output arity; the
// engine checks it once against K before a run starts, never per call.
// Errors from Correct surface verbatim to the caller of the run.
type Closure interface {
	Dim() int
	Correct(x ode.State) (ode.State, error)
}
