package l96

import (
	"math/rand"

	"github.com/feiyulu/L96-demo/internal/ode"
)

// BumpInit is Lorenz's classic deterministic start: every slow variable
// at the forcing value with a small bump on the first one, fast
// variables at rest. The fast subsystem spins up from the slow forcing
// term within a few time units.
func BumpInit(p Params) ode.State {
	x := make(ode.State, p.Dim())
	for k := 0; k < p.K; k++ {
		x[k] = p.F
	}
	x[0] += 0.01
	return x
}

// RandomInit draws a randomized combined initial condition from rng:
// slow variables at F*(0.5 + 0.1*N(0,1)), fast variables at
// 0.1*N(0,1). The generator is the only source of randomness, so equal
// seeds give bit-identical states.
func RandomInit(p Params, rng *rand.Rand) ode.State {
	x := make(ode.State, p.Dim())
	for k := 0; k < p.K; k++ {
		x[k] = p.F * (0.5 + 0.1*rng.NormFloat64())
	}
	for i := p.K; i < p.Dim(); i++ {
		x[i] = 0.1 * rng.NormFloat64()
	}
	return x
}

// SlowInit returns just the slow part of RandomInit, for reduced-model
// runs.
func SlowInit(p Params, rng *rand.Rand) ode.State {
	x := make(ode.State, p.K)
	for k := 0; k < p.K; k++ {
		x[k] = p.F * (0.5 + 0.1*rng.NormFloat64())
	}
	return x
}
