package ode

import (
	"context"
	"sync"
)

// Ensemble runs independent trajectories in parallel. Each member gets
// its own initial condition from the factory; systems and integrators
// are built per member so no scratch state is shared across goroutines.
type Ensemble struct {
	NumRuns int

	// NewMember builds the system, integrator and initial condition for
	// member idx. It must return fresh instances each call.
	NewMember func(idx int) (System, Integrator, State)
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Trajectory, error) {
	results := make([]*Trajectory, e.NumRuns)
	errs := make([]error, e.NumRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.NumRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sys, integ, x0 := e.NewMember(idx)
			results[idx], errs[idx] = NewDriver(sys, integ).Run(ctx, x0, cfg)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
