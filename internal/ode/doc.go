// Package ode provides the fixed-step integration engine shared by the
// full and reduced Lorenz-96 models.
//
// The package defines the fundamental types for numerical simulation of
// ordinary differential equations:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: single-step advance operator
//   - [Driver]: orchestrates a trajectory run with a divergence guard
//   - [Ensemble]: parallel independent runs
//
// # Example
//
//	sys := l96.NewTwoScale(params)
//	drv := ode.NewDriver(sys, integrators.NewRK4())
//	tr, _ := drv.Run(ctx, x0, ode.Config{Dt: 0.05, Steps: 100})
//
// # Thread Safety
//
// Driver instances are NOT thread-safe. For parallel sweeps use
// [Ensemble], which builds an independent system and integrator per
// member.
package ode
