// Package analysis provides chaos diagnostics for trajectories:
// largest-Lyapunov-exponent estimation and power spectra of individual
// slow variables.
package analysis
