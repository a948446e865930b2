package l96

import "errors"

var (
	// ErrBadK indicates fewer than one slow variable.
	ErrBadK = errors.New("l96: K must be at least 1")

	// ErrBadJ indicates a negative fast-per-slow count.
	ErrBadJ = errors.New("l96: J must be non-negative")

	// ErrBadB indicates a zero spatial scale ratio, which would divide
	// the coupling term by zero.
	ErrBadB = errors.New("l96: b must be non-zero")

	// ErrClosureArity indicates a closure whose declared dimension does
	// not match K.
	ErrClosureArity = errors.New("l96: closure arity does not match K")
)

// Params holds the physical constants of the two-time-scale system.
// Shared read-only by every tendency evaluation in a run.
type Params struct {
	F float64 // slow forcing
	H float64 // coupling strength
	C float64 // fast timescale ratio
	B float64 // fast spatial scale ratio
	K int     // slow variable count
	J int     // fast variables per slow variable
}

// DefaultParams are the standard two-scale settings used throughout the
// Lorenz-96 literature.
func DefaultParams() Params {
	return Params{F: 18, H: 1, C: 10, B: 10, K: 8, J: 32}
}

func (p Params) Validate() error {
	if p.K < 1 {
		return ErrBadK
	}
	if p.J < 0 {
		return ErrBadJ
	}
	if p.J > 0 && p.B == 0 {
		return ErrBadB
	}
	return nil
}

// NY is the length of the fast vector.
func (p Params) NY() int { return p.K * p.J }

// Dim is the length of the combined [X|Y] state.
func (p Params) Dim() int { return p.K + p.K*p.J }

// cyc wraps index i into [0, n), handling negative offsets.
func cyc(i, n int) int {
	return ((i % n) + n) % n
}
