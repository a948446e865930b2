package l96

import (
	"math"
	"testing"

	"github.com/feiyulu/L96-demo/internal/closure"
	"github.com/feiyulu/L96-demo/internal/ode"
)

// Hand-computed K=4 case exercising the cyclic wrap-around at both
// ends: X = [1 2 3 4], F = 8.
func TestSlowTendencyCyclicK4(t *testing.T) {
	x := ode.State{1, 2, 3, 4}
	got := SlowTendency(x, 8, nil)

	// dX[0] = -X[3]*(X[2]-X[1]) - X[0] + F = -4*(3-2) - 1 + 8 = 3
	// dX[1] = -X[0]*(X[3]-X[2]) - X[1] + F = -1*(4-3) - 2 + 8 = 5
	// dX[2] = -X[1]*(X[0]-X[3]) - X[2] + F = -2*(1-4) - 3 + 8 = 11
	// dX[3] = -X[2]*(X[1]-X[0]) - X[3] + F = -3*(2-1) - 4 + 8 = 1
	want := ode.State{3, 5, 11, 1}

	if len(got) != 4 {
		t.Fatalf("tendency length %d, want 4", len(got))
	}
	for k := range want {
		if math.Abs(got[k]-want[k]) > 1e-12 {
			t.Errorf("dX[%d] = %f, want %f", k, got[k], want[k])
		}
	}
}

func TestSlowTendencyWrapAllK(t *testing.T) {
	// For every K >= 4, compare against an index arithmetic variant
	// that never goes negative.
	for _, k := range []int{4, 5, 8, 13} {
		x := make(ode.State, k)
		for i := range x {
			x[i] = math.Sin(float64(i + 1))
		}
		got := SlowTendency(x, 10, nil)
		for i := 0; i < k; i++ {
			im1 := (i + k - 1) % k
			im2 := (i + k - 2) % k
			ip1 := (i + 1) % k
			want := -x[im1]*(x[im2]-x[ip1]) - x[i] + 10
			if got[i] != want {
				t.Fatalf("K=%d: dX[%d] = %v, want %v", k, i, got[i], want)
			}
		}
	}
}

// Forcing U to zero must match the uncoupled tendency bit-for-bit.
func TestZeroCouplingEquivalence(t *testing.T) {
	x := ode.State{-1.2, 0.7, 14.1, 3.9, -8.2, 0.001, 7.7, 2.4}
	zeros := make(ode.State, len(x))

	plain := SlowTendency(x, 18, nil)
	withZero := SlowTendency(x, 18, zeros)

	for k := range plain {
		if plain[k] != withZero[k] {
			t.Errorf("entry %d differs: %v vs %v", k, plain[k], withZero[k])
		}
	}
}

func TestOneScaleZeroClosureEquivalence(t *testing.T) {
	x := ode.State{1.5, -0.3, 9.9, 4.2}

	bare := NewOneScale(4, 18)
	zeroed := &OneScale{K: 4, F: 18, Closure: closure.NewZero(4)}

	a, err := bare.Derive(x, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := zeroed.Derive(x, 0)
	if err != nil {
		t.Fatal(err)
	}
	for k := range a {
		if a[k] != b[k] {
			t.Errorf("entry %d differs: %v vs %v", k, a[k], b[k])
		}
	}
}

func TestOneScaleClosureErrorSurfaces(t *testing.T) {
	sys := &OneScale{K: 4, F: 18, Closure: closure.NewLinear(6, 1, 0)}
	if _, err := sys.Derive(ode.State{1, 2, 3, 4}, 0); err == nil {
		t.Fatal("expected arity error from closure")
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want error
	}{
		{"ok", DefaultParams(), nil},
		{"k zero", Params{K: 0, J: 1, B: 1}, ErrBadK},
		{"j negative", Params{K: 4, J: -1, B: 1}, ErrBadJ},
		{"b zero with fast", Params{K: 4, J: 2, B: 0}, ErrBadB},
		{"b zero no fast", Params{K: 4, J: 0, B: 0}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.p.Validate(); err != tt.want {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
