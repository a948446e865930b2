package experiment

import (
	"fmt"

	"github.com/feiyulu/L96-demo/internal/closure"
	"github.com/feiyulu/L96-demo/internal/config"
	"github.com/feiyulu/L96-demo/internal/integrators"
	"github.com/feiyulu/L96-demo/internal/ode"
)

// GetIntegrator resolves a scheme by name.
func GetIntegrator(name string) (ode.Integrator, error) {
	switch name {
	case "euler":
		return integrators.NewEuler(), nil
	case "rk2":
		return integrators.NewRK2(), nil
	case "rk4", "":
		return integrators.NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

// Integrators lists the registered scheme names.
func Integrators() []string {
	return []string{"euler", "rk2", "rk4"}
}

// GetClosure resolves a parameterization by name for a K-variable
// reduced model. "none" (or empty) yields no closure at all rather than
// a zero closure, so the free-running GCM skips the correction pass.
func GetClosure(name string, k int, poly config.PolyConfig) (closure.Closure, error) {
	switch name {
	case "none", "":
		return nil, nil
	case "zero":
		return closure.NewZero(k), nil
	case "wilks":
		return closure.NewWilks(k), nil
	case "linear":
		return closure.NewLinear(k, poly.Slope, poly.Intercept), nil
	case "poly":
		return closure.NewPolynomial(k, poly.Coeffs)
	default:
		return nil, fmt.Errorf("unknown closure: %s", name)
	}
}

// Closures lists the registered parameterization names.
func Closures() []string {
	return []string{"none", "zero", "wilks", "linear", "poly"}
}
