package closure

import (
	"errors"

	"github.com/feiyulu/L96-demo/internal/ode"
)

// ErrNoCoefficients indicates a polynomial built with an empty
// coefficient list.
var ErrNoCoefficients = errors.New("closure: polynomial needs at least one coefficient")

// Polynomial evaluates a fitted scalar polynomial at each slow variable
// independently. Coefficients are in ascending power order:
// c[0] + c[1]*x + c[2]*x^2 + ...
type Polynomial struct {
	dim    int
	coeffs []float64
}

func NewPolynomial(dim int, coeffs []float64) (*Polynomial, error) {
	if len(coeffs) == 0 {
		return nil, ErrNoCoefficients
	}
	c := make([]float64, len(coeffs))
	copy(c, coeffs)
	return &Polynomial{dim: dim, coeffs: c}, nil
}

// NewWilks returns the quartic closure of Wilks (2005),
// U(x) = 0.262 + 1.45x - 0.0121x^2 - 0.00713x^3 + 0.000296x^4,
// the standard fitted parameterization for the two-scale Lorenz-96
// system.
func NewWilks(dim int) *Polynomial {
	p, _ := NewPolynomial(dim, []float64{0.262, 1.45, -0.0121, -0.00713, 0.000296})
	return p
}

func (p *Polynomial) Dim() int { return p.dim }

// Degree returns the polynomial degree.
func (p *Polynomial) Degree() int { return len(p.coeffs) - 1 }

func (p *Polynomial) Correct(x ode.State) (ode.State, error) {
	if len(x) != p.dim {
		return nil, ErrArity
	}
	u := make(ode.State, p.dim)
	for k, v := range x {
		// Horner from the highest power down.
		acc := p.coeffs[len(p.coeffs)-1]
		for i := len(p.coeffs) - 2; i >= 0; i-- {
			acc = acc*v + p.coeffs[i]
		}
		u[k] = acc
	}
	return u, nil
}
