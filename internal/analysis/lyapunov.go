package analysis

import (
	"math"

	"github.com/feiyulu/L96-demo/internal/ode"
)

// LyapunovExponent estimates the largest Lyapunov exponent by the
// trajectory separation method. A positive value indicates chaos.
//
// Two nearby trajectories are advanced together; their log separation
// growth is averaged, renormalizing whenever the pair drifts too far
// apart to stay on the linear regime.
func LyapunovExponent(
	sys ode.System,
	integ ode.Integrator,
	x0 ode.State,
	dt, duration float64,
	perturbation float64,
) (float64, error) {
	if len(x0) == 0 || dt <= 0 {
		return 0, nil
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += perturbation
	d0 := perturbation

	t := 0.0
	sumLog := 0.0
	count := 0

	for t < duration {
		var err error
		x, err = integ.Step(sys, x, t, dt)
		if err != nil {
			return 0, err
		}
		xp, err = integ.Step(sys, xp, t, dt)
		if err != nil {
			return 0, err
		}
		t += dt

		sep := xp.Sub(x).Norm()
		if sep > 0 && d0 > 0 {
			sumLog += math.Log(sep / d0)
			count++
		}

		// Renormalize to keep the pair in the linear regime.
		if sep > 1.0 {
			scale := d0 / sep
			for i := range xp {
				xp[i] = x[i] + (xp[i]-x[i])*scale
			}
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * dt), nil
}
