package closure_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/feiyulu/L96-demo/internal/closure"
	"github.com/feiyulu/L96-demo/internal/ode"
)

var _ = Describe("Zero", func() {
	It("returns an all-zero correction of the declared dimension", func() {
		z := closure.NewZero(8)
		Expect(z.Dim()).To(Equal(8))

		u, err := z.Correct(make(ode.State, 8))
		Expect(err).NotTo(HaveOccurred())
		Expect(u).To(HaveLen(8))
		for _, v := range u {
			Expect(v).To(BeZero())
		}
	})
})

var _ = Describe("Linear", func() {
	It("applies slope and intercept per variable", func() {
		l := closure.NewLinear(3, 2.0, -1.0)
		u, err := l.Correct(ode.State{0, 1, 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(u).To(Equal(ode.State{-1, 1, 19}))
	})

	It("rejects a state of the wrong length", func() {
		l := closure.NewLinear(3, 1, 0)
		_, err := l.Correct(ode.State{1, 2})
		Expect(err).To(MatchError(closure.ErrArity))
	})
})

var _ = Describe("Polynomial", func() {
	It("refuses an empty coefficient list", func() {
		_, err := closure.NewPolynomial(4, nil)
		Expect(err).To(MatchError(closure.ErrNoCoefficients))
	})

	It("evaluates each variable independently", func() {
		// 1 + 2x + 3x^2
		p, err := closure.NewPolynomial(2, []float64{1, 2, 3})
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Degree()).To(Equal(2))

		u, err := p.Correct(ode.State{0, 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(u[0]).To(Equal(1.0))
		Expect(u[1]).To(Equal(17.0))
	})

	It("does not alias the caller's coefficient slice", func() {
		coeffs := []float64{1, 1}
		p, err := closure.NewPolynomial(1, coeffs)
		Expect(err).NotTo(HaveOccurred())

		coeffs[0] = 100
		u, err := p.Correct(ode.State{0})
		Expect(err).NotTo(HaveOccurred())
		Expect(u[0]).To(Equal(1.0))
	})

	It("rejects a state of the wrong length", func() {
		p, err := closure.NewPolynomial(4, []float64{1})
		Expect(err).NotTo(HaveOccurred())
		_, err = p.Correct(ode.State{1, 2})
		Expect(err).To(MatchError(closure.ErrArity))
	})
})

var _ = Describe("Wilks", func() {
	It("carries the published quartic fit", func() {
		w := closure.NewWilks(8)
		Expect(w.Dim()).To(Equal(8))
		Expect(w.Degree()).To(Equal(4))

		u, err := w.Correct(make(ode.State, 8))
		Expect(err).NotTo(HaveOccurred())
		// At x = 0 only the constant term survives.
		Expect(u[0]).To(BeNumerically("~", 0.262, 1e-12))
	})

	It("grows roughly linearly in the typical slow-variable range", func() {
		w := closure.NewWilks(1)
		lo, err := w.Correct(ode.State{0})
		Expect(err).NotTo(HaveOccurred())
		hi, err := w.Correct(ode.State{5})
		Expect(err).NotTo(HaveOccurred())
		Expect(hi[0]).To(BeNumerically(">", lo[0]))
	})
})
