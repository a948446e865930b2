// Package integrators implements fixed-step explicit schemes over the
// [ode.System] interface: Euler (order 1), midpoint RK2 (order 2) and
// classical RK4 (order 4). None of them performs adaptive step control;
// numerical blow-up is the driver's concern, not the scheme's.
package integrators
