// Package l96 implements the Lorenz-96 two-time-scale system and its
// single-scale reduction.
//
// The full model couples K slow variables X to K*J fast variables Y:
//
//	dX[k]/dt = -X[k-1]*(X[k-2] - X[k+1]) - X[k] + F - (h*c/b) * sum_j Y[j,k]
//	dY[j]/dt = -c*b*Y[j+1]*(Y[j+2] - Y[j-1]) - c*Y[j] + (h*c/b)*X[k(j)]
//
// both rings periodic. [TwoScale] integrates the pair as one combined
// state; [OneScale] drops the fast variables and optionally replaces
// their aggregate effect with a fitted closure; [GCM] is the run entry
// point that wires a closure and a scheme together.
package l96
