// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spm

import "github.com/cpmech/gosl/chk"

// CGStats reports the outcome of one conjugate-gradient run.
// Non-convergence is a status, not an error: callers inspect Converged
// and decide.
type CGStats struct {
	Niter     int     // number of iterations performed
	Resid     float64 // final relative residual
	Converged bool    // tolerance reached within the iteration limit
}

// CG solves A·x = b by the conjugate-gradient method. A must be
// symmetric positive-(semi)definite. tol is the relative residual
// tolerance; maxit the iteration limit.
func CG(A *Matrix, b []float64, tol float64, maxit int) (x []float64, st CGStats) {
	m, n := A.Dims()
	if m != n || len(b) != n {
		chk.Panic("cg needs a square system: A is (%d,%d), b has %d", m, n, len(b))
	}
	x = make([]float64, n)
	if n == 0 {
		st.Converged = true
		return
	}

	bnorm := VecNorm(b)
	if bnorm == 0 {
		st.Converged = true
		return
	}

	r := make([]float64, n) // residual
	p := make([]float64, n) // search direction
	q := make([]float64, n) // A·p
	copy(r, b)              // r = b - A·0
	copy(p, r)
	rr := VecDot(r, r)

	for st.Niter = 0; st.Niter < maxit; st.Niter++ {
		st.Resid = VecNorm(r) / bnorm
		if st.Resid <= tol {
			st.Converged = true
			return
		}
		A.MulVec(q, p)
		pq := VecDot(p, q)
		if pq <= 0 || VecHasNaN(q) {
			return // matrix is not positive definite or has blown up
		}
		α := rr / pq
		VecAdd(x, 1, x, α, p)
		VecAdd(r, 1, r, -α, q)
		rrNew := VecDot(r, r)
		VecAdd(p, 1, r, rrNew/rr, p)
		rr = rrNew
	}
	st.Resid = VecNorm(r) / bnorm
	st.Converged = st.Resid <= tol
	return
}
