// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spm

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
)

// LUFactors holds the LU factorisation of a square sparse matrix with
// partial (row) pivoting: P·A = L·U. The strict lower part of each row
// stores L (unit diagonal implied); the diagonal and upper part store U.
type LUFactors struct {
	n    int
	rows []map[int]float64
	perm []int // perm[i] = original row now at position i
}

// Factorize computes the LU factorisation of A. A zero or near-zero
// pivot (relative to the largest entry of A) is reported as a
// singularity error rather than producing garbage.
func Factorize(A *Matrix, pivtol float64) (f *LUFactors, err error) {
	m, n := A.Dims()
	if m != n {
		chk.Panic("lu needs a square matrix; got (%d,%d)", m, n)
	}
	f = &LUFactors{n: n}
	f.rows = make([]map[int]float64, n)
	f.perm = make([]int, n)
	for i := 0; i < n; i++ {
		f.rows[i] = make(map[int]float64)
		f.perm[i] = i
	}
	A.Each(func(i, j int, v float64) {
		f.rows[i][j] = v
	})

	scale := A.MaxAbs()
	if scale == 0 {
		if n == 0 {
			return
		}
		return nil, chk.Err("matrix is singular: all entries are zero")
	}
	small := pivtol * scale

	for k := 0; k < n; k++ {

		// partial pivoting: pick the largest |entry| in column k
		p, big := k, math.Abs(f.rows[k][k])
		for r := k + 1; r < n; r++ {
			if a := math.Abs(f.rows[r][k]); a > big {
				p, big = r, a
			}
		}
		if big <= small {
			return nil, chk.Err("matrix is singular or ill-conditioned: pivot %g at column %d", big, k)
		}
		if p != k {
			f.rows[p], f.rows[k] = f.rows[k], f.rows[p]
			f.perm[p], f.perm[k] = f.perm[k], f.perm[p]
		}
		piv := f.rows[k][k]

		// eliminate below the pivot; fill-in goes into the row maps
		for r := k + 1; r < n; r++ {
			a, ok := f.rows[r][k]
			if !ok {
				continue
			}
			fac := a / piv
			f.rows[r][k] = fac // L entry
			for c, v := range f.rows[k] {
				if c <= k {
					continue
				}
				w := f.rows[r][c] - fac*v
				if w == 0 {
					delete(f.rows[r], c)
				} else {
					f.rows[r][c] = w
				}
			}
		}
	}
	return
}

// Solve computes x such that A·x = b using the stored factors.
// Factorize once, solve many.
func (o *LUFactors) Solve(b []float64) (x []float64, err error) {
	if len(b) != o.n {
		chk.Panic("lu solve needs b of length %d; got %d", o.n, len(b))
	}
	x = make([]float64, o.n)

	// y = L⁻¹·P·b (forward substitution)
	for i := 0; i < o.n; i++ {
		s := b[o.perm[i]]
		for c, v := range o.rows[i] {
			if c < i {
				s -= v * x[c]
			}
		}
		x[i] = s
	}

	// x = U⁻¹·y (back substitution); upper columns sorted for a stable
	// deterministic traversal
	for i := o.n - 1; i >= 0; i-- {
		s := x[i]
		cols := make([]int, 0, len(o.rows[i]))
		for c := range o.rows[i] {
			if c > i {
				cols = append(cols, c)
			}
		}
		sort.Ints(cols)
		for _, c := range cols {
			s -= o.rows[i][c] * x[c]
		}
		x[i] = s / o.rows[i][i]
	}

	if VecHasNaN(x) {
		return nil, chk.Err("solution contains NaN or Inf")
	}
	return
}

// MemEstimate returns an estimate of the memory used by the factors,
// in bytes
func (o *LUFactors) MemEstimate() (total int) {
	for _, r := range o.rows {
		total += 24 * len(r)
	}
	return total + 8*len(o.perm)
}
