// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package spm implements the sparse matrices, sparse vectors and the
// linear solvers (conjugate gradient and LU factorisation) used by the
// direct stiffness engine. Memory cost is proportional to the number
// of nonzero entries, never to n².
package spm

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Matrix is a sparse matrix stored as a mapping from (row,col) keys to
// nonzero values. Absent keys are implicitly zero. Reads outside the
// declared dimensions return zero; writes outside the dimensions are a
// programming error and panic.
type Matrix struct {
	m, n int
	vals map[int64]float64
}

// mkey packs a (row,col) pair into one map key
func mkey(i, j int) int64 {
	return int64(i)<<32 | int64(j)
}

// NewMatrix returns a new m×n sparse matrix
func NewMatrix(m, n int) *Matrix {
	if m < 0 || n < 0 {
		chk.Panic("cannot allocate sparse matrix with negative dimensions (%d,%d)", m, n)
	}
	return &Matrix{m: m, n: n, vals: make(map[int64]float64)}
}

// Dims returns the declared dimensions
func (o *Matrix) Dims() (m, n int) { return o.m, o.n }

// Nnz returns the number of stored nonzero entries
func (o *Matrix) Nnz() int { return len(o.vals) }

// Get returns the value at (i,j); zero for absent or out-of-range keys
func (o *Matrix) Get(i, j int) float64 {
	if i < 0 || i >= o.m || j < 0 || j >= o.n {
		return 0
	}
	return o.vals[mkey(i, j)]
}

// Put accumulates v into entry (i,j), so that contributions shared by
// multiple elements sum rather than overwrite
func (o *Matrix) Put(i, j int, v float64) {
	o.checkRange(i, j)
	if v == 0 {
		return
	}
	k := mkey(i, j)
	w := o.vals[k] + v
	if w == 0 {
		delete(o.vals, k)
		return
	}
	o.vals[k] = w
}

// Set overwrites entry (i,j) with v
func (o *Matrix) Set(i, j int, v float64) {
	o.checkRange(i, j)
	k := mkey(i, j)
	if v == 0 {
		delete(o.vals, k)
		return
	}
	o.vals[k] = v
}

func (o *Matrix) checkRange(i, j int) {
	if i < 0 || i >= o.m || j < 0 || j >= o.n {
		chk.Panic("sparse matrix write (%d,%d) is outside declared dimensions (%d,%d)", i, j, o.m, o.n)
	}
}

// Each calls f for every stored nonzero entry. The iteration order is
// unspecified.
func (o *Matrix) Each(f func(i, j int, v float64)) {
	for k, v := range o.vals {
		f(int(k>>32), int(k&0xffffffff), v)
	}
}

// ZeroRowCol removes every entry of row i and column i. Used by the
// essential boundary condition applicator.
func (o *Matrix) ZeroRowCol(i int) {
	for k := range o.vals {
		if int(k>>32) == i || int(k&0xffffffff) == i {
			delete(o.vals, k)
		}
	}
}

// MulVec computes res := A·u. res must have length m and u length n.
func (o *Matrix) MulVec(res, u []float64) {
	if len(res) != o.m || len(u) != o.n {
		chk.Panic("matrix-vector multiply with incompatible sizes: A is (%d,%d), res has %d, u has %d",
			o.m, o.n, len(res), len(u))
	}
	for i := range res {
		res[i] = 0
	}
	for k, v := range o.vals {
		i := int(k >> 32)
		j := int(k & 0xffffffff)
		res[i] += v * u[j]
	}
}

// ToDense returns a dense copy for result reporting and debugging
func (o *Matrix) ToDense() [][]float64 {
	d := make([][]float64, o.m)
	for i := 0; i < o.m; i++ {
		d[i] = make([]float64, o.n)
	}
	for k, v := range o.vals {
		d[int(k>>32)][int(k&0xffffffff)] = v
	}
	return d
}

// Clone returns a deep copy
func (o *Matrix) Clone() *Matrix {
	c := NewMatrix(o.m, o.n)
	for k, v := range o.vals {
		c.vals[k] = v
	}
	return c
}

// Clear removes all entries, keeping the dimensions
func (o *Matrix) Clear() {
	clear(o.vals)
}

// Resize clears the matrix and sets new dimensions
func (o *Matrix) Resize(m, n int) {
	if m < 0 || n < 0 {
		chk.Panic("cannot resize sparse matrix to negative dimensions (%d,%d)", m, n)
	}
	o.m, o.n = m, n
	clear(o.vals)
}

// IsSymmetric tells whether |A[i][j]-A[j][i]| ≤ tol for all entries
func (o *Matrix) IsSymmetric(tol float64) bool {
	if o.m != o.n {
		return false
	}
	for k, v := range o.vals {
		i := int(k >> 32)
		j := int(k & 0xffffffff)
		if math.Abs(v-o.vals[mkey(j, i)]) > tol {
			return false
		}
	}
	return true
}

// MemEstimate returns an estimate of the memory used by the stored
// entries, in bytes. Diagnostics only.
func (o *Matrix) MemEstimate() int {
	// key (8) + value (8) + map overhead per bucket (~16)
	return 32 * len(o.vals)
}

// MaxAbs returns the largest absolute stored value (zero when empty)
func (o *Matrix) MaxAbs() (max float64) {
	for _, v := range o.vals {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	return
}
