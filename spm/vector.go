// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spm

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Vector is a sparse vector stored as a mapping from row keys to
// nonzero values. Same access contract as Matrix: out-of-range reads
// return zero, out-of-range writes panic.
type Vector struct {
	n    int
	vals map[int]float64
}

// NewVector returns a new sparse vector of length n
func NewVector(n int) *Vector {
	if n < 0 {
		chk.Panic("cannot allocate sparse vector with negative length %d", n)
	}
	return &Vector{n: n, vals: make(map[int]float64)}
}

// Len returns the declared length
func (o *Vector) Len() int { return o.n }

// Nnz returns the number of stored nonzero entries
func (o *Vector) Nnz() int { return len(o.vals) }

// Get returns the value at i; zero for absent or out-of-range keys
func (o *Vector) Get(i int) float64 {
	if i < 0 || i >= o.n {
		return 0
	}
	return o.vals[i]
}

// Accum accumulates v into entry i
func (o *Vector) Accum(i int, v float64) {
	if i < 0 || i >= o.n {
		chk.Panic("sparse vector write at %d is outside declared length %d", i, o.n)
	}
	if v == 0 {
		return
	}
	w := o.vals[i] + v
	if w == 0 {
		delete(o.vals, i)
		return
	}
	o.vals[i] = w
}

// Set overwrites entry i with v
func (o *Vector) Set(i int, v float64) {
	if i < 0 || i >= o.n {
		chk.Panic("sparse vector write at %d is outside declared length %d", i, o.n)
	}
	if v == 0 {
		delete(o.vals, i)
		return
	}
	o.vals[i] = v
}

// ToDense returns a dense copy
func (o *Vector) ToDense() []float64 {
	d := make([]float64, o.n)
	for i, v := range o.vals {
		d[i] = v
	}
	return d
}

// Clear removes all entries, keeping the length
func (o *Vector) Clear() {
	clear(o.vals)
}

// Resize clears the vector and sets a new length
func (o *Vector) Resize(n int) {
	if n < 0 {
		chk.Panic("cannot resize sparse vector to negative length %d", n)
	}
	o.n = n
	clear(o.vals)
}

// MemEstimate returns an estimate of the memory used by the stored
// entries, in bytes
func (o *Vector) MemEstimate() int {
	return 24 * len(o.vals)
}

// scale, add and dot on dense work arrays /////////////////////////////////////////////////////////

// VecScale computes res := α·u
func VecScale(res []float64, α float64, u []float64) {
	for i := range u {
		res[i] = α * u[i]
	}
}

// VecAdd computes res := α·u + β·v
func VecAdd(res []float64, α float64, u []float64, β float64, v []float64) {
	for i := range u {
		res[i] = α*u[i] + β*v[i]
	}
}

// VecDot returns the dot product of u and v
func VecDot(u, v []float64) (res float64) {
	for i := range u {
		res += u[i] * v[i]
	}
	return
}

// VecNorm returns the Euclidean norm of u
func VecNorm(u []float64) float64 {
	return math.Sqrt(VecDot(u, u))
}

// VecHasNaN tells whether u contains a NaN or an infinity
func VecHasNaN(u []float64) bool {
	for _, v := range u {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
