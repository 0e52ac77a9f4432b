// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spm

// Pool is a free-list of sparse matrices, sparse vectors and dense
// scratch slices. Checked-out objects are always cleared first, so no
// state can leak between logically independent analyses. A Pool must
// not be shared by concurrently running analyses.
type Pool struct {
	mats  []*Matrix
	vecs  []*Vector
	dense map[int][][]float64 // size class => stack of slices
}

// NewPool returns an empty pool
func NewPool() *Pool {
	return &Pool{dense: make(map[int][][]float64)}
}

// GetMatrix returns a cleared m×n sparse matrix
func (o *Pool) GetMatrix(m, n int) *Matrix {
	if l := len(o.mats); l > 0 {
		a := o.mats[l-1]
		o.mats = o.mats[:l-1]
		a.Resize(m, n)
		return a
	}
	return NewMatrix(m, n)
}

// PutMatrix returns a matrix to the pool
func (o *Pool) PutMatrix(a *Matrix) {
	if a == nil {
		return
	}
	o.mats = append(o.mats, a)
}

// GetVector returns a cleared sparse vector of length n
func (o *Pool) GetVector(n int) *Vector {
	if l := len(o.vecs); l > 0 {
		v := o.vecs[l-1]
		o.vecs = o.vecs[:l-1]
		v.Resize(n)
		return v
	}
	return NewVector(n)
}

// PutVector returns a vector to the pool
func (o *Pool) PutVector(v *Vector) {
	if v == nil {
		return
	}
	o.vecs = append(o.vecs, v)
}

// GetDense returns a zeroed dense slice of length n, drawn from the
// size class of n
func (o *Pool) GetDense(n int) []float64 {
	stack := o.dense[n]
	if l := len(stack); l > 0 {
		u := stack[l-1]
		o.dense[n] = stack[:l-1]
		for i := range u {
			u[i] = 0
		}
		return u
	}
	return make([]float64, n)
}

// PutDense returns a dense slice to its size class
func (o *Pool) PutDense(u []float64) {
	if u == nil {
		return
	}
	o.dense[len(u)] = append(o.dense[len(u)], u)
}

// MemEstimate returns an estimate of the memory retained by the pool,
// in bytes. Diagnostics only.
func (o *Pool) MemEstimate() (total int) {
	for _, a := range o.mats {
		total += a.MemEstimate()
	}
	for _, v := range o.vecs {
		total += v.MemEstimate()
	}
	for n, stack := range o.dense {
		total += 8 * n * len(stack)
	}
	return
}
