// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixPutGet(t *testing.T) {
	A := NewMatrix(3, 3)
	assert.Equal(t, 0, A.Nnz())
	assert.Equal(t, 0.0, A.Get(1, 2))

	A.Put(0, 0, 2.0)
	A.Put(0, 0, 3.0) // Put accumulates
	assert.Equal(t, 5.0, A.Get(0, 0))
	assert.Equal(t, 1, A.Nnz())

	A.Set(0, 0, 7.0) // Set overwrites
	assert.Equal(t, 7.0, A.Get(0, 0))

	// cancellation removes the entry so memory stays proportional to nnz
	A.Put(0, 0, -7.0)
	assert.Equal(t, 0, A.Nnz())
	assert.Equal(t, 0.0, A.Get(0, 0))
}

func TestMatrixRangePanics(t *testing.T) {
	A := NewMatrix(2, 2)
	require.Panics(t, func() { A.Put(2, 0, 1.0) })
	require.Panics(t, func() { A.Put(0, -1, 1.0) })
	require.Panics(t, func() { A.Set(5, 5, 1.0) })
	// reads out of range are benign
	assert.Equal(t, 0.0, A.Get(100, 100))
}

func TestMatrixMulVec(t *testing.T) {
	// | 2 -1  0 |   |1|   | 1 |
	// |-1  2 -1 | * |1| = | 0 |
	// | 0 -1  2 |   |1|   | 1 |
	A := NewMatrix(3, 3)
	for i := 0; i < 3; i++ {
		A.Put(i, i, 2.0)
	}
	A.Put(0, 1, -1.0)
	A.Put(1, 0, -1.0)
	A.Put(1, 2, -1.0)
	A.Put(2, 1, -1.0)

	res := make([]float64, 3)
	A.MulVec(res, []float64{1, 1, 1})
	assert.InDelta(t, 1.0, res[0], 1e-15)
	assert.InDelta(t, 0.0, res[1], 1e-15)
	assert.InDelta(t, 1.0, res[2], 1e-15)

	assert.True(t, A.IsSymmetric(1e-15))
	assert.Equal(t, 2.0, A.MaxAbs())
}

func TestMatrixZeroRowCol(t *testing.T) {
	A := NewMatrix(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			A.Put(i, j, float64(1+i+j))
		}
	}
	A.ZeroRowCol(1)
	for k := 0; k < 3; k++ {
		assert.Equal(t, 0.0, A.Get(1, k))
		assert.Equal(t, 0.0, A.Get(k, 1))
	}
	// untouched entries survive
	assert.Equal(t, 1.0, A.Get(0, 0))
	assert.Equal(t, 5.0, A.Get(2, 2))
}

func TestMatrixCloneIndependence(t *testing.T) {
	A := NewMatrix(2, 2)
	A.Put(0, 1, 3.0)
	B := A.Clone()
	B.Put(0, 1, 1.0)
	assert.Equal(t, 3.0, A.Get(0, 1))
	assert.Equal(t, 4.0, B.Get(0, 1))

	m, n := B.Dims()
	assert.Equal(t, 2, m)
	assert.Equal(t, 2, n)
}

func TestMatrixDenseAndMem(t *testing.T) {
	A := NewMatrix(2, 3)
	A.Put(0, 2, 4.0)
	A.Put(1, 0, -1.0)
	d := A.ToDense()
	require.Len(t, d, 2)
	require.Len(t, d[0], 3)
	assert.Equal(t, 4.0, d[0][2])
	assert.Equal(t, -1.0, d[1][0])
	assert.Equal(t, 0.0, d[0][0])

	assert.Equal(t, 2*32, A.MemEstimate())

	A.Clear()
	assert.Equal(t, 0, A.Nnz())
	m, n := A.Dims()
	assert.Equal(t, 2, m)
	assert.Equal(t, 3, n)

	A.Resize(5, 5)
	m, n = A.Dims()
	assert.Equal(t, 5, m)
	assert.Equal(t, 5, n)
	assert.Equal(t, 0, A.Nnz())
}

func TestVectorOps(t *testing.T) {
	v := NewVector(4)
	v.Accum(1, 2.0)
	v.Accum(1, 3.0)
	assert.Equal(t, 5.0, v.Get(1))
	assert.Equal(t, 1, v.Nnz())

	v.Set(2, -1.0)
	v.Accum(2, 1.0) // cancels
	assert.Equal(t, 1, v.Nnz())

	d := v.ToDense()
	assert.Equal(t, []float64{0, 5, 0, 0}, d)

	require.Panics(t, func() { v.Set(4, 1.0) })

	assert.InDelta(t, 5.0, VecNorm(d), 1e-15)
	assert.InDelta(t, 25.0, VecDot(d, d), 1e-15)

	res := make([]float64, 4)
	VecAdd(res, 2, d, -1, d)
	assert.Equal(t, 5.0, res[1])
	VecScale(res, 0.5, d)
	assert.Equal(t, 2.5, res[1])
}
