// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spd5 builds a 5x5 symmetric positive-definite tridiagonal system
func spd5() (*Matrix, []float64) {
	n := 5
	A := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		A.Put(i, i, 4.0)
		if i > 0 {
			A.Put(i, i-1, -1.0)
			A.Put(i-1, i, -1.0)
		}
	}
	b := []float64{1, 2, 3, 4, 5}
	return A, b
}

func TestCGConverges(t *testing.T) {
	A, b := spd5()
	x, st := CG(A, b, 1e-12, 1000)
	require.True(t, st.Converged)
	assert.Greater(t, st.Niter, 0)
	assert.Less(t, st.Resid, 1e-10)

	// residual check: A·x must reproduce b
	r := make([]float64, len(b))
	A.MulVec(r, x)
	for i := range b {
		assert.InDelta(t, b[i], r[i], 1e-9)
	}
}

func TestCGZeroRhs(t *testing.T) {
	A, _ := spd5()
	x, st := CG(A, []float64{0, 0, 0, 0, 0}, 1e-12, 100)
	require.True(t, st.Converged)
	assert.Equal(t, 0, st.Niter)
	for i := range x {
		assert.Equal(t, 0.0, x[i])
	}
}

func TestCGMaxItIsStatusNotError(t *testing.T) {
	A, b := spd5()
	_, st := CG(A, b, 1e-16, 1)
	assert.False(t, st.Converged)
	assert.Equal(t, 1, st.Niter)
}

func TestLUSolve(t *testing.T) {
	A, b := spd5()
	fac, err := Factorize(A, 1e-12)
	require.NoError(t, err)
	x, err := fac.Solve(b)
	require.NoError(t, err)

	r := make([]float64, len(b))
	A.MulVec(r, x)
	for i := range b {
		assert.InDelta(t, b[i], r[i], 1e-10)
	}
	assert.Greater(t, fac.MemEstimate(), 0)

	// factors are reusable across right-hand sides
	x2, err := fac.Solve([]float64{5, 4, 3, 2, 1})
	require.NoError(t, err)
	assert.NotEqual(t, x[0], x2[0])
}

func TestLUPivoting(t *testing.T) {
	// zero diagonal head forces a row swap
	A := NewMatrix(2, 2)
	A.Put(0, 1, 1.0)
	A.Put(1, 0, 1.0)
	fac, err := Factorize(A, 1e-12)
	require.NoError(t, err)
	x, err := fac.Solve([]float64{3, 7})
	require.NoError(t, err)
	assert.InDelta(t, 7.0, x[0], 1e-12)
	assert.InDelta(t, 3.0, x[1], 1e-12)
}

func TestLUSingular(t *testing.T) {
	// rank-deficient: second row is twice the first
	A := NewMatrix(2, 2)
	A.Put(0, 0, 1.0)
	A.Put(0, 1, 2.0)
	A.Put(1, 0, 2.0)
	A.Put(1, 1, 4.0)
	_, err := Factorize(A, 1e-12)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "singular")
}

func TestCGAndLUAgree(t *testing.T) {
	A, b := spd5()
	xcg, st := CG(A, b, 1e-14, 1000)
	require.True(t, st.Converged)
	fac, err := Factorize(A, 1e-12)
	require.NoError(t, err)
	xlu, err := fac.Solve(b)
	require.NoError(t, err)
	for i := range b {
		assert.InDelta(t, xlu[i], xcg[i], 1e-8)
	}
}

func TestPoolClearsOnCheckout(t *testing.T) {
	p := NewPool()

	A := p.GetMatrix(3, 3)
	A.Put(0, 0, 9.0)
	p.PutMatrix(A)
	B := p.GetMatrix(3, 3)
	assert.Equal(t, 0, B.Nnz())
	assert.Equal(t, 0.0, B.Get(0, 0))

	v := p.GetVector(4)
	v.Set(2, 1.0)
	p.PutVector(v)
	w := p.GetVector(4)
	assert.Equal(t, 0, w.Nnz())

	d := p.GetDense(6)
	d[3] = 5.0
	p.PutDense(d)
	d2 := p.GetDense(6)
	for i := range d2 {
		assert.Equal(t, 0.0, d2[i])
	}

	assert.GreaterOrEqual(t, p.MemEstimate(), 0)
}
