// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/Latif080790/strukturfem/spm"
)

// AssembleK scatters every element's global stiffness into the global
// sparse stiffness matrix, accumulating entries shared by multiple
// elements. The matrix is square of size 6 × nodeCount. pool may be
// nil; when given, the matrix is drawn from (and cleared by) the pool.
func (o *Domain) AssembleK(pool *spm.Pool) (K *spm.Matrix) {
	K = o.newMatrix(pool)
	for _, e := range o.Elems {
		for i, I := range e.Umap {
			for j, J := range e.Umap {
				K.Put(I, J, e.K[i][j])
			}
		}
	}
	return
}

// AssembleM assembles the global mass matrix from element self-weight
// (density × volume), consistent or lumped per configuration
func (o *Domain) AssembleM(lumped bool, pool *spm.Pool) (M *spm.Matrix) {
	M = o.newMatrix(pool)
	for _, e := range o.Elems {
		m := e.Mass(lumped)
		for i, I := range e.Umap {
			for j, J := range e.Umap {
				M.Put(I, J, m[i][j])
			}
		}
	}
	return
}

// AssembleKg assembles the geometric stiffness matrix from the element
// axial forces under the displacement state u (the reference load
// pattern's solution)
func (o *Domain) AssembleKg(u []float64, pool *spm.Pool) (Kg *spm.Matrix) {
	Kg = o.newMatrix(pool)
	for _, e := range o.Elems {
		kg := e.Geometric(e.AxialForce(u))
		for i, I := range e.Umap {
			for j, J := range e.Umap {
				Kg.Put(I, J, kg[i][j])
			}
		}
	}
	return
}

// RayleighCoefs derives the Rayleigh proportional damping coefficients
// C = α·M + β·K from a target modal damping ratio ζ and two reference
// circular frequencies ω1 < ω2
func RayleighCoefs(ζ, ω1, ω2 float64) (α, β float64) {
	if ζ == 0 || ω1+ω2 == 0 {
		return
	}
	α = 2.0 * ζ * ω1 * ω2 / (ω1 + ω2)
	β = 2.0 * ζ / (ω1 + ω2)
	return
}

// AssembleC builds the Rayleigh damping matrix C = α·M + β·K
func (o *Domain) AssembleC(M, K *spm.Matrix, α, β float64, pool *spm.Pool) (C *spm.Matrix) {
	C = o.newMatrix(pool)
	if α != 0 {
		M.Each(func(i, j int, v float64) { C.Put(i, j, α*v) })
	}
	if β != 0 {
		K.Each(func(i, j int, v float64) { C.Put(i, j, β*v) })
	}
	return
}

func (o *Domain) newMatrix(pool *spm.Pool) *spm.Matrix {
	if pool != nil {
		return pool.GetMatrix(o.Ny, o.Ny)
	}
	return spm.NewMatrix(o.Ny, o.Ny)
}
