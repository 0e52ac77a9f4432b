// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/Latif080790/strukturfem/inp"
	"github.com/Latif080790/strukturfem/spm"
)

// LinearStatic performs one linear static analysis of the structure:
// assembly, boundary condition elimination, solving and post
// processing. Configuration errors are returned as err; model defects
// become warnings; numerical failures yield an invalid result
// (Ok == false, non-empty Errors) and a nil err.
func LinearStatic(st *inp.Structure3D, set *inp.OptimizationSettings) (res *Result, err error) {
	if set == nil {
		set = inp.DefaultSettings()
	}
	if err = set.Validate(); err != nil {
		return
	}

	res = newResult()
	dom := NewDomain(st)
	res.Warnings = dom.Warnings

	var pool *spm.Pool
	if set.UsePool {
		pool = spm.NewPool()
	}
	solveStatic(dom, set, pool, res)
	return
}

// solveStatic runs the (K,F) → u pipeline on a resolved domain and
// fills the result in place
func solveStatic(dom *Domain, set *inp.OptimizationSettings, pool *spm.Pool, res *Result) {

	// empty model: a valid all-zero response
	if dom.Ny == 0 {
		res.Ok = true
		return
	}

	if set.Verbose {
		io.Pf("> assembling %d equations from %d elements\n", dom.Ny, len(dom.Elems))
	}

	// assemble and apply boundary conditions
	K := dom.AssembleK(pool)
	K0 := K.Clone() // kept for reaction recovery
	F := dom.BuildLoadVector(0)
	bcs := NewEssentialBcs(dom)
	bcs.Apply(K, F)
	res.Warnings = append(res.Warnings, bcs.Warnings...)

	// solve
	u, rep, err := SolveLin(K, F, set)
	res.Solver = rep
	if err != nil {
		res.fail(err.Error())
		return
	}
	if spm.VecHasNaN(u) {
		res.fail("solution contains NaN or Inf")
		return
	}
	if set.Verbose {
		io.Pf("> solved with %q (iterations=%d, residual=%g)\n", rep.Method, rep.Niter, rep.Resid)
	}

	fillResult(dom, u, K0, F, res)
	res.Ok = true

	if pool != nil {
		pool.PutMatrix(K)
		pool.PutMatrix(K0)
	}
}

// fillResult derives nodal displacements, reactions, member forces,
// stresses and summary maxima from the solution vector
func fillResult(dom *Domain, u []float64, K0 *spm.Matrix, Fext []float64, res *Result) {

	res.NodeIds = make([]int, len(dom.Nodes))
	res.Disp = make([][]float64, len(dom.Nodes))
	for idx, n := range dom.Nodes {
		res.NodeIds[idx] = n.Id
		res.Disp[idx] = make([]float64, 6)
		copy(res.Disp[idx], u[idx*6:idx*6+6])
		for r := 0; r < 3; r++ {
			if a := math.Abs(u[idx*6+r]); a > res.MaxDisp {
				res.MaxDisp = a
			}
		}
	}

	res.React = Reactions(K0, u, Fext)

	res.ElemIds = make([]int, len(dom.Elems))
	res.ElemForces = make([][]float64, len(dom.Elems))
	res.ElemStress = make([]float64, len(dom.Elems))
	for i, e := range dom.Elems {
		res.ElemIds[i] = e.Cell.Id
		res.ElemForces[i] = e.EndForces(u)
		res.ElemStress[i] = e.MaxStress(u)
		if res.ElemStress[i] > res.MaxStress {
			res.MaxStress = res.ElemStress[i]
		}
	}
}
