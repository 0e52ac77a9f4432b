// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"

	"github.com/Latif080790/strukturfem/inp"
	"github.com/Latif080790/strukturfem/spm"
)

// Buckling performs a linear (eigenvalue) buckling analysis: a static
// solve under the structure's loads provides the element axial forces,
// the geometric stiffness Kg is assembled from them, and the
// generalized problem (K + λ·Kg)·φ = 0 is reduced to a standard
// eigenproblem on the free DOFs via a sparse LU of K. Returns the
// requested number of lowest-magnitude critical load multipliers with
// full-size mode shapes.
func Buckling(st *inp.Structure3D, cfg *inp.BucklingConfig, set *inp.OptimizationSettings) (res *AdvancedResult, err error) {

	// configuration errors are rejected at call time
	if set == nil {
		set = inp.DefaultSettings()
	}
	if err = set.Validate(); err != nil {
		return
	}
	if err = cfg.Validate(); err != nil {
		return
	}

	res = &AdvancedResult{Result: *newResult(), AnalysisType: "buckling"}
	bk := &BucklingResults{}
	res.Buckling = bk
	dom := NewDomain(st)
	res.Warnings = dom.Warnings
	if dom.Ny == 0 {
		res.Ok = true
		return
	}

	// static pre-analysis under the reference load pattern
	K := dom.AssembleK(nil)
	Kbc := K.Clone()
	F := dom.BuildLoadVector(0)
	bk.RefLoadMag = spm.VecNorm(F)
	if bk.RefLoadMag == 0 {
		res.fail("reference load pattern is empty: buckling needs applied loads")
		return
	}
	// the buckling configuration overrides the solver tolerances for
	// the pre-analysis and the subsequent reduction
	pre := *set
	pre.Tol = cfg.Tol
	pre.MaxIt = cfg.MaxIt

	bcs := NewEssentialBcs(dom)
	bcs.Apply(Kbc, F)
	res.Warnings = append(res.Warnings, bcs.Warnings...)
	u, rep, serr := SolveLin(Kbc, F, &pre)
	res.Solver = rep
	if serr != nil {
		res.fail(io.Sf("static pre-analysis failed: %v", serr))
		return
	}

	// geometric stiffness from the axial force state
	Kg := dom.AssembleKg(u, nil)

	// reduce to free DOFs
	free := make([]int, 0, dom.Ny)
	pos := make([]int, dom.Ny)
	for eq := 0; eq < dom.Ny; eq++ {
		pos[eq] = -1
		if !bcs.IsEq[eq] {
			pos[eq] = len(free)
			free = append(free, eq)
		}
	}
	nf := len(free)
	if nf == 0 {
		res.fail("all degrees of freedom are fixed: no buckling modes exist")
		return
	}
	nmodes := cfg.NumModes
	if nmodes > nf {
		nmodes = nf
		res.Warnings = append(res.Warnings, io.Sf("only %d modes available; %d were requested", nf, cfg.NumModes))
	}

	Kff := spm.NewMatrix(nf, nf)
	K.Each(func(i, j int, v float64) {
		if pos[i] >= 0 && pos[j] >= 0 {
			Kff.Put(pos[i], pos[j], v)
		}
	})
	fac, ferr := spm.Factorize(Kff, pre.Tol)
	if ferr != nil {
		res.fail(io.Sf("stiffness matrix is singular: %v", ferr))
		return
	}

	// standard form: A = K⁻¹·(−Kg); the lowest critical multipliers λ
	// are the reciprocals of the largest eigenvalues of A
	B := make([][]float64, nf) // columns of −Kg on the free DOFs
	for c := 0; c < nf; c++ {
		B[c] = make([]float64, nf)
	}
	Kg.Each(func(i, j int, v float64) {
		if pos[i] >= 0 && pos[j] >= 0 {
			B[pos[j]][pos[i]] = -v
		}
	})
	A := mat.NewDense(nf, nf, nil)
	for c := 0; c < nf; c++ {
		col, cerr := fac.Solve(B[c])
		if cerr != nil {
			res.fail(io.Sf("reduction failed at column %d: %v", c, cerr))
			return
		}
		for r := 0; r < nf; r++ {
			A.Set(r, c, col[r])
		}
	}

	var eig mat.Eigen
	if !eig.Factorize(A, mat.EigenRight) {
		res.fail("eigenvalue decomposition did not converge")
		return
	}
	vals := eig.Values(nil)
	vecs := mat.NewCDense(nf, nf, nil)
	eig.VectorsTo(vecs)

	// keep real, finite, nonzero eigenvalues; λ = 1/μ
	type mode struct {
		lam float64
		col int
	}
	var modes []mode
	for j, μ := range vals {
		re, im := real(μ), imag(μ)
		if math.Abs(im) > 1e-8*(1.0+math.Abs(re)) {
			continue
		}
		if math.Abs(re) < 1e-14 || math.IsNaN(re) || math.IsInf(re, 0) {
			continue
		}
		modes = append(modes, mode{lam: 1.0 / re, col: j})
	}
	sort.Slice(modes, func(a, b int) bool {
		la, lb := modes[a].lam, modes[b].lam
		if (la > 0) != (lb > 0) {
			return la > 0 // positive multipliers first
		}
		return math.Abs(la) < math.Abs(lb)
	})
	if len(modes) < nmodes {
		res.fail(io.Sf("only %d real buckling modes found; %d were requested", len(modes), nmodes))
		return
	}

	// scatter mode shapes to full size; zeros remain at fixed DOFs
	for k := 0; k < nmodes; k++ {
		φ := make([]float64, dom.Ny)
		var max float64
		for r, eq := range free {
			φ[eq] = real(vecs.At(r, modes[k].col))
			if a := math.Abs(φ[eq]); a > max {
				max = a
			}
		}
		if max > 0 {
			for i := range φ {
				φ[i] /= max
			}
		}
		bk.Factors = append(bk.Factors, modes[k].lam)
		bk.Modes = append(bk.Modes, φ)
	}

	// safety factor = smallest critical buckling load ÷ reference load
	bk.CriticalLoad = bk.Factors[0] * bk.RefLoadMag
	bk.SafetyFactor = bk.CriticalLoad / bk.RefLoadMag

	fillResult(dom, u, K, F, &res.Result)
	res.Ok = true
	return
}
