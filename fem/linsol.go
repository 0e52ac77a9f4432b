// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"

	"github.com/Latif080790/strukturfem/inp"
	"github.com/Latif080790/strukturfem/spm"
)

// LinSolReport carries diagnostics of one linear solve
type LinSolReport struct {
	Method   string  // "cg" or "lu"
	Niter    int     // iterations performed (cg)
	Resid    float64 // final relative residual (cg)
	MemBytes int     // factor memory estimate (lu, with Profile on)
}

// linSolFcn solves K·u = F and reports diagnostics. Strategies are
// drop-in substitutable: callers depend only on this signature.
type linSolFcn func(K *spm.Matrix, F []float64, set *inp.OptimizationSettings) (u []float64, rep LinSolReport, err error)

// linsolvers holds all available linear solver strategies
var linsolvers = make(map[string]linSolFcn)

func init() {

	// iterative conjugate-gradient strategy
	linsolvers["cg"] = func(K *spm.Matrix, F []float64, set *inp.OptimizationSettings) (u []float64, rep LinSolReport, err error) {
		rep.Method = "cg"
		x, st := spm.CG(K, F, set.Tol, set.MaxIt)
		rep.Niter = st.Niter
		rep.Resid = st.Resid
		if !st.Converged {
			return nil, rep, chk.Err("cg did not converge after %d iterations (residual = %g)", st.Niter, st.Resid)
		}
		if spm.VecHasNaN(x) {
			return nil, rep, chk.Err("cg solution contains NaN or Inf")
		}
		return x, rep, nil
	}

	// direct sparse LU strategy
	linsolvers["lu"] = func(K *spm.Matrix, F []float64, set *inp.OptimizationSettings) (u []float64, rep LinSolReport, err error) {
		rep.Method = "lu"
		fac, err := spm.Factorize(K, set.Tol)
		if err != nil {
			return nil, rep, err
		}
		if set.Profile {
			rep.MemBytes = fac.MemEstimate()
		}
		u, err = fac.Solve(F)
		return u, rep, err
	}
}

// SolveLin solves K·u = F with the strategy selected by the settings
func SolveLin(K *spm.Matrix, F []float64, set *inp.OptimizationSettings) (u []float64, rep LinSolReport, err error) {
	solve, ok := linsolvers[set.Solver]
	if !ok {
		return nil, rep, chk.Err("cannot find linear solver named %q", set.Solver)
	}
	return solve(K, F, set)
}
