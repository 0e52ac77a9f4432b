// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/Latif080790/strukturfem/inp"
	"github.com/Latif080790/strukturfem/spm"
)

// Newmark-β average-acceleration parameters (unconditionally stable)
const (
	newmarkBeta  = 0.25
	newmarkGamma = 0.5
)

// TimeHistory performs a time-history response analysis by Newmark-β
// integration. States: Initialized → Stepping → Completed. A failing
// step stops the run at the last valid state and returns the partial
// response tagged invalid; cancellation through ctx is honoured
// between steps. An empty load history yields a valid all-zero
// response.
func TimeHistory(ctx context.Context, st *inp.Structure3D, cfg *inp.TimeHistoryConfig, set *inp.OptimizationSettings) (res *AdvancedResult, err error) {

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

	// initialise
	res = &AdvancedResult{Result: *newResult(), AnalysisType: "time-history"}
	th := &TimeHistoryResults{}
	res.TimeHistory = th
	dom := NewDomain(st)
	res.Warnings = dom.Warnings
	if dom.Ny == 0 {
		res.Ok = true
		return
	}

	var pool *spm.Pool
	if set.UsePool {
		pool = spm.NewPool()
	}

	// assemble K, M and Rayleigh C
	K := dom.AssembleK(pool)
	M := dom.AssembleM(cfg.LumpedMass, pool)
	α, β := RayleighCoefs(cfg.DampingRatio, cfg.DampFreq1, cfg.DampFreq2)
	C := dom.AssembleC(M, K, α, β, pool)

	// Newmark integration constants
	dt := cfg.Dt
	a0 := 1.0 / (newmarkBeta * dt * dt)
	a1 := newmarkGamma / (newmarkBeta * dt)
	a2 := 1.0 / (newmarkBeta * dt)
	a3 := 1.0/(2.0*newmarkBeta) - 1.0
	a4 := newmarkGamma/newmarkBeta - 1.0
	a5 := dt / 2.0 * (newmarkGamma/newmarkBeta - 2.0)

	// effective stiffness Keff = K + a0·M + a1·C, with boundary
	// conditions eliminated, factorised once for the whole run
	Keff := K.Clone()
	M.Each(func(i, j int, v float64) { Keff.Put(i, j, a0*v) })
	C.Each(func(i, j int, v float64) { Keff.Put(i, j, a1*v) })
	bcs := NewEssentialBcs(dom)
	Fzero := make([]float64, dom.Ny)
	bcs.Apply(Keff, Fzero)
	res.Warnings = append(res.Warnings, bcs.Warnings...)
	fac, ferr := spm.Factorize(Keff, set.Tol)
	if ferr != nil {
		res.fail(io.Sf("cannot factorise effective stiffness: %v", ferr))
		return
	}

	// initial state (at rest)
	u := make([]float64, dom.Ny)
	v := make([]float64, dom.Ny)
	a := make([]float64, dom.Ny)
	scratch := make([]float64, dom.Ny)

	nsteps := int(math.Round(cfg.Duration / dt))
	if set.Verbose {
		io.Pf("> time-history: %d steps of Δt = %g\n", nsteps, dt)
	}

	// stepping
	for i := 1; i <= nsteps; i++ {

		// cooperative cancellation between steps; no partial step is
		// ever committed
		select {
		case <-ctx.Done():
			res.fail(io.Sf("analysis cancelled at step %d of %d", i, nsteps))
			return
		default:
		}

		t := float64(i) * dt

		// external load interpolated at current time
		F := make([]float64, dom.Ny)
		dom.AddHistoryLoads(F, cfg.Histories, t)

		// effective load:
		// Feff = F + M·(a0·u + a2·v + a3·a) + C·(a1·u + a4·v + a5·a)
		work := make([]float64, dom.Ny)
		for k := range work {
			work[k] = a0*u[k] + a2*v[k] + a3*a[k]
		}
		M.MulVec(scratch, work)
		for k := range F {
			F[k] += scratch[k]
		}
		for k := range work {
			work[k] = a1*u[k] + a4*v[k] + a5*a[k]
		}
		C.MulVec(scratch, work)
		for k := range F {
			F[k] += scratch[k]
		}
		for _, eq := range bcs.Eqs {
			F[eq] = 0
		}

		// advance
		un, serr := fac.Solve(F)
		if serr != nil {
			res.fail(io.Sf("step %d (t = %g) failed: %v", i, t, serr))
			return
		}
		an := make([]float64, dom.Ny)
		vn := make([]float64, dom.Ny)
		for k := range un {
			an[k] = a0*(un[k]-u[k]) - a2*v[k] - a3*a[k]
			vn[k] = v[k] + dt*((1.0-newmarkGamma)*a[k]+newmarkGamma*an[k])
		}
		if spm.VecHasNaN(un) || spm.VecHasNaN(an) {
			res.fail(io.Sf("step %d (t = %g) produced NaN or Inf", i, t))
			return
		}
		u, v, a = un, vn, an

		// commit step: running maxima and per-step peak
		var pd float64
		for k := range u {
			if d := math.Abs(u[k]); d > pd {
				pd = d
			}
			if w := math.Abs(v[k]); w > th.MaxVel {
				th.MaxVel = w
			}
			if w := math.Abs(a[k]); w > th.MaxAcc {
				th.MaxAcc = w
			}
		}
		if pd > th.MaxDisp {
			th.MaxDisp = pd
			th.TMaxDisp = t
		}
		th.Steps = i
		th.Time = append(th.Time, t)
		th.PeakDisp = append(th.PeakDisp, pd)
	}

	// completed: report the final displacement state
	K0 := dom.AssembleK(nil)
	Ffin := make([]float64, dom.Ny)
	dom.AddHistoryLoads(Ffin, cfg.Histories, float64(nsteps)*dt)
	fillResult(dom, u, K0, Ffin, &res.Result)
	res.Ok = true
	return
}
