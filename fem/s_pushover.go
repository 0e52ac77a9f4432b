// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/Latif080790/strukturfem/inp"
	"github.com/Latif080790/strukturfem/spm"
)

// ultimateDropRatio is the base-shear drop (relative to the previous
// step) taken as the strength degradation signal
const ultimateDropRatio = 0.2

// Pushover performs a displacement-controlled nonlinear static
// analysis. States: Initialized → Incrementing → {Converged |
// DidNotConverge | UltimateReached}. At each increment the control DOF
// is pushed by maxDisplacement/incrementSteps; hinges detected at an
// increment reduce the stiffness for all subsequent increments. The
// run stops early when the base shear drops more than 20% from the
// prior step. A non-convergent increment stops the run at the last
// valid state; the partial curve is returned tagged invalid.
func Pushover(ctx context.Context, st *inp.Structure3D, cfg *inp.PushoverConfig, set *inp.OptimizationSettings) (res *AdvancedResult, err error) {

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

	res = &AdvancedResult{Result: *newResult(), AnalysisType: "pushover"}
	po := &PushoverResults{State: "Converged"}
	res.Pushover = po
	dom := NewDomain(st)
	res.Warnings = dom.Warnings
	if dom.Ny == 0 {
		res.Ok = true
		return
	}

	// control DOF
	cdof := cfg.ControlDof()
	ceq := dom.Eq(cfg.ControlNode, cdof)
	if ceq < 0 {
		return nil, chk.Err("control node %d is not part of the structure", cfg.ControlNode)
	}
	bcs := NewEssentialBcs(dom)
	if bcs.IsEq[ceq] {
		return nil, chk.Err("control DOF at node %d is fixed and cannot be pushed", cfg.ControlNode)
	}

	var pool *spm.Pool
	if set.UsePool {
		pool = spm.NewPool()
	}

	dinc := cfg.MaxDisplacement / float64(cfg.IncrementSteps)
	var u []float64
	var K0 *spm.Matrix
	Fzero := make([]float64, dom.Ny)

	// incrementing
	for i := 1; i <= cfg.IncrementSteps; i++ {

		select {
		case <-ctx.Done():
			po.State = "DidNotConverge"
			res.fail(io.Sf("analysis cancelled at increment %d of %d", i, cfg.IncrementSteps))
			return
		default:
		}

		d := float64(i) * dinc

		// solve for the consistent force state under the prescribed
		// control displacement; hinges from earlier increments are
		// already reflected in the element stiffnesses
		K := dom.AssembleK(pool)
		Kfull := K.Clone()
		F := make([]float64, dom.Ny)
		bcs.ApplyPrescribed(K, F, map[int]float64{ceq: d})

		un, rep, serr := SolveLin(K, F, set)
		res.Solver = rep
		if serr != nil || spm.VecHasNaN(un) {
			po.State = "DidNotConverge"
			msg := "solution contains NaN or Inf"
			if serr != nil {
				msg = serr.Error()
			}
			res.fail(io.Sf("increment %d (d = %g) failed: %s", i, d, msg))
			break
		}
		u = un
		if pool != nil {
			pool.PutMatrix(K)
		}
		K0 = Kfull

		// base shear: sum of reactions at vertically-restrained nodes
		R := Reactions(Kfull, u, Fzero)
		var vb float64
		for _, idx := range bcs.VertNodes {
			vb += R[idx*6+cdof]
		}
		vb = math.Abs(vb)

		// commit increment
		po.Disp = append(po.Disp, d)
		po.BaseShear = append(po.BaseShear, vb)
		if set.Verbose {
			io.Pf("> increment %3d: d = %12.6f  V = %12.3f\n", i, d, vb)
		}

		// plastic hinge detection: strain and end-rotation criteria
		for _, e := range dom.Elems {
			if e.Defective {
				continue
			}
			strained := cfg.StrainLimit > 0 && e.MaxStress(u)/e.Mat.E > cfg.StrainLimit
			for m := 0; m < 2; m++ {
				if e.Released(m) {
					continue
				}
				rotated := cfg.RotationLimit > 0 && math.Abs(e.EndRotation(u, m)) > cfg.RotationLimit
				if rotated || (strained && largerMomentEnd(e.EndForces(u)) == m) {
					e.InsertHinge(m)
					po.Hinges = append(po.Hinges, HingeEvent{Elem: e.Cell.Id, End: m, Step: i, Disp: d})
				}
			}
		}

		// strength degradation signal
		n := len(po.BaseShear)
		if n >= 2 && po.BaseShear[n-1] < (1.0-ultimateDropRatio)*po.BaseShear[n-2] {
			po.State = "UltimateReached"
			break
		}
	}

	performancePoints(po)
	res.Warnings = append(res.Warnings, bcs.Warnings...)
	if po.State != "DidNotConverge" {
		res.Ok = true
	}
	if u != nil && K0 != nil {
		fillResult(dom, u, K0, Fzero, &res.Result)
	}
	return
}

// largerMomentEnd returns the element end (0 or 1) carrying the larger
// major-axis bending moment
func largerMomentEnd(fl []float64) int {
	if math.Abs(fl[11]) > math.Abs(fl[5]) {
		return 1
	}
	return 0
}

// performancePoints derives the bilinear idealisation of the capacity
// curve: yield point (equal-energy), ultimate point at peak base shear
// and the ductility ratio
func performancePoints(po *PushoverResults) {
	n := len(po.BaseShear)
	if n == 0 || po.Disp[0] == 0 {
		return
	}

	// ultimate point: peak base shear
	iu := 0
	for i := 1; i < n; i++ {
		if po.BaseShear[i] > po.BaseShear[iu] {
			iu = i
		}
	}
	po.UltimateV = po.BaseShear[iu]
	po.UltimateDisp = po.Disp[iu]
	if po.UltimateV == 0 {
		return
	}

	// energy under the curve up to the ultimate point
	var energy float64
	prevD, prevV := 0.0, 0.0
	for i := 0; i <= iu; i++ {
		energy += 0.5 * (prevV + po.BaseShear[i]) * (po.Disp[i] - prevD)
		prevD, prevV = po.Disp[i], po.BaseShear[i]
	}

	// equal-energy bilinear idealisation with plateau at UltimateV
	dy := 2.0 * (po.UltimateV*po.UltimateDisp - energy) / po.UltimateV
	if dy <= 0 || dy > po.UltimateDisp {
		dy = po.UltimateDisp
	}
	po.YieldDisp = dy
	po.YieldShear = po.UltimateV
	po.Ductility = po.UltimateDisp / dy
	return
}
