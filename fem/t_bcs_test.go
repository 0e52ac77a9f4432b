// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/Latif080790/strukturfem/inp"
)

func Test_bcs01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs01. assembled stiffness is symmetric before elimination")

	dom := NewDomain(ssBeam(4, 1000))
	K := dom.AssembleK(nil)
	if !K.IsSymmetric(1e-9) {
		tst.Errorf("global stiffness must be symmetric")
	}
	m, n := K.Dims()
	chk.IntAssert(m, dom.Ny)
	chk.IntAssert(n, dom.Ny)
}

func Test_bcs02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs02. elimination form and idempotence")

	dom := NewDomain(ssBeam(4, 1000))
	K := dom.AssembleK(nil)
	F := dom.BuildLoadVector(0)
	bcs := NewEssentialBcs(dom)
	bcs.Apply(K, F)

	for _, eq := range bcs.Eqs {
		chk.Scalar(tst, io.Sf("diag @ %d", eq), 1e-17, K.Get(eq, eq), 1)
		chk.Scalar(tst, io.Sf("F @ %d", eq), 1e-17, F[eq], 0)
		for k := 0; k < dom.Ny; k++ {
			if k == eq {
				continue
			}
			if K.Get(eq, k) != 0 || K.Get(k, eq) != 0 {
				tst.Errorf("row/column %d must be cleared", eq)
				return
			}
		}
	}

	// applying twice yields the same system
	K2 := K.Clone()
	F2 := make([]float64, len(F))
	copy(F2, F)
	bcs.Apply(K2, F2)
	chk.Matrix(tst, "K unchanged", 1e-17, K2.ToDense(), K.ToDense())
	chk.Vector(tst, "F unchanged", 1e-17, F2, F)
}

func Test_bcs03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs03. prescribed nonzero displacement is enforced exactly")

	dom := NewDomain(column3(3))
	K := dom.AssembleK(nil)
	F := make([]float64, dom.Ny)
	bcs := NewEssentialBcs(dom)

	ceq := dom.Eq(1, 1) // uy at the top node
	d := 0.004
	bcs.ApplyPrescribed(K, F, map[int]float64{ceq: d})
	chk.Scalar(tst, "F @ control", 1e-17, F[ceq], d)

	u, _, err := SolveLin(K, F, inp.DefaultSettings())
	if err != nil {
		tst.Errorf("solve failed: %v", err)
		return
	}
	chk.Scalar(tst, "u @ control", 1e-12, u[ceq], d)
	for _, eq := range bcs.Eqs {
		chk.Scalar(tst, io.Sf("u @ fixed %d", eq), 1e-12, u[eq], 0)
	}
}

func Test_bcs04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs04. mass, damping and reactions")

	dom := NewDomain(column3(3))

	// consistent mass is symmetric; lumped mass is diagonal
	M := dom.AssembleM(false, nil)
	if !M.IsSymmetric(1e-9) {
		tst.Errorf("consistent mass must be symmetric")
	}
	Ml := dom.AssembleM(true, nil)
	Ml.Each(func(i, j int, v float64) {
		if i != j {
			tst.Errorf("lumped mass must be diagonal (found M[%d][%d] = %g)", i, j, v)
		}
	})

	// Rayleigh coefficients: C = α·M + β·K
	ω1, ω2, ζ := 10.0, 60.0, 0.05
	α, β := RayleighCoefs(ζ, ω1, ω2)
	chk.Scalar(tst, "α", 1e-12, α, 2.0*ζ*ω1*ω2/(ω1+ω2))
	chk.Scalar(tst, "β", 1e-12, β, 2.0*ζ/(ω1+ω2))
	K := dom.AssembleK(nil)
	C := dom.AssembleC(M, K, α, β, nil)
	chk.Scalar(tst, "C[6][6]", 1e-9, C.Get(6, 6), α*M.Get(6, 6)+β*K.Get(6, 6))

	// zero damping ratio yields no damping at all
	α0, β0 := RayleighCoefs(0, ω1, ω2)
	chk.Scalar(tst, "α(ζ=0)", 1e-17, α0, 0)
	chk.Scalar(tst, "β(ζ=0)", 1e-17, β0, 0)

	// reactions balance a lateral load on the column
	st := column3(3)
	st.Loads = []*inp.PointLoad{{Node: 1, Dir: []float64{0, 1, 0}, Mag: 500}}
	res, err := LinearStatic(st, nil)
	if err != nil || !res.Ok {
		tst.Errorf("static run failed")
		return
	}
	chk.Scalar(tst, "base shear reaction", 1e-6, res.React[0*6+1], -500.0)
}

func Test_bcs05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs05. load on a stiffness-free DOF is dropped with a warning")

	// cantilever with a moment release at the tip: the tip bending
	// rotations end up with no stiffness at all and are deactivated.
	// a moment applied there cannot be carried by the model
	sec := &inp.Section{Name: "sq10", Type: "rectangle", Wid: 0.1, Hei: 0.1}
	sec.Derive()
	st := &inp.Structure3D{
		Nodes: []*inp.Node{
			{Id: 0, C: []float64{0, 0, 0}, Fix: []bool{true, true, true, true, true, true}},
			{Id: 1, C: []float64{2, 0, 0}, F: []float64{0, 0, -1000, 0, 50, 0}},
		},
		Elements: []*inp.Element{
			{Id: 0, Type: "beam", Vids: []int{0, 1}, Mat: "steel", Sec: "sq10", Pins: []bool{false, true}},
		},
		Materials: []*inp.Material{
			{Name: "steel", E: 200e9, Nu: 0.3, Rho: 7850, Fy: 250e6},
		},
		Sections: []*inp.Section{sec},
	}
	res, err := LinearStatic(st, nil)
	if err != nil {
		tst.Errorf("analysis failed: %v", err)
		return
	}
	if !res.Ok {
		tst.Errorf("result must be valid: %v", res.Errors)
		return
	}

	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "discarded") {
			found = true
		}
	}
	if !found {
		tst.Errorf("dropping the tip moment must be reported; got %v", res.Warnings)
	}

	// the vertical tip load is still carried (pinned-end stiffness
	// 3EI/L³ after condensation)
	EI := 200e9 * sec.I22
	l := 2.0
	correct := -1000.0 * l * l * l / (3.0 * EI)
	chk.Scalar(tst, "tip deflection", 1e-3*math.Abs(correct), res.Disp[1][2], correct)
}
