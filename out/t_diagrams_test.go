// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/Latif080790/strukturfem/ele"
	"github.com/Latif080790/strukturfem/inp"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_diag01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diag01. cantilever internal force diagrams")

	mat := &inp.Material{Name: "steel", E: 200e9, Nu: 0.3, Rho: 7850}
	sec := &inp.Section{Name: "sq10", Type: "rectangle", Wid: 0.1, Hei: 0.1}
	sec.Derive()
	na := &inp.Node{Id: 0, C: []float64{0, 0, 0}}
	nb := &inp.Node{Id: 1, C: []float64{3, 0, 0}}
	cell := &inp.Element{Id: 0, Vids: []int{0, 1}}
	e := ele.NewFrame(cell, na, nb, mat, sec, 0, 1)

	// displacement state of a cantilever with a vertical tip load P.
	// the member lies along x, so global z is local axis 1
	p, l := 1000.0, e.L
	EI := mat.E * sec.I22
	u := make([]float64, 12)
	u[8] = p * l * l * l / (3.0 * EI)  // tip deflection along z
	u[10] = -p * l * l / (2.0 * EI)    // tip rotation about y

	d := NewBeamDiagram(e, u, 11, 0)
	if d == nil {
		tst.Errorf("diagram must not be nil")
		return
	}
	chk.IntAssert(d.ElemId, 0)
	chk.IntAssert(len(d.X), 11)
	chk.Scalar(tst, "X first", 1e-15, d.X[0], 0)
	chk.Scalar(tst, "X last", 1e-15, d.X[10], l)

	// constant shear, linear moment from -P·L at the base to 0 at the tip
	for i, x := range d.X {
		chk.Scalar(tst, io.Sf("V1 @ %g", x), 1e-6, d.V1[i], p)
		chk.Scalar(tst, io.Sf("M2 @ %g", x), 1e-6*p*l, d.M2[i], -p*(l-x))
		chk.Scalar(tst, io.Sf("N @ %g", x), 1e-6, d.N[i], 0)
	}
	chk.Scalar(tst, "max |M|", 1e-6*p*l, d.MaxAbsM(), p*l)
	chk.Scalar(tst, "max |V|", 1e-6, d.MaxAbsV(), p)
}

func Test_diag02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diag02. axial force diagram and degenerate input")

	mat := &inp.Material{Name: "steel", E: 200e9, Nu: 0.3, Rho: 7850}
	sec := &inp.Section{Name: "sq10", Type: "rectangle", Wid: 0.1, Hei: 0.1}
	sec.Derive()
	na := &inp.Node{Id: 0, C: []float64{0, 0, 0}}
	nb := &inp.Node{Id: 1, C: []float64{2, 0, 0}}
	cell := &inp.Element{Id: 3, Vids: []int{0, 1}}
	e := ele.NewFrame(cell, na, nb, mat, sec, 0, 1)

	// pure elongation: constant tension throughout
	u := make([]float64, 12)
	u[6] = 1e-4
	n := mat.E * sec.A * 1e-4 / e.L
	d := NewBeamDiagram(e, u, 5, 0)
	for i := range d.X {
		chk.Scalar(tst, io.Sf("N @ station %d", i), 1e-6, d.N[i], n)
	}

	// zero-length member yields no diagram
	bad := ele.NewFrame(&inp.Element{Id: 4, Vids: []int{0, 0}}, na, na, mat, sec, 0, 0)
	if NewBeamDiagram(bad, u, 5, 0) != nil {
		tst.Errorf("defective member must yield a nil diagram")
	}
}
