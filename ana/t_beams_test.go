// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_ana01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ana01. closed-form beam and column solutions")

	b := NewSimpleBeam(4, 200e9, 8.333333333333333e-6)
	chk.Scalar(tst, "δ(mid)", 1e-12, b.DeflectionCentralLoad(-1000), -1000.0*64.0/(48.0*200e9*b.I))
	chk.Scalar(tst, "M(mid)", 1e-12, b.MomentCentralLoad(1000), 1000.0)

	c := &Cantilever{L: 3, E: 200e9, I: 8.333333333333333e-6}
	chk.Scalar(tst, "δ(tip)", 1e-12, c.TipDeflection(1000), 1000.0*27.0/(3.0*200e9*c.I))
	chk.Scalar(tst, "δ(axial)", 1e-12, c.TipDeflectionAxial(1000, 0.01), 1000.0*3.0/(200e9*0.01))

	col := &EulerColumn{L: 4, E: 200e9, I: 8.333333333333333e-6, K: 1}
	chk.Scalar(tst, "Pcr", 1e-6, col.CriticalLoad(), math.Pi*math.Pi*200e9*col.I/16.0)

	// fixed-free column buckles at a quarter of the pinned-pinned load
	colf := &EulerColumn{L: 4, E: 200e9, I: col.I, K: 2}
	chk.Scalar(tst, "Pcr(fixed-free)", 1e-6, colf.CriticalLoad(), col.CriticalLoad()/4.0)
}

func Test_ana02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ana02. single-degree-of-freedom oscillator")

	o := &SdofOscillator{M: 100, K: 25e4}
	chk.Scalar(tst, "ω", 1e-12, o.NaturalFreq(), 50.0)
	chk.Scalar(tst, "T", 1e-12, o.Period(), 2.0*math.Pi/50.0)
	chk.Scalar(tst, "δ(static)", 1e-12, o.StaticDisp(500), 2e-3)
}
