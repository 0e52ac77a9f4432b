// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/Latif080790/strukturfem/ana"
	"github.com/Latif080790/strukturfem/inp"
)

func Test_dyn01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dyn01. empty load history yields a valid all-zero response")

	cfg := &inp.TimeHistoryConfig{Method: "newmark", Dt: 0.01, Duration: 0.1}
	res, err := TimeHistory(context.Background(), column3(3), cfg, nil)
	if err != nil {
		tst.Errorf("analysis failed: %v", err)
		return
	}
	if !res.Ok {
		tst.Errorf("result must be valid: %v", res.Errors)
		return
	}
	th := res.TimeHistory
	chk.IntAssert(th.Steps, 10)
	chk.IntAssert(len(th.Time), 10)
	chk.Scalar(tst, "MaxDisp", 1e-17, th.MaxDisp, 0)
	chk.Scalar(tst, "MaxVel", 1e-17, th.MaxVel, 0)
	for i, pd := range th.PeakDisp {
		chk.Scalar(tst, io.Sf("PeakDisp[%d]", i), 1e-17, pd, 0)
	}
}

func Test_dyn02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dyn02. step load on a cantilever column: peak = 2x static")

	h := 3.0
	st := column3(h)
	sec := st.Sections[0]
	mat := st.Materials[0]

	// effective single-degree-of-freedom system: lateral tip stiffness
	// of the column with the lumped tip mass
	k := 3.0 * mat.E * sec.I22 / (h * h * h)
	m := mat.Rho * sec.A * h / 2.0
	sdof := &ana.SdofOscillator{M: m, K: k}
	p := 1000.0
	δ := sdof.StaticDisp(p)
	T := sdof.Period()
	io.Pforan("T = %v  δ(static) = %v\n", T, δ)

	cfg := &inp.TimeHistoryConfig{
		Method:     "newmark",
		Dt:         T / 80.0,
		Duration:   2.0 * T,
		LumpedMass: true,
		Histories: []inp.NodalHistory{{
			Node: 1,
			Dir:  []float64{0, 1, 0},
			Hist: inp.LoadHistory{Time: []float64{0, 1000}, Value: []float64{p, p}},
		}},
	}
	res, err := TimeHistory(context.Background(), st, cfg, nil)
	if err != nil {
		tst.Errorf("analysis failed: %v", err)
		return
	}
	if !res.Ok {
		tst.Errorf("result must be valid: %v", res.Errors)
		return
	}
	th := res.TimeHistory

	// undamped step response peaks at twice the static displacement,
	// half a period after load application
	chk.Scalar(tst, "peak displacement", 0.05*2.0*δ, th.MaxDisp, 2.0*δ)
	chk.Scalar(tst, "time of peak", 0.15*T, th.TMaxDisp, T/2.0)
	if th.MaxVel <= 0 || th.MaxAcc <= 0 {
		tst.Errorf("velocity and acceleration maxima must be positive")
	}

	// damping lowers the peak
	cfgd := *cfg
	cfgd.DampingRatio = 0.05
	ω := sdof.NaturalFreq()
	cfgd.DampFreq1, cfgd.DampFreq2 = ω, 3.0*ω
	resd, err := TimeHistory(context.Background(), st, &cfgd, nil)
	if err != nil || !resd.Ok {
		tst.Errorf("damped run failed")
		return
	}
	if resd.TimeHistory.MaxDisp >= th.MaxDisp {
		tst.Errorf("damping must lower the peak: %g >= %g", resd.TimeHistory.MaxDisp, th.MaxDisp)
	}
}

func Test_dyn03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dyn03. cancellation stops the run with a partial, invalid result")

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancelled before the first step

	cfg := &inp.TimeHistoryConfig{Method: "newmark", Dt: 0.01, Duration: 1}
	res, err := TimeHistory(ctx, column3(3), cfg, nil)
	if err != nil {
		tst.Errorf("cancellation is not a configuration error: %v", err)
		return
	}
	if res.Ok {
		tst.Errorf("cancelled run must be tagged invalid")
	}
	if len(res.Errors) == 0 {
		tst.Errorf("cancelled run must carry an error message")
	}
	chk.IntAssert(res.TimeHistory.Steps, 0)
}

func Test_dyn04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dyn04. unimplemented integration methods are rejected")

	for _, method := range []string{"wilson", "central-difference", "rk4"} {
		cfg := &inp.TimeHistoryConfig{Method: method, Dt: 0.01, Duration: 1}
		if _, err := TimeHistory(context.Background(), column3(3), cfg, nil); err == nil {
			tst.Errorf("method %q must be rejected", method)
		}
	}

	// invalid damping setup
	cfg := &inp.TimeHistoryConfig{Method: "newmark", Dt: 0.01, Duration: 1, DampingRatio: 0.05}
	if _, err := TimeHistory(context.Background(), column3(3), cfg, nil); err == nil {
		tst.Errorf("damping without reference frequencies must be rejected")
	}

	// duration shorter than one step
	cfg = &inp.TimeHistoryConfig{Method: "newmark", Dt: 0.1, Duration: 0.01}
	if _, err := TimeHistory(context.Background(), column3(3), cfg, nil); err == nil {
		tst.Errorf("sub-increment duration must be rejected")
	}
}
