// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import "github.com/cpmech/gosl/chk"

// LoadHistory holds a load magnitude sampled at discrete times.
// Between samples the value is linearly interpolated; outside the
// sampled range the nearest sample is held constant. An empty history
// is identically zero.
type LoadHistory struct {
	Time  []float64 `json:"time"`  // sample times; strictly increasing
	Value []float64 `json:"value"` // sample values; same length as Time
}

// Check verifies the sample arrays
func (o *LoadHistory) Check() (err error) {
	if len(o.Time) != len(o.Value) {
		return chk.Err("load history has %d times but %d values", len(o.Time), len(o.Value))
	}
	for i := 1; i < len(o.Time); i++ {
		if o.Time[i] <= o.Time[i-1] {
			return chk.Err("load history times must be strictly increasing (t[%d]=%g, t[%d]=%g)",
				i-1, o.Time[i-1], i, o.Time[i])
		}
	}
	return
}

// At returns the interpolated value at time t
func (o *LoadHistory) At(t float64) float64 {
	n := len(o.Time)
	if n == 0 {
		return 0
	}
	if t <= o.Time[0] {
		return o.Value[0]
	}
	if t >= o.Time[n-1] {
		return o.Value[n-1]
	}
	// locate bracketing samples by bisection
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if o.Time[mid] <= t {
			lo = mid
		} else {
			hi = mid
		}
	}
	w := (t - o.Time[lo]) / (o.Time[hi] - o.Time[lo])
	return o.Value[lo]*(1.0-w) + o.Value[hi]*w
}

// NodalHistory attaches a load history to one translational DOF of a
// node, with a fixed direction vector scaled by the history value
type NodalHistory struct {
	Node int         `json:"node"` // node id
	Dir  []float64   `json:"dir"`  // [3] direction vector
	Hist LoadHistory `json:"hist"` // magnitude over time
}
