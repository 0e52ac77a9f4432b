// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import "github.com/cpmech/gosl/chk"

// OptimizationSettings selects the linear solver and its tolerances,
// plus resource options. The engine never mutates settings.
type OptimizationSettings struct {
	Solver  string  `json:"solver"`  // "cg" or "lu"
	Tol     float64 `json:"tol"`     // relative residual tolerance (cg) / pivot tolerance (lu)
	MaxIt   int     `json:"maxit"`   // maximum number of iterations (cg)
	UsePool bool    `json:"usepool"` // reuse pooled matrices/vectors between element computations
	Profile bool    `json:"profile"` // collect memory/iteration diagnostics
	Verbose bool    `json:"verbose"` // print progress messages
}

// DefaultSettings returns settings suitable for most models
func DefaultSettings() *OptimizationSettings {
	return &OptimizationSettings{
		Solver: "lu",
		Tol:    1e-10,
		MaxIt:  10000,
	}
}

// Validate checks settings at call time. Out-of-range values are
// rejected with a descriptive error, never silently clamped.
func (o *OptimizationSettings) Validate() (err error) {
	switch o.Solver {
	case "cg", "lu":
	default:
		return chk.Err("solver %q is unavailable; options are \"cg\" and \"lu\"", o.Solver)
	}
	if o.Tol <= 0 || o.Tol >= 1 {
		return chk.Err("tolerance must be within (0,1); %g is invalid", o.Tol)
	}
	if o.MaxIt < 1 {
		return chk.Err("maximum number of iterations must be at least 1; %d is invalid", o.MaxIt)
	}
	return
}

// TimeHistoryConfig holds the parameters of one time-history analysis
type TimeHistoryConfig struct {
	Method       string         `json:"method"`       // "newmark", "wilson" or "central-difference"
	Dt           float64        `json:"dt"`           // time increment
	Duration     float64        `json:"duration"`     // total duration
	DampingRatio float64        `json:"dampingratio"` // target modal damping ratio ζ
	DampFreq1    float64        `json:"dampfreq1"`    // first reference frequency [rad/s] for Rayleigh damping
	DampFreq2    float64        `json:"dampfreq2"`    // second reference frequency [rad/s]
	LumpedMass   bool           `json:"lumpedmass"`   // use lumped instead of consistent mass
	Histories    []NodalHistory `json:"histories"`    // time-varying nodal loads; empty => zero response
}

// Validate checks the time-history parameters. Only the Newmark-β
// average-acceleration method is implemented; the remaining method
// names are recognised but rejected here.
func (o *TimeHistoryConfig) Validate() (err error) {
	switch o.Method {
	case "newmark":
	case "wilson", "central-difference":
		return chk.Err("integration method %q is not implemented; use \"newmark\"", o.Method)
	default:
		return chk.Err("integration method %q is unknown", o.Method)
	}
	if o.Dt <= 0 {
		return chk.Err("time increment must be positive; %g is invalid", o.Dt)
	}
	if o.Duration < o.Dt {
		return chk.Err("duration (%g) must be at least one time increment (%g)", o.Duration, o.Dt)
	}
	if o.DampingRatio < 0 || o.DampingRatio >= 1 {
		return chk.Err("damping ratio must be within [0,1); %g is invalid", o.DampingRatio)
	}
	if o.DampingRatio > 0 {
		if o.DampFreq1 <= 0 || o.DampFreq2 <= o.DampFreq1 {
			return chk.Err("Rayleigh reference frequencies must satisfy 0 < f1 < f2 (got %g, %g)",
				o.DampFreq1, o.DampFreq2)
		}
	}
	for i := range o.Histories {
		if err = o.Histories[i].Hist.Check(); err != nil {
			return
		}
	}
	return
}

// PushoverConfig holds the parameters of one displacement-controlled
// pushover analysis
type PushoverConfig struct {
	ControlNode     int     `json:"controlnode"`     // node id whose displacement is controlled
	ControlDir      string  `json:"controldir"`      // "x", "y" or "z"
	MaxDisplacement float64 `json:"maxdisplacement"` // target displacement at the control DOF
	IncrementSteps  int     `json:"incrementsteps"`  // number of displacement increments
	RotationLimit   float64 `json:"rotationlimit"`   // plastic-hinge end-rotation limit [rad]
	StrainLimit     float64 `json:"strainlimit"`     // material yield strain limit
}

// Validate checks the pushover parameters
func (o *PushoverConfig) Validate() (err error) {
	switch o.ControlDir {
	case "x", "y", "z":
	default:
		return chk.Err("control direction %q is invalid; options are \"x\", \"y\" and \"z\"", o.ControlDir)
	}
	if o.MaxDisplacement <= 0 {
		return chk.Err("maximum displacement must be positive; %g is invalid", o.MaxDisplacement)
	}
	if o.IncrementSteps < 1 {
		return chk.Err("number of increment steps must be at least 1; %d is invalid", o.IncrementSteps)
	}
	if o.RotationLimit < 0 {
		return chk.Err("rotation limit must be non-negative; %g is invalid", o.RotationLimit)
	}
	if o.StrainLimit < 0 {
		return chk.Err("strain limit must be non-negative; %g is invalid", o.StrainLimit)
	}
	return
}

// ControlDof returns the local DOF offset of the control direction
func (o *PushoverConfig) ControlDof() int {
	switch o.ControlDir {
	case "y":
		return 1
	case "z":
		return 2
	}
	return 0
}

// BucklingConfig holds the parameters of one linear buckling analysis.
// The reference load pattern is the structure's applied loads.
type BucklingConfig struct {
	NumModes int     `json:"nummodes"` // number of buckling modes to return
	Tol      float64 `json:"tol"`      // solver tolerance for the static pre-analysis
	MaxIt    int     `json:"maxit"`    // iteration limit for the static pre-analysis
}

// Validate checks the buckling parameters
func (o *BucklingConfig) Validate() (err error) {
	if o.NumModes < 1 {
		return chk.Err("number of modes must be at least 1; %d is invalid", o.NumModes)
	}
	if o.Tol <= 0 || o.Tol >= 1 {
		return chk.Err("tolerance must be within (0,1); %g is invalid", o.Tol)
	}
	if o.MaxIt < 1 {
		return chk.Err("maximum number of iterations must be at least 1; %d is invalid", o.MaxIt)
	}
	return
}
