// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/google/uuid"
)

// Result holds the outcome of one linear static analysis. Display and
// report components outside this engine consume it.
type Result struct {

	// validity and diagnostics
	RunId    string   // unique identifier of this analysis run
	Ok       bool     // solution is valid
	Errors   []string // fatal problems; non-empty when Ok is false
	Warnings []string // model defects and other non-fatal notices

	// per-node response; indexed like Domain.Nodes
	NodeIds []int       // node id of each row
	Disp    [][]float64 // [nnodes][6] displacements and rotations
	React   []float64   // full-size reaction vector (nonzero at supports)

	// per-element response; indexed like Domain.Elems
	ElemIds    []int       // element id of each row
	ElemForces [][]float64 // [nelems][12] local end forces
	ElemStress []float64   // [nelems] peak combined normal stress

	// summary maxima
	MaxDisp   float64 // largest absolute translation
	MaxStress float64 // largest element stress

	// solver diagnostics
	Solver LinSolReport
}

// newResult allocates a result with a fresh run id
func newResult() *Result {
	return &Result{RunId: uuid.NewString()}
}

// fail marks the result invalid with the given error message
func (o *Result) fail(msg string) *Result {
	o.Ok = false
	o.Errors = append(o.Errors, msg)
	return o
}

// AdvancedResult wraps a base result with one analysis-specific block,
// tagged by AnalysisType ("time-history", "pushover" or "buckling")
type AdvancedResult struct {
	Result
	AnalysisType string
	TimeHistory  *TimeHistoryResults
	Pushover     *PushoverResults
	Buckling     *BucklingResults
}

// TimeHistoryResults holds the response of a Newmark-β time
// integration run
type TimeHistoryResults struct {
	Steps    int       // completed steps
	Time     []float64 // time of each completed step
	PeakDisp []float64 // largest absolute displacement per step
	MaxDisp  float64   // running maximum |u|
	MaxVel   float64   // running maximum |v|
	MaxAcc   float64   // running maximum |a|
	TMaxDisp float64   // time at which MaxDisp occurred
}

// HingeEvent records a new plastic hinge detected during pushover
type HingeEvent struct {
	Elem int     // element id
	End  int     // 0 or 1
	Step int     // increment at which the hinge formed
	Disp float64 // control displacement at formation
}

// PushoverResults holds a capacity curve and its derived performance
// points
type PushoverResults struct {
	State     string       // "Converged", "DidNotConverge" or "UltimateReached"
	Disp      []float64    // control displacement per completed step (monotonic)
	BaseShear []float64    // base shear per completed step
	Hinges    []HingeEvent // plastic hinges in order of formation

	// performance points (bilinear idealisation)
	YieldDisp    float64 // yield displacement
	YieldShear   float64 // yield base shear
	UltimateDisp float64 // displacement at peak base shear
	UltimateV    float64 // peak base shear
	Ductility    float64 // UltimateDisp / YieldDisp
}

// BucklingResults holds critical load multipliers and mode shapes
type BucklingResults struct {
	Factors      []float64   // critical load multipliers, ascending
	Modes        [][]float64 // [nmodes][Ny] mode shapes (zeros at fixed DOFs)
	RefLoadMag   float64     // magnitude of the reference load pattern
	CriticalLoad float64     // smallest critical buckling load
	SafetyFactor float64     // CriticalLoad / RefLoadMag
}
