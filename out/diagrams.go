// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out derives member internal force diagrams (axial, shear and
// bending moment along each frame member) from a solved displacement
// state
package out

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/Latif080790/strukturfem/ele"
)

// BeamDiagram holds the internal forces of one frame member sampled at
// equally spaced stations. Shears act along the local transverse axes;
// V1 pairs with the moment M2 (bending about axis 2) and V2 with M1.
type BeamDiagram struct {
	ElemId int       // element identifier
	X      []float64 // station positions, 0 to L
	N      []float64 // axial force (tension positive)
	V1     []float64 // shear along local axis 1
	V2     []float64 // shear along local axis 2
	M1     []float64 // bending moment about local axis 1
	M2     []float64 // bending moment about local axis 2
}

// NewBeamDiagram samples the internal forces of a member at nsta
// stations, given the global solution vector. Distributed loads are
// evaluated at the given time. Defective members yield nil.
func NewBeamDiagram(e *ele.Frame, u []float64, nsta int, time float64) *BeamDiagram {
	if e == nil || e.Defective {
		return nil
	}
	if nsta < 2 {
		chk.Panic("beam diagram needs at least 2 stations; got %d", nsta)
	}

	fl := e.EndForces(u)
	q1, q2 := e.DistLoads(time)

	o := &BeamDiagram{
		ElemId: e.Cell.Id,
		X:      make([]float64, nsta),
		N:      make([]float64, nsta),
		V1:     make([]float64, nsta),
		V2:     make([]float64, nsta),
		M1:     make([]float64, nsta),
		M2:     make([]float64, nsta),
	}
	for i := 0; i < nsta; i++ {
		x := e.L * float64(i) / float64(nsta-1)
		o.X[i] = x

		// section equilibrium of the segment [0,x] under the end-0
		// nodal forces and the distributed load
		o.N[i] = -fl[0]
		o.V1[i] = -(fl[1] + q1*x)
		o.V2[i] = -(fl[2] + q2*x)
		o.M2[i] = fl[5] - fl[1]*x - q1*x*x/2.0
		o.M1[i] = fl[4] + fl[2]*x + q2*x*x/2.0
	}
	return o
}

// MaxAbsM returns the largest absolute bending moment over all
// stations and both bending planes
func (o *BeamDiagram) MaxAbsM() (max float64) {
	for i := range o.X {
		if a := math.Abs(o.M1[i]); a > max {
			max = a
		}
		if a := math.Abs(o.M2[i]); a > max {
			max = a
		}
	}
	return
}

// MaxAbsV returns the largest absolute shear over all stations and
// both transverse directions
func (o *BeamDiagram) MaxAbsV() (max float64) {
	for i := range o.X {
		if a := math.Abs(o.V1[i]); a > max {
			max = a
		}
		if a := math.Abs(o.V2[i]); a > max {
			max = a
		}
	}
	return
}
