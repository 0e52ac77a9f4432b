// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/io"

	"github.com/Latif080790/strukturfem/ele"
	"github.com/Latif080790/strukturfem/spm"
)

// EssentialBcs records the constrained (supported) degrees of freedom
// of a domain and enforces them on an assembled system by row/column
// elimination. Must run after assembly and before solving.
type EssentialBcs struct {
	Eqs       []int        // constrained equation numbers, sorted
	IsEq      map[int]bool // membership
	VertNodes []int        // indices of nodes restrained vertically (uz); used for base shear
	Warnings  []string     // loads discarded during zero-stiffness deactivation
	warned    map[int]bool // equations already reported
}

// NewEssentialBcs collects the fixed DOFs of all nodes in the domain
func NewEssentialBcs(d *Domain) (o *EssentialBcs) {
	o = &EssentialBcs{IsEq: make(map[int]bool), warned: make(map[int]bool)}
	for idx, n := range d.Nodes {
		for r := 0; r < ele.Ndof; r++ {
			if n.Fixed(r) {
				eq := idx*ele.Ndof + r
				o.Eqs = append(o.Eqs, eq)
				o.IsEq[eq] = true
			}
		}
		if n.Fixed(2) { // vertically restrained node
			o.VertNodes = append(o.VertNodes, idx)
		}
	}
	sort.Ints(o.Eqs)
	return
}

// Apply enforces zero displacement at every constrained DOF: the whole
// row and column are cleared, the diagonal is set to one, and the
// load-vector entry is zeroed so no off-diagonal coupling can drive
// the fixed DOF. Applying twice yields the same system (idempotent).
func (o *EssentialBcs) Apply(K *spm.Matrix, F []float64) {
	o.ApplyPrescribed(K, F, nil)
}

// ApplyPrescribed enforces the constrained DOFs together with a set of
// prescribed nonzero displacements (equation => value), as used by
// displacement-controlled analyses. The coupling of each prescribed
// DOF is moved to the right-hand side before elimination.
func (o *EssentialBcs) ApplyPrescribed(K *spm.Matrix, F []float64, presc map[int]float64) {

	// move prescribed-displacement coupling to the right-hand side
	if len(presc) > 0 {
		K.Each(func(i, j int, v float64) {
			d, ok := presc[j]
			if !ok || i == j {
				return
			}
			if o.IsEq[i] {
				return
			}
			if _, self := presc[i]; self {
				return
			}
			F[i] -= v * d
		})
	}

	for _, eq := range o.Eqs {
		K.ZeroRowCol(eq)
		K.Set(eq, eq, 1)
		F[eq] = 0
	}
	for eq, d := range presc {
		K.ZeroRowCol(eq)
		K.Set(eq, eq, 1)
		F[eq] = d
	}

	// DOFs with no stiffness at all (e.g. rotations at a released end
	// with no other member attached) are deactivated so the system
	// stays nonsingular. A load applied there cannot be carried; it is
	// dropped with a warning
	present := make(map[int]bool)
	K.Each(func(i, j int, v float64) { present[i] = true })
	m, _ := K.Dims()
	for eq := 0; eq < m; eq++ {
		if !present[eq] {
			if F[eq] != 0 && !o.warned[eq] {
				o.warned[eq] = true
				node, dof := eq/ele.Ndof, eq%ele.Ndof
				o.Warnings = append(o.Warnings, io.Sf("load %g at node %d dof %d is discarded: the DOF has no stiffness", F[eq], node, dof))
			}
			K.Set(eq, eq, 1)
			F[eq] = 0
		}
	}
}

// Reactions computes the support reaction vector R = K0·u − Fext where
// K0 is the stiffness matrix before boundary condition elimination
func Reactions(K0 *spm.Matrix, u, Fext []float64) (R []float64) {
	R = make([]float64, len(u))
	K0.MulVec(R, u)
	for i := range R {
		R[i] -= Fext[i]
	}
	return
}
