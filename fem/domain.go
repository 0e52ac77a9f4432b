// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the direct stiffness engine: domain
// resolution, global assembly, essential boundary conditions, load
// vectors, the linear static pipeline and the advanced analyses
// (time-history, pushover, buckling)
package fem

import (
	"github.com/cpmech/gosl/io"

	"github.com/Latif080790/strukturfem/ele"
	"github.com/Latif080790/strukturfem/inp"
)

// Domain holds the resolved model: node ordering, elements with
// assembly maps, and the DOF count. Building a domain never mutates
// the input structure and never fails: model defects degrade to
// warnings and skipped or defaulted contributions.
type Domain struct {
	Str      *inp.Structure3D
	Nodes    []*inp.Node
	NodeIdx  map[int]int // node id => index in Nodes
	Elems    []*ele.Frame
	Ny       int // total number of degrees of freedom (6 per node)
	Warnings []string
}

// NewDomain resolves a structure into a computational domain
func NewDomain(st *inp.Structure3D) (o *Domain) {

	o = &Domain{Str: st, NodeIdx: make(map[int]int)}
	o.Warnings = append(o.Warnings, st.Check()...)

	// node ordering
	for _, n := range st.Nodes {
		if _, ok := o.NodeIdx[n.Id]; ok {
			continue // duplicate already reported by Check
		}
		o.NodeIdx[n.Id] = len(o.Nodes)
		o.Nodes = append(o.Nodes, n)
	}
	o.Ny = ele.Ndof * len(o.Nodes)

	// elements
	for _, c := range st.Elements {
		if len(c.Vids) != 2 {
			continue
		}
		ia, oka := o.NodeIdx[c.Vids[0]]
		ib, okb := o.NodeIdx[c.Vids[1]]
		if !oka || !okb {
			continue // dangling reference: skipped contribution
		}
		na, nb := o.Nodes[ia], o.Nodes[ib]
		if len(na.C) < 3 || len(nb.C) < 3 {
			continue
		}

		mat := st.GetMaterial(c.Mat)
		if mat == nil {
			mat = DefaultMaterial()
			o.Warnings = append(o.Warnings, io.Sf("element %d: assuming default material", c.Id))
		}
		sec := st.GetSection(c.Sec)
		if sec == nil {
			sec = DefaultSection()
			o.Warnings = append(o.Warnings, io.Sf("element %d: assuming default cross-section", c.Id))
		}

		f := ele.NewFrame(c, na, nb, mat, sec, ia, ib)
		if f.Defective {
			o.Warnings = append(o.Warnings, io.Sf("element %d has zero length: contribution is zero", c.Id))
		}
		o.Elems = append(o.Elems, f)
	}
	return
}

// Eq returns the global equation number of local dof (0..5) at the
// node with the given id; -1 when the node is absent
func (o *Domain) Eq(nodeId, dof int) int {
	idx, ok := o.NodeIdx[nodeId]
	if !ok {
		return -1
	}
	return idx*ele.Ndof + dof
}

// DefaultMaterial returns the material assumed for elements whose
// material reference cannot be resolved (structural steel, SI units)
func DefaultMaterial() *inp.Material {
	return &inp.Material{Name: "default", E: 200e9, Nu: 0.3, Rho: 7850, Fy: 250e6, Fu: 400e6}
}

// DefaultSection returns the cross-section assumed for elements whose
// section reference cannot be resolved
func DefaultSection() *inp.Section {
	s := &inp.Section{Name: "default", Type: "rectangle", Wid: 0.3, Hei: 0.3}
	s.Derive()
	return s
}
