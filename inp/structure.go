// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp defines the structural model (nodes, sections, materials,
// elements, loads) and the configuration objects accepted by the engine
package inp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Node holds one structural joint: coordinates, support flags and
// directly applied nodal forces/moments. Nodes are never mutated by
// the engine during an analysis run.
//
//  DOF order @ node:  0:ux  1:uy  2:uz  3:rx  4:ry  5:rz
type Node struct {
	Id  int       `json:"id"`            // identifier; must be unique within one structure
	C   []float64 `json:"c"`             // [3] coordinates
	Fix []bool    `json:"fix,omitempty"` // [6] support flags (true => fixed)
	F   []float64 `json:"f,omitempty"`   // [6] applied nodal forces and moments
}

// Fixed returns the support flag of local dof index i (0 ≤ i ≤ 5)
func (o *Node) Fixed(i int) bool {
	if o.Fix == nil {
		return false
	}
	if i < 0 || i >= len(o.Fix) {
		return false
	}
	return o.Fix[i]
}

// Material holds linear elastic material data plus the strength values
// used by nonlinear yield checks
type Material struct {
	Name string  `json:"name"` // name of material
	E    float64 `json:"e"`    // Young's modulus
	Nu   float64 `json:"nu"`   // Poisson's ratio
	Rho  float64 `json:"rho"`  // density
	Fy   float64 `json:"fy"`   // yield strength
	Fu   float64 `json:"fu"`   // ultimate strength
}

// G returns the shear modulus derived from E and ν
func (o *Material) G() float64 {
	return o.E / (2.0 * (1.0 + o.Nu))
}

// Section holds cross-section data. Properties may be given directly
// (Type == "generic") or derived from the geometry of rectangular,
// circular or I-shaped sections.
//
//   ^ 1       +-------+                        tw
//   |         |       |                    -->| |<--
//   |         |       |                ___    | |     ___
//   +----> 2  |       | h = Hei      Tf |   ########   |
//             |       |                ---  ########   |
//             |       |                        ##      | h = Hei
//             +-------+                ---  ########   |
//              b = Wid               Tf_|_  ########  ---
//                                            b = Wid
type Section struct {

	// input
	Name string  `json:"name"`          // name of section
	Type string  `json:"type"`          // "rectangle", "circle", "I-beam" or "generic"
	Wid  float64 `json:"wid,omitempty"` // width (b) if not circular
	Hei  float64 `json:"hei,omitempty"` // height (h) if not circular
	Tf   float64 `json:"tf,omitempty"`  // flange thickness if I-beam
	Tw   float64 `json:"tw,omitempty"`  // web thickness if I-beam
	R    float64 `json:"r,omitempty"`   // radius if circular

	// properties; derived by Derive, or given directly if Type == "generic"
	A   float64 `json:"a,omitempty"`   // cross-sectional area
	I22 float64 `json:"i22,omitempty"` // major moment of inertia
	I11 float64 `json:"i11,omitempty"` // minor moment of inertia
	Jtt float64 `json:"jtt,omitempty"` // torsional constant
}

// Derive computes A, I22, I11 and Jtt from the section geometry.
// Generic sections keep the given properties untouched.
func (o *Section) Derive() (err error) {
	switch o.Type {

	case "rectangle":
		b, h := o.Wid, o.Hei
		if b <= 0 || h <= 0 {
			return chk.Err("rectangle section %q must have positive width and height", o.Name)
		}
		b3 := b * b * b
		h3 := h * h * h
		o.A = b * h
		o.I22 = b * h3 / 12.0
		o.I11 = b3 * h / 12.0
		if b == h {
			o.Jtt = 9.0 * b3 * b / 64.0
		} else {
			if b > h {
				b, h = h, b
				b3, h3 = h3, b3
			}
			o.Jtt = h * b3 * (1.0/3.0 - 0.21*(b/h)*(1.0-b*b3/(12.0*h*h3))) // approximate
		}

	case "circle":
		if o.R <= 0 {
			return chk.Err("circle section %q must have positive radius", o.Name)
		}
		r2 := o.R * o.R
		o.A = math.Pi * r2
		o.I22 = math.Pi * r2 * r2 / 4.0
		o.I11 = o.I22
		o.Jtt = o.I22 + o.I11

	case "I-beam":
		b, h, tf, tw := o.Wid, o.Hei, o.Tf, o.Tw
		if b <= 0 || h <= 0 || tf <= 0 || tw <= 0 {
			return chk.Err("I-beam section %q must have positive wid, hei, tf and tw", o.Name)
		}
		b3 := b * b * b
		h3 := h * h * h
		tf3 := tf * tf * tf
		tw3 := tw * tw * tw
		l := h - 2.0*tf
		l3 := l * l * l
		o.A = b*h - l*(b-tw)
		o.I22 = b*h3/12.0 - (b-tw)*l3/12.0
		o.I11 = l*tw3/12.0 + tf*b3/6.0
		o.Jtt = (2.0*b*tf3 + l*tw3) / 3.0

	case "generic", "":
		if o.A <= 0 || o.I22 <= 0 {
			return chk.Err("generic section %q must have positive A and I22", o.Name)
		}

	default:
		return chk.Err("section type %q is unavailable", o.Type)
	}
	return
}

// Smax returns the extreme fibre distance for bending about the major
// axis; used by stress recovery
func (o *Section) Smax() float64 {
	switch o.Type {
	case "rectangle", "I-beam":
		return o.Hei / 2.0
	case "circle":
		return o.R
	}
	if o.A > 0 {
		return math.Sqrt(o.A) / 2.0 // generic: assume compact square-ish shape
	}
	return 0
}

// Element represents one 3D frame member connecting two nodes
type Element struct {
	Id   int    `json:"id"`             // identifier
	Type string `json:"type"`           // "beam", "column" or "brace"; informational tag
	Vids []int  `json:"vids"`           // [2] node ids (start, end)
	Mat  string `json:"mat"`            // material name
	Sec  string `json:"sec"`            // section name
	Pins []bool `json:"pins,omitempty"` // [2] moment release (hinge) at start/end

	// distributed loads in local directions 1 and 2 (uniform), with an
	// optional time-scaling function (constant == 1 when nil)
	Q1   float64  `json:"q1,omitempty"`
	Q2   float64  `json:"q2,omitempty"`
	Qfcn dbf.T `json:"-"`
}

// Pinned tells whether end m (0 or 1) has a moment release
func (o *Element) Pinned(m int) bool {
	if o.Pins == nil || m < 0 || m >= len(o.Pins) {
		return false
	}
	return o.Pins[m]
}

// PointLoad holds one nodal point load: a direction vector and a
// magnitude. Dir needs not be normalised; it is scaled internally.
type PointLoad struct {
	Node int       `json:"node"` // node id
	Dir  []float64 `json:"dir"`  // [3] direction vector
	Mag  float64   `json:"mag"`  // magnitude
}

// Structure3D aggregates the full structural model. The engine treats
// a Structure3D as read-only input.
type Structure3D struct {
	Nodes     []*Node      `json:"nodes"`
	Elements  []*Element   `json:"elements"`
	Loads     []*PointLoad `json:"loads,omitempty"`
	Materials []*Material  `json:"materials"`
	Sections  []*Section   `json:"sections"`
}

// GetNode returns the node with the given id; nil if absent
func (o *Structure3D) GetNode(id int) *Node {
	for _, n := range o.Nodes {
		if n.Id == id {
			return n
		}
	}
	return nil
}

// GetMaterial returns the material with the given name; nil if absent
func (o *Structure3D) GetMaterial(name string) *Material {
	for _, m := range o.Materials {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// GetSection returns the section with the given name; nil if absent
func (o *Structure3D) GetSection(name string) *Section {
	for _, s := range o.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Ndof returns the total number of degrees of freedom (6 per node)
func (o *Structure3D) Ndof() int {
	return 6 * len(o.Nodes)
}

// Check inspects the model and returns a list of warnings describing
// non-fatal defects: dangling node references, zero-length elements,
// missing materials or sections. Defective elements are later skipped
// or completed with defaults by the domain; they never abort a run.
func (o *Structure3D) Check() (warnings []string) {
	seen := make(map[int]bool)
	for _, n := range o.Nodes {
		if seen[n.Id] {
			warnings = append(warnings, io.Sf("duplicate node id %d", n.Id))
		}
		seen[n.Id] = true
		if len(n.C) < 3 {
			warnings = append(warnings, io.Sf("node %d has incomplete coordinates", n.Id))
		}
	}
	for _, e := range o.Elements {
		if len(e.Vids) != 2 {
			warnings = append(warnings, io.Sf("element %d does not connect exactly two nodes", e.Id))
			continue
		}
		a := o.GetNode(e.Vids[0])
		b := o.GetNode(e.Vids[1])
		if a == nil || b == nil {
			warnings = append(warnings, io.Sf("element %d references missing node", e.Id))
			continue
		}
		if len(a.C) >= 3 && len(b.C) >= 3 {
			var sum float64
			for i := 0; i < 3; i++ {
				d := b.C[i] - a.C[i]
				sum += d * d
			}
			if math.Sqrt(sum) < ZeroLengthTol {
				warnings = append(warnings, io.Sf("element %d has (near) zero length", e.Id))
			}
		}
		if o.GetMaterial(e.Mat) == nil {
			warnings = append(warnings, io.Sf("element %d references missing material %q", e.Id, e.Mat))
		}
		if o.GetSection(e.Sec) == nil {
			warnings = append(warnings, io.Sf("element %d references missing section %q", e.Id, e.Sec))
		}
	}
	for _, l := range o.Loads {
		if o.GetNode(l.Node) == nil {
			warnings = append(warnings, io.Sf("load references missing node %d", l.Node))
		}
	}
	return
}

// ZeroLengthTol is the member length below which an element is treated
// as degenerate (zero stiffness contribution)
const ZeroLengthTol = 1e-10
