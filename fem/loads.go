// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/Latif080790/strukturfem/ele"
	"github.com/Latif080790/strukturfem/inp"
	"github.com/Latif080790/strukturfem/spm"
)

// BuildLoadVector converts the structure's point loads, directly
// applied nodal forces and element distributed loads (evaluated at the
// given time) into the global load vector. Loads hitting the same DOF
// accumulate.
func (o *Domain) BuildLoadVector(time float64) (F []float64) {
	Fv := spm.NewVector(o.Ny)

	// nodal point loads
	for _, l := range o.Str.Loads {
		idx, ok := o.NodeIdx[l.Node]
		if !ok {
			continue // dangling reference: skipped contribution
		}
		d := unit3(l.Dir)
		if d == nil {
			continue
		}
		for r := 0; r < 3; r++ {
			Fv.Accum(idx*ele.Ndof+r, l.Mag*d[r])
		}
	}

	// directly applied nodal forces/moments
	for idx, n := range o.Nodes {
		for r := 0; r < ele.Ndof && r < len(n.F); r++ {
			Fv.Accum(idx*ele.Ndof+r, n.F[r])
		}
	}

	// equivalent nodal forces of distributed member loads
	for _, e := range o.Elems {
		fx := e.DistLoadVector(time)
		if fx == nil {
			continue
		}
		for i, I := range e.Umap {
			Fv.Accum(I, fx[i])
		}
	}
	return Fv.ToDense()
}

// AddHistoryLoads accumulates the time-varying nodal loads interpolated
// at time t into the dense load vector F
func (o *Domain) AddHistoryLoads(F []float64, hists []inp.NodalHistory, t float64) {
	for i := range hists {
		h := &hists[i]
		idx, ok := o.NodeIdx[h.Node]
		if !ok {
			continue
		}
		d := unit3(h.Dir)
		if d == nil {
			continue
		}
		v := h.Hist.At(t)
		for r := 0; r < 3; r++ {
			F[idx*ele.Ndof+r] += v * d[r]
		}
	}
}

// unit3 normalises a 3-component direction vector; nil for degenerate
// or incomplete input
func unit3(dir []float64) []float64 {
	if len(dir) < 3 {
		return nil
	}
	n := spm.VecNorm(dir[:3])
	if n == 0 {
		return nil
	}
	return []float64{dir[0] / n, dir[1] / n, dir[2] / n}
}
