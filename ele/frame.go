// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements the 3D Euler-Bernoulli frame element: local
// and global stiffness, consistent/lumped mass, geometric stiffness
// and internal force recovery
package ele

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/Latif080790/strukturfem/inp"
)

// Ndof is the number of degrees of freedom per node: three
// translations and three rotations
const Ndof = 6

// Nu is the total number of element unknowns (two nodes)
const Nu = 2 * Ndof

// Frame represents one 3D frame member with 12 degrees of freedom
//
//             y1
//              ^
//              |      E, A       I22 (major)
//        (0)===+================ I11 (minor)  ===(1)----> y0
//             /                  Jtt
//           y2
//
// Local DOF order: 0:u0 1:u1 2:u2 3:r0 4:r1 5:r2 @ node 0, then node 1.
type Frame struct {

	// input
	Cell *inp.Element  // element definition
	Na   *inp.Node     // start node
	Nb   *inp.Node     // end node
	Mat  *inp.Material // resolved material
	Sec  *inp.Section  // resolved section

	// derived
	L         float64 // member length
	Defective bool    // (near) zero length: all matrices are zero
	Umap      []int   // [12] local DOF index => global DOF index
	Rel       []bool  // [2] active moment releases; starts from the cell's pins,
	//                   grows as plastic hinges form (the input cell is never mutated)

	// unit vectors aligned with the member
	e0 []float64 // [3] along the axis
	e1 []float64 // [3] first transverse axis
	e2 []float64 // [3] second transverse axis

	// matrices (12x12)
	T  [][]float64 // global-to-local transformation
	Kl [][]float64 // local stiffness
	K  [][]float64 // global stiffness
}

// NewFrame builds a frame element from resolved nodes, material and
// section. ia and ib are the node indices within the domain, defining
// the assembly map global = nodeIndex*6 + localOffset. A degenerate
// member (L ≈ 0) yields zero matrices and Defective set; never a panic.
func NewFrame(cell *inp.Element, na, nb *inp.Node, mat *inp.Material, sec *inp.Section, ia, ib int) (o *Frame) {

	o = &Frame{Cell: cell, Na: na, Nb: nb, Mat: mat, Sec: sec}
	o.Rel = []bool{cell.Pinned(0), cell.Pinned(1)}
	o.e0 = make([]float64, 3)
	o.e1 = make([]float64, 3)
	o.e2 = make([]float64, 3)
	o.T = la.MatAlloc(Nu, Nu)
	o.Kl = la.MatAlloc(Nu, Nu)
	o.K = la.MatAlloc(Nu, Nu)

	// assembly map
	o.Umap = make([]int, Nu)
	for r := 0; r < Ndof; r++ {
		o.Umap[r] = ia*Ndof + r
		o.Umap[Ndof+r] = ib*Ndof + r
	}

	// length and direction cosines
	dx := make([]float64, 3)
	for i := 0; i < 3; i++ {
		dx[i] = nb.C[i] - na.C[i]
		o.L += dx[i] * dx[i]
	}
	o.L = math.Sqrt(o.L)
	if o.L < inp.ZeroLengthTol {
		o.Defective = true
		for i := 0; i < Nu; i++ {
			o.T[i][i] = 1
		}
		return
	}
	for i := 0; i < 3; i++ {
		o.e0[i] = dx[i] / o.L
	}

	// transverse axes. e1 carries the major axis I22, so for non-vertical
	// members it must point up: vertical-plane bending (gravity loads)
	// is resisted by the strong plane. (near) vertical members take
	// global x as reference instead
	if math.Abs(o.e0[2]) > 0.999 {
		utl.Cross3d(o.e1, []float64{1, 0, 0}, o.e0) // e1 := x cross e0
		nrm := la.VecNorm(o.e1)
		for i := 0; i < 3; i++ {
			o.e1[i] /= nrm
		}
		utl.Cross3d(o.e2, o.e0, o.e1) // e2 := e0 cross e1
	} else {
		utl.Cross3d(o.e2, o.e0, []float64{0, 0, 1}) // e2 := e0 cross z (horizontal)
		nrm := la.VecNorm(o.e2)
		for i := 0; i < 3; i++ {
			o.e2[i] /= nrm
		}
		utl.Cross3d(o.e1, o.e2, o.e0) // e1 := e2 cross e0 (points up)
	}

	// global-to-local transformation matrix
	for k := 0; k < 4; k++ {
		o.T[3*k+0][3*k+0], o.T[3*k+0][3*k+1], o.T[3*k+0][3*k+2] = o.e0[0], o.e0[1], o.e0[2]
		o.T[3*k+1][3*k+0], o.T[3*k+1][3*k+1], o.T[3*k+1][3*k+2] = o.e1[0], o.e1[1], o.e1[2]
		o.T[3*k+2][3*k+0], o.T[3*k+2][3*k+1], o.T[3*k+2][3*k+2] = o.e2[0], o.e2[1], o.e2[2]
	}

	o.Recompute()
	return
}

// Recompute rebuilds the local and global stiffness matrices. Called
// again after a release is inserted (e.g. plastic hinge formation).
func (o *Frame) Recompute() {
	if o.Defective {
		return
	}

	// constants
	EIr := o.Mat.E * o.Sec.I22
	EIs := o.Mat.E * o.Sec.I11
	GJ := o.Mat.G() * o.Sec.Jtt
	EA := o.Mat.E * o.Sec.A
	l := o.L
	ll := l * l
	lll := l * ll

	// stiffness matrix in local system
	la.MatFill(o.Kl, 0)

	o.Kl[0][0] = EA / l
	o.Kl[0][6] = -EA / l

	o.Kl[1][1] = 12.0 * EIr / lll
	o.Kl[1][5] = 6.0 * EIr / ll
	o.Kl[1][7] = -12.0 * EIr / lll
	o.Kl[1][11] = 6.0 * EIr / ll

	o.Kl[2][2] = 12.0 * EIs / lll
	o.Kl[2][4] = -6.0 * EIs / ll
	o.Kl[2][8] = -12.0 * EIs / lll
	o.Kl[2][10] = -6.0 * EIs / ll

	o.Kl[3][3] = GJ / l
	o.Kl[3][9] = -GJ / l

	o.Kl[4][2] = -6.0 * EIs / ll
	o.Kl[4][4] = 4.0 * EIs / l
	o.Kl[4][8] = 6.0 * EIs / ll
	o.Kl[4][10] = 2.0 * EIs / l

	o.Kl[5][1] = 6.0 * EIr / ll
	o.Kl[5][5] = 4.0 * EIr / l
	o.Kl[5][7] = -6.0 * EIr / ll
	o.Kl[5][11] = 2.0 * EIr / l

	o.Kl[6][0] = -EA / l
	o.Kl[6][6] = EA / l

	o.Kl[7][1] = -12.0 * EIr / lll
	o.Kl[7][5] = -6.0 * EIr / ll
	o.Kl[7][7] = 12.0 * EIr / lll
	o.Kl[7][11] = -6.0 * EIr / ll

	o.Kl[8][2] = -12.0 * EIs / lll
	o.Kl[8][4] = 6.0 * EIs / ll
	o.Kl[8][8] = 12.0 * EIs / lll
	o.Kl[8][10] = 6.0 * EIs / ll

	o.Kl[9][3] = -GJ / l
	o.Kl[9][9] = GJ / l

	o.Kl[10][2] = -6.0 * EIs / ll
	o.Kl[10][4] = 2.0 * EIs / l
	o.Kl[10][8] = 6.0 * EIs / ll
	o.Kl[10][10] = 4.0 * EIs / l

	o.Kl[11][1] = 6.0 * EIr / ll
	o.Kl[11][5] = 2.0 * EIr / l
	o.Kl[11][7] = -6.0 * EIr / ll
	o.Kl[11][11] = 4.0 * EIr / l

	// moment releases: a pinned end removes the rotational coupling of
	// that end by zeroing the corresponding rows and columns
	if o.Rel[0] {
		o.releaseDofs(4, 5)
	}
	if o.Rel[1] {
		o.releaseDofs(10, 11)
	}

	// stiffness matrix in global system
	la.MatTrMul3(o.K, 1, o.T, o.Kl, o.T) // K := trans(T) * Kl * T
}

// releaseDofs removes the given local DOFs by static condensation: the
// remaining terms absorb the released DOF (a pinned end keeps the
// 3EI/L³ transverse stiffness), then its row and column are zeroed
func (o *Frame) releaseDofs(dofs ...int) {
	for _, d := range dofs {
		if piv := o.Kl[d][d]; piv != 0 {
			for i := 0; i < Nu; i++ {
				if i == d || o.Kl[i][d] == 0 {
					continue
				}
				f := o.Kl[i][d] / piv
				for j := 0; j < Nu; j++ {
					o.Kl[i][j] -= f * o.Kl[d][j]
				}
			}
		}
		for i := 0; i < Nu; i++ {
			o.Kl[d][i] = 0
			o.Kl[i][d] = 0
		}
	}
}

// Released tells whether end m (0 or 1) currently has a moment release
func (o *Frame) Released(m int) bool {
	return m >= 0 && m < 2 && o.Rel[m]
}

// InsertHinge adds a moment release at end m (0 or 1) and rebuilds the
// stiffness matrices. Used by pushover plastic-hinge formation.
func (o *Frame) InsertHinge(m int) {
	if m < 0 || m >= 2 || o.Rel[m] {
		return
	}
	o.Rel[m] = true
	o.Recompute()
}

// Mass computes the global 12x12 mass matrix: consistent by default,
// diagonal translational-only when lumped is true
func (o *Frame) Mass(lumped bool) (M [][]float64) {
	M = la.MatAlloc(Nu, Nu)
	if o.Defective {
		return
	}
	l := o.L
	ll := l * l
	if lumped {
		half := o.Mat.Rho * o.Sec.A * l / 2.0
		for _, i := range []int{0, 1, 2, 6, 7, 8} {
			M[i][i] = half
		}
		return
	}

	// consistent mass in local system
	Ml := la.MatAlloc(Nu, Nu)
	m := o.Mat.Rho * o.Sec.A * l / 420.0
	rx := o.Sec.Jtt / o.Sec.A // polar radius of gyration squared

	// axial
	Ml[0][0] = 140.0 * m
	Ml[0][6] = 70.0 * m
	Ml[6][0] = 70.0 * m
	Ml[6][6] = 140.0 * m

	// torsion
	Ml[3][3] = 140.0 * m * rx
	Ml[3][9] = 70.0 * m * rx
	Ml[9][3] = 70.0 * m * rx
	Ml[9][9] = 140.0 * m * rx

	// bending in the y0-y1 plane (DOFs 1, 5, 7, 11)
	b1 := []int{1, 5, 7, 11}
	mb1 := [][]float64{
		{156.0 * m, 22.0 * l * m, 54.0 * m, -13.0 * l * m},
		{22.0 * l * m, 4.0 * ll * m, 13.0 * l * m, -3.0 * ll * m},
		{54.0 * m, 13.0 * l * m, 156.0 * m, -22.0 * l * m},
		{-13.0 * l * m, -3.0 * ll * m, -22.0 * l * m, 4.0 * ll * m},
	}

	// bending in the y0-y2 plane (DOFs 2, 4, 8, 10); rotation signs flip
	b2 := []int{2, 4, 8, 10}
	mb2 := [][]float64{
		{156.0 * m, -22.0 * l * m, 54.0 * m, 13.0 * l * m},
		{-22.0 * l * m, 4.0 * ll * m, -13.0 * l * m, -3.0 * ll * m},
		{54.0 * m, -13.0 * l * m, 156.0 * m, 22.0 * l * m},
		{13.0 * l * m, -3.0 * ll * m, 22.0 * l * m, 4.0 * ll * m},
	}

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			Ml[b1[i]][b1[j]] = mb1[i][j]
			Ml[b2[i]][b2[j]] = mb2[i][j]
		}
	}

	la.MatTrMul3(M, 1, o.T, Ml, o.T) // M := trans(T) * Ml * T
	return
}

// Geometric computes the global 12x12 geometric stiffness matrix from
// the axial force N (tension positive)
func (o *Frame) Geometric(N float64) (Kg [][]float64) {
	Kg = la.MatAlloc(Nu, Nu)
	if o.Defective || N == 0 {
		return
	}
	l := o.L
	ll := l * l
	g := N / (30.0 * l)

	Kgl := la.MatAlloc(Nu, Nu)

	b1 := []int{1, 5, 7, 11}
	gb1 := [][]float64{
		{36.0 * g, 3.0 * l * g, -36.0 * g, 3.0 * l * g},
		{3.0 * l * g, 4.0 * ll * g, -3.0 * l * g, -ll * g},
		{-36.0 * g, -3.0 * l * g, 36.0 * g, -3.0 * l * g},
		{3.0 * l * g, -ll * g, -3.0 * l * g, 4.0 * ll * g},
	}

	b2 := []int{2, 4, 8, 10}
	gb2 := [][]float64{
		{36.0 * g, -3.0 * l * g, -36.0 * g, -3.0 * l * g},
		{-3.0 * l * g, 4.0 * ll * g, 3.0 * l * g, -ll * g},
		{-36.0 * g, 3.0 * l * g, 36.0 * g, 3.0 * l * g},
		{-3.0 * l * g, -ll * g, 3.0 * l * g, 4.0 * ll * g},
	}

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			Kgl[b1[i]][b1[j]] = gb1[i][j]
			Kgl[b2[i]][b2[j]] = gb2[i][j]
		}
	}

	la.MatTrMul3(Kg, 1, o.T, Kgl, o.T) // Kg := trans(T) * Kgl * T
	return
}

// LocalDisp gathers the element displacements from the global solution
// vector and rotates them into the local system
func (o *Frame) LocalDisp(u []float64) (ua []float64) {
	ua = make([]float64, Nu)
	ue := make([]float64, Nu)
	for i, I := range o.Umap {
		if I >= 0 && I < len(u) {
			ue[i] = u[I]
		}
	}
	la.MatVecMul(ua, 1, o.T, ue) // ua := T * ue
	return
}

// EndForces computes the local end forces fl = Kl·T·ue given the
// global solution vector:
//
//  fl = [N0, V1, V2, T0, M1, M2,  N1, V1', V2', T0', M1', M2']
func (o *Frame) EndForces(u []float64) (fl []float64) {
	fl = make([]float64, Nu)
	if o.Defective {
		return
	}
	ua := o.LocalDisp(u)
	la.MatVecMul(fl, 1, o.Kl, ua) // fl := Kl * ua
	return
}

// AxialForce returns the axial force (tension positive) for the given
// global solution vector
func (o *Frame) AxialForce(u []float64) float64 {
	if o.Defective {
		return 0
	}
	ua := o.LocalDisp(u)
	return o.Mat.E * o.Sec.A * (ua[6] - ua[0]) / o.L
}

// MaxStress estimates the peak combined normal stress (axial plus
// extreme-fibre bending at either end)
func (o *Frame) MaxStress(u []float64) float64 {
	if o.Defective || o.Sec.A == 0 {
		return 0
	}
	fl := o.EndForces(u)
	sa := math.Abs(fl[0]) / o.Sec.A
	c := o.Sec.Smax()
	var sb float64
	if o.Sec.I22 > 0 {
		sb = math.Max(math.Abs(fl[5]), math.Abs(fl[11])) * c / o.Sec.I22
	}
	var sbMinor float64
	if o.Sec.I11 > 0 {
		sbMinor = math.Max(math.Abs(fl[4]), math.Abs(fl[10])) * c / o.Sec.I11
	}
	return sa + math.Max(sb, sbMinor)
}

// EndRotation returns the local bending rotation (about the major
// axis) at end m for the given global solution vector
func (o *Frame) EndRotation(u []float64, m int) float64 {
	if o.Defective {
		return 0
	}
	ua := o.LocalDisp(u)
	if m == 0 {
		return ua[5]
	}
	return ua[11]
}

// DistLoads returns the uniform distributed load components in the
// local transverse directions, scaled by the element's time function
func (o *Frame) DistLoads(time float64) (q1, q2 float64) {
	if o.Defective {
		return
	}
	scale := 1.0
	if o.Cell.Qfcn != nil {
		scale = o.Cell.Qfcn.F(time, nil)
	}
	return o.Cell.Q1 * scale, o.Cell.Q2 * scale
}

// DistLoadVector computes the global equivalent nodal forces of the
// uniform distributed loads q1/q2 at the given time. Returns nil when
// the element carries no distributed load.
func (o *Frame) DistLoadVector(time float64) (fx []float64) {
	if o.Defective || (o.Cell.Q1 == 0 && o.Cell.Q2 == 0) {
		return
	}
	q1, q2 := o.DistLoads(time)
	l := o.L
	ll := l * l

	fxl := make([]float64, Nu)
	fxl[1] = l * q1 / 2.0
	fxl[2] = l * q2 / 2.0
	fxl[4] = -ll * q2 / 12.0
	fxl[5] = ll * q1 / 12.0
	fxl[7] = l * q1 / 2.0
	fxl[8] = l * q2 / 2.0
	fxl[10] = ll * q2 / 12.0
	fxl[11] = -ll * q1 / 12.0

	fx = make([]float64, Nu)
	la.MatTrVecMulAdd(fx, 1, o.T, fxl) // fx += trans(T) * fxl
	return
}
