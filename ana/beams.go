// Copyright 2026 The Strukturfem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana provides closed-form analytical solutions of simple
// structural problems, used to verify the finite element engine
package ana

import "math"

// SimpleBeam computes the response of a simply supported prismatic
// beam of length L, Young's modulus E and moment of inertia I
type SimpleBeam struct {
	L float64 // span
	E float64 // Young's modulus
	I float64 // moment of inertia
}

// NewSimpleBeam returns a simply supported beam
func NewSimpleBeam(l, e, i float64) *SimpleBeam {
	return &SimpleBeam{L: l, E: e, I: i}
}

// DeflectionCentralLoad returns the midspan deflection under a central
// point load P:  δ = P·L³ / (48·E·I)
func (o *SimpleBeam) DeflectionCentralLoad(p float64) float64 {
	return p * o.L * o.L * o.L / (48.0 * o.E * o.I)
}

// MomentCentralLoad returns the midspan bending moment under a central
// point load P:  M = P·L / 4
func (o *SimpleBeam) MomentCentralLoad(p float64) float64 {
	return p * o.L / 4.0
}

// Cantilever computes the response of a cantilever beam fixed at one
// end
type Cantilever struct {
	L float64 // length
	E float64 // Young's modulus
	I float64 // moment of inertia
}

// TipDeflection returns the free-end deflection under a transverse tip
// load P:  δ = P·L³ / (3·E·I)
func (o *Cantilever) TipDeflection(p float64) float64 {
	return p * o.L * o.L * o.L / (3.0 * o.E * o.I)
}

// TipDeflectionAxial returns the free-end axial shortening under an
// axial tip load P:  δ = P·L / (E·A)
func (o *Cantilever) TipDeflectionAxial(p, a float64) float64 {
	return p * o.L / (o.E * a)
}

// EulerColumn computes the elastic critical load of a prismatic column
type EulerColumn struct {
	L float64 // length
	E float64 // Young's modulus
	I float64 // minor moment of inertia
	K float64 // effective length factor (1 = pinned-pinned, 2 = fixed-free)
}

// CriticalLoad returns  Pcr = π²·E·I / (K·L)²
func (o *EulerColumn) CriticalLoad() float64 {
	kl := o.K * o.L
	return math.Pi * math.Pi * o.E * o.I / (kl * kl)
}

// SdofOscillator is a single-degree-of-freedom mass-spring system
type SdofOscillator struct {
	M float64 // mass
	K float64 // stiffness
}

// NaturalFreq returns the circular natural frequency ω = √(K/M)
func (o *SdofOscillator) NaturalFreq() float64 {
	return math.Sqrt(o.K / o.M)
}

// Period returns the natural period T = 2π/ω
func (o *SdofOscillator) Period() float64 {
	return 2.0 * math.Pi / o.NaturalFreq()
}

// StaticDisp returns the static displacement under a constant force
func (o *SdofOscillator) StaticDisp(f float64) float64 {
	return f / o.K
}
