// Package relief is the face-relative layered-relief geometry engine:
// plane-frame extraction, layer isolation, per-layer extrusion, and
// sequential boolean combination against a host solid. Orchestrators
// compose the shape builders (logo, glyph, qr) with this engine into
// end-to-end deboss/emboss operations.
package relief

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Face is the opaque descriptor for a candidate target face. The
// engine needs nothing beyond planarity, the area centroid, an
// orientation-corrected normal (pointing outward from the solid, not
// from the raw mathematical surface), and the parametric range used to
// pick the sampling midpoint.
type Face interface {
	// Planar reports whether the underlying surface is a plane.
	Planar() bool

	// Centroid returns the face's area centroid.
	Centroid() v3.Vec

	// NormalAt samples the outward surface normal at parametric (u, v).
	NormalAt(u, v float64) v3.Vec

	// ParameterRange returns the parametric bounds of the face.
	ParameterRange() (uMin, uMax, vMin, vMax float64)
}

// PlaneAxis is an optional Face capability: a direct accessor for the
// mathematical plane normal. When present, it must agree with the
// sampled normal up to sign (the raw surface axis ignores face
// orientation flags).
type PlaneAxis interface {
	PlaneNormal() v3.Vec
}

// Frame is the local (origin, U, V, normal) coordinate system of a
// planar face. U, V and Normal are mutually orthogonal unit vectors
// with Normal = U x V. Created once per operation; never mutated.
type Frame struct {
	Origin v3.Vec
	U      v3.Vec
	V      v3.Vec
	Normal v3.Vec
}

// FrameOf derives the face frame. The seed for the in-plane axes is
// the world axis least parallel to the normal, which avoids the
// degenerate seed-parallel-to-normal case.
func FrameOf(f Face) (Frame, error) {
	if !f.Planar() {
		return Frame{}, ErrNonPlanarFace
	}

	uMin, uMax, vMin, vMax := f.ParameterRange()
	normal := f.NormalAt((uMin+uMax)/2, (vMin+vMax)/2)
	if normal.Length() < 1e-12 {
		return Frame{}, fmt.Errorf("%w: degenerate surface normal", ErrNonPlanarFace)
	}
	normal = normal.Normalize()

	// A direct plane accessor must agree with the sampled normal up to
	// the orientation sign.
	if pa, ok := f.(PlaneAxis); ok {
		axis := pa.PlaneNormal()
		if axis.Length() < 1e-12 {
			return Frame{}, fmt.Errorf("%w: degenerate plane axis", ErrNonPlanarFace)
		}
		if math.Abs(axis.Normalize().Dot(normal)) < 1-1e-6 {
			return Frame{}, fmt.Errorf("%w: plane axis disagrees with sampled normal", ErrNonPlanarFace)
		}
	}

	seed := seedAxis(normal)
	u := normal.Cross(seed).Normalize()
	v := normal.Cross(u).Normalize()

	return Frame{Origin: f.Centroid(), U: u, V: v, Normal: normal}, nil
}

// seedAxis picks the world axis least parallel to the normal.
func seedAxis(n v3.Vec) v3.Vec {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case ax <= ay && ax <= az:
		return v3.Vec{X: 1}
	case ay <= ax && ay <= az:
		return v3.Vec{Y: 1}
	default:
		return v3.Vec{Z: 1}
	}
}

// Rotated returns the frame with U and V rotated together around the
// normal by the given angle in degrees.
func (f Frame) Rotated(degrees float64) Frame {
	if degrees == 0 {
		return f
	}
	rad := degrees * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	u := f.U.MulScalar(cos).Add(f.V.MulScalar(sin))
	v := f.U.MulScalar(-sin).Add(f.V.MulScalar(cos))
	f.U = u
	f.V = v
	return f
}

// Offset returns the frame with the origin shifted in-plane by
// (x, y) along U and V.
func (f Frame) Offset(x, y float64) Frame {
	f.Origin = f.Origin.Add(f.U.MulScalar(x)).Add(f.V.MulScalar(y))
	return f
}

// PlanarFace is a concrete rectangular planar face for hosts and
// tests: centered at Center with the given outward Normal. Reversed
// marks a face whose raw surface axis points into the solid, the way
// a reversed B-rep face does; NormalAt corrects for it.
type PlanarFace struct {
	Center   v3.Vec
	Normal   v3.Vec // raw mathematical surface normal
	Width    float64
	Height   float64
	Reversed bool
}

// Compile-time interface checks.
var (
	_ Face      = PlanarFace{}
	_ PlaneAxis = PlanarFace{}
)

// Planar always reports true.
func (p PlanarFace) Planar() bool { return true }

// Centroid returns the face center.
func (p PlanarFace) Centroid() v3.Vec { return p.Center }

// NormalAt returns the orientation-corrected outward normal.
func (p PlanarFace) NormalAt(u, v float64) v3.Vec {
	n := p.Normal
	if p.Reversed {
		n = n.MulScalar(-1)
	}
	return n
}

// ParameterRange spans the rectangle centered on the origin.
func (p PlanarFace) ParameterRange() (uMin, uMax, vMin, vMax float64) {
	return -p.Width / 2, p.Width / 2, -p.Height / 2, p.Height / 2
}

// PlaneNormal returns the raw mathematical plane normal.
func (p PlanarFace) PlaneNormal() v3.Vec { return p.Normal }
