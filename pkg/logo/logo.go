// Package logo builds the four canonical brand icon shapes (circle,
// mountain silhouette, trail path, lightning bolt) as planar regions
// ready for layered debossing. The reference art comes from the brand
// icon SVG (viewBox 0 0 48 48); everything is uniformly scaled to the
// requested diameter, Y-flipped to solid-modeling convention, and
// centered at the origin.
package logo

import (
	"fmt"

	"github.com/trailcurrentoss/reliefkit/pkg/shape"
)

// Reference art constants (SVG coordinates).
const (
	refCX = 24.0
	refCY = 24.0

	// RefDiameter is the reference circle diameter (r=22).
	RefDiameter = 44.0

	trailStrokeWidth = 3.0
	boltStrokeWidth  = 2.5

	// bezierSegments is the tessellation per quadratic trail segment.
	bezierSegments = 20

	// circleSegments is the polygon tessellation of the disc.
	circleSegments = 128
)

// mountain silhouette: M6,36 L16,14 L22,22 L32,8 L42,36 Z
var refMountain = [][2]float64{{6, 36}, {16, 14}, {22, 22}, {32, 8}, {42, 36}}

// trail path: M10,32 Q16,26 22,30 Q28,34 34,28 Q38,24 42,26
var refTrail = [][3][2]float64{
	{{10, 32}, {16, 26}, {22, 30}},
	{{22, 30}, {28, 34}, {34, 28}},
	{{34, 28}, {38, 24}, {42, 26}},
}

// bolt polyline: M34,14 L38,22 L32,22 L36,32
var refBolt = [][2]float64{{34, 14}, {38, 22}, {32, 22}, {36, 32}}

// Shapes are the four logo regions in one local frame centered at the
// origin. They overlap; layer isolation happens downstream.
type Shapes struct {
	Circle   shape.Shape
	Mountain shape.Shape
	Trail    shape.Shape
	Bolt     shape.Shape
}

// toLocal converts reference art coordinates to the local frame:
// centered, scaled, Y flipped.
func toLocal(p [2]float64, scale float64) [2]float64 {
	return [2]float64{(p[0] - refCX) * scale, -(p[1] - refCY) * scale}
}

func toLocalAll(pts [][2]float64, scale float64) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = toLocal(p, scale)
	}
	return out
}

// Build constructs the logo shapes at the given outer circle diameter
// (mm). The mountain, trail and bolt are clipped to the circle.
func Build(diameter float64) (Shapes, error) {
	if diameter <= 0 {
		return Shapes{}, fmt.Errorf("logo diameter must be positive, got %g", diameter)
	}
	scale := diameter / RefDiameter

	circle, err := shape.Circle(diameter/2, circleSegments)
	if err != nil {
		return Shapes{}, fmt.Errorf("logo circle: %w", err)
	}

	mountain, err := shape.Polygon(toLocalAll(refMountain, scale))
	if err != nil {
		return Shapes{}, fmt.Errorf("logo mountain: %w", err)
	}
	mountain, err = mountain.Intersect(circle)
	if err != nil {
		return Shapes{}, fmt.Errorf("logo mountain clip: %w", err)
	}

	trail, err := buildTrail(scale, circle)
	if err != nil {
		return Shapes{}, err
	}

	bolt, err := shape.Buffer(toLocalAll(refBolt, scale), boltStrokeWidth*scale/2, shape.DefaultCapSegments)
	if err != nil {
		return Shapes{}, fmt.Errorf("logo bolt: %w", err)
	}
	bolt, err = bolt.Intersect(circle)
	if err != nil {
		return Shapes{}, fmt.Errorf("logo bolt clip: %w", err)
	}

	return Shapes{
		Circle:   circle,
		Mountain: mountain,
		Trail:    trail,
		Bolt:     bolt,
	}, nil
}

// buildTrail samples the three quadratic segments into one centerline,
// buffers it at the scaled stroke width, and clips to the circle.
func buildTrail(scale float64, circle shape.Shape) (shape.Shape, error) {
	var centerline [][2]float64
	for i, seg := range refTrail {
		pts := shape.SampleQuadBezier(seg[0], seg[1], seg[2], bezierSegments)
		if i > 0 {
			pts = pts[1:] // segments share their join point
		}
		centerline = append(centerline, pts...)
	}

	trail, err := shape.Buffer(toLocalAll(centerline, scale), trailStrokeWidth*scale/2, shape.DefaultCapSegments)
	if err != nil {
		return shape.Shape{}, fmt.Errorf("logo trail: %w", err)
	}
	trail, err = trail.Intersect(circle)
	if err != nil {
		return shape.Shape{}, fmt.Errorf("logo trail clip: %w", err)
	}
	return trail, nil
}
