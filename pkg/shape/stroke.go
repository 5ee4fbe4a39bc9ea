package shape

import (
	"fmt"
	"math"
)

// DefaultCapSegments is the tessellation count for stroke end caps.
const DefaultCapSegments = 8

// SampleQuadBezier samples the quadratic Bezier curve defined by start
// p0, control p1 and end p2 at n segments, returning n+1 points.
func SampleQuadBezier(p0, p1, p2 [2]float64, n int) [][2]float64 {
	if n < 1 {
		n = 1
	}
	pts := make([][2]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		x := u*u*p0[0] + 2*u*t*p1[0] + t*t*p2[0]
		y := u*u*p0[1] + 2*u*t*p1[1] + t*t*p2[1]
		pts = append(pts, [2]float64{x, y})
	}
	return pts
}

// Buffer converts an open centerline into a closed filled outline of
// the given half-width with semicircular end caps: the stroke-to-fill
// conversion used for stroke-width vector art. Tangents are forward
// differences at the endpoints and central differences in between;
// zero-length segments are skipped. capSegments controls end-cap
// tessellation (DefaultCapSegments when <= 0).
func Buffer(centerline [][2]float64, halfWidth float64, capSegments int) (Shape, error) {
	if len(centerline) < 2 {
		return Shape{}, fmt.Errorf("stroke buffer needs at least 2 centerline points, got %d", len(centerline))
	}
	if halfWidth <= 0 {
		return Shape{}, fmt.Errorf("stroke half-width must be positive, got %g", halfWidth)
	}
	if capSegments <= 0 {
		capSegments = DefaultCapSegments
	}

	n := len(centerline)
	var left, right [][2]float64

	for i := 0; i < n; i++ {
		var dx, dy float64
		switch i {
		case 0:
			dx = centerline[1][0] - centerline[0][0]
			dy = centerline[1][1] - centerline[0][1]
		case n - 1:
			dx = centerline[n-1][0] - centerline[n-2][0]
			dy = centerline[n-1][1] - centerline[n-2][1]
		default:
			dx = centerline[i+1][0] - centerline[i-1][0]
			dy = centerline[i+1][1] - centerline[i-1][1]
		}

		length := math.Hypot(dx, dy)
		if length < 1e-12 {
			continue
		}
		dx /= length
		dy /= length

		// Offset normal: tangent rotated 90 degrees counter-clockwise.
		nx := -dy * halfWidth
		ny := dx * halfWidth

		left = append(left, [2]float64{centerline[i][0] + nx, centerline[i][1] + ny})
		right = append(right, [2]float64{centerline[i][0] - nx, centerline[i][1] - ny})
	}

	if len(left) < 2 {
		return Shape{}, fmt.Errorf("stroke buffer: centerline is degenerate")
	}

	endDir, ok := travelDirection(centerline, n-1, -1)
	if !ok {
		return Shape{}, fmt.Errorf("stroke buffer: no direction at end cap")
	}
	startDir, ok := travelDirection(centerline, 0, 1)
	if !ok {
		return Shape{}, fmt.Errorf("stroke buffer: no direction at start cap")
	}

	// End cap sweeps from the left offset around the tip to the right
	// offset; the start cap mirrors it.
	endCap := capArc(centerline[n-1], endDir, halfWidth, capSegments, -math.Pi/2)
	startCap := capArc(centerline[0], startDir, halfWidth, capSegments, math.Pi/2)

	outline := make([][2]float64, 0, len(left)+len(right)+len(endCap)+len(startCap))
	outline = append(outline, left...)
	outline = append(outline, endCap...)
	for i := len(right) - 1; i >= 0; i-- {
		outline = append(outline, right[i])
	}
	outline = append(outline, startCap...)

	return Polygon(outline)
}

// travelDirection finds the direction of travel (from lower to higher
// index) at an endpoint, walking past coincident points. step is +1
// from the start, -1 from the end.
func travelDirection(pts [][2]float64, at, step int) ([2]float64, bool) {
	for j := at + step; j >= 0 && j < len(pts); j += step {
		dx := float64(step) * (pts[j][0] - pts[at][0])
		dy := float64(step) * (pts[j][1] - pts[at][1])
		if l := math.Hypot(dx, dy); l >= 1e-12 {
			return [2]float64{dx / l, dy / l}, true
		}
	}
	return [2]float64{}, false
}

// capArc emits the interior points of a semicircular end cap around
// tip. The sweep starts at phase and covers half a turn; the offset
// points on either side are contributed by the left/right polylines,
// so the first and last arc points are omitted.
func capArc(tip, dir [2]float64, halfWidth float64, segments int, phase float64) [][2]float64 {
	pts := make([][2]float64, 0, segments-1)
	for i := 1; i < segments; i++ {
		angle := phase + math.Pi*float64(i)/float64(segments)
		x := tip[0] + halfWidth*(dir[0]*math.Cos(angle)+dir[1]*math.Sin(angle))
		y := tip[1] + halfWidth*(dir[1]*math.Cos(angle)-dir[0]*math.Sin(angle))
		pts = append(pts, [2]float64{x, y})
	}
	return pts
}
