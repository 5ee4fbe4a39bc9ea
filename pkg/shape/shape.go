// Package shape provides the 2D planar regions that the relief engine
// extrudes into cutting and fusing volumes. Regions are backed by
// simplefeatures geometries, so boolean operations are exact polygon
// arithmetic rather than approximations.
package shape

import (
	"fmt"
	"math"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/trailcurrentoss/reliefkit/pkg/kernel"
)

// Shape is a planar region: one or more closed polygon boundaries,
// possibly with holes. The zero value is the empty region.
type Shape struct {
	g geom.Geometry
}

// ring builds a closed LineString from implicitly-closed points.
func ring(pts [][2]float64) geom.LineString {
	coords := make([]float64, 0, (len(pts)+1)*2)
	for _, p := range pts {
		coords = append(coords, p[0], p[1])
	}
	// Close the ring.
	if len(pts) > 0 {
		coords = append(coords, pts[0][0], pts[0][1])
	}
	return geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
}

// Polygon returns the simple polygon bounded by the given points.
// The closing edge is implicit. At least three points are required.
func Polygon(pts [][2]float64) (Shape, error) {
	if len(pts) < 3 {
		return Shape{}, fmt.Errorf("polygon needs at least 3 points, got %d", len(pts))
	}
	p := geom.NewPolygon([]geom.LineString{ring(pts)})
	if err := p.Validate(); err != nil {
		return Shape{}, fmt.Errorf("invalid polygon: %w", err)
	}
	return Shape{g: p.AsGeometry()}, nil
}

// Circle returns a regular polygon approximation of a disc with the
// given radius, centered at the origin.
func Circle(radius float64, segments int) (Shape, error) {
	if radius <= 0 {
		return Shape{}, fmt.Errorf("circle radius must be positive, got %g", radius)
	}
	if segments < 8 {
		segments = 8
	}
	pts := make([][2]float64, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = [2]float64{radius * math.Cos(a), radius * math.Sin(a)}
	}
	return Polygon(pts)
}

// IsEmpty reports whether the shape has no interior area.
func (s Shape) IsEmpty() bool {
	return s.g.IsEmpty()
}

// Union returns the union of two shapes.
func (s Shape) Union(o Shape) (Shape, error) {
	g, err := geom.Union(s.g, o.g)
	if err != nil {
		return Shape{}, fmt.Errorf("shape union: %w", err)
	}
	return Shape{g: g}, nil
}

// Difference returns s minus o.
func (s Shape) Difference(o Shape) (Shape, error) {
	g, err := geom.Difference(s.g, o.g)
	if err != nil {
		return Shape{}, fmt.Errorf("shape difference: %w", err)
	}
	return Shape{g: g}, nil
}

// Intersect returns the common region of two shapes.
func (s Shape) Intersect(o Shape) (Shape, error) {
	g, err := geom.Intersection(s.g, o.g)
	if err != nil {
		return Shape{}, fmt.Errorf("shape intersection: %w", err)
	}
	return Shape{g: g}, nil
}

// polygons collects the polygonal components of the shape. Lower
// dimensional artifacts from boolean operations (points, lines) are
// discarded.
func (s Shape) polygons() []geom.Polygon {
	return appendPolygons(nil, s.g)
}

func appendPolygons(dst []geom.Polygon, g geom.Geometry) []geom.Polygon {
	switch g.Type() {
	case geom.TypePolygon:
		p := g.MustAsPolygon()
		if !p.IsEmpty() {
			dst = append(dst, p)
		}
	case geom.TypeMultiPolygon:
		mp := g.MustAsMultiPolygon()
		for i := 0; i < mp.NumPolygons(); i++ {
			p := mp.PolygonN(i)
			if !p.IsEmpty() {
				dst = append(dst, p)
			}
		}
	case geom.TypeGeometryCollection:
		gc := g.MustAsGeometryCollection()
		for i := 0; i < gc.NumGeometries(); i++ {
			dst = appendPolygons(dst, gc.GeometryN(i))
		}
	}
	return dst
}

// Area returns the total area of the shape.
func (s Shape) Area() float64 {
	total := 0.0
	for _, p := range s.polygons() {
		total += p.Area()
	}
	return total
}

// ringPoints flattens a closed LineString into implicitly-closed points.
func ringPoints(ls geom.LineString) kernel.Contour {
	seq := ls.Coordinates()
	n := seq.Length()
	if n == 0 {
		return nil
	}
	// Drop the repeated closing point.
	if n > 1 {
		first := seq.GetXY(0)
		last := seq.GetXY(n - 1)
		if first == last {
			n--
		}
	}
	c := make(kernel.Contour, n)
	for i := 0; i < n; i++ {
		xy := seq.GetXY(i)
		c[i] = [2]float64{xy.X, xy.Y}
	}
	return c
}

// Profile converts the shape into extrudable outer and hole contours.
func (s Shape) Profile() kernel.Profile {
	var p kernel.Profile
	for _, poly := range s.polygons() {
		p.Outers = append(p.Outers, ringPoints(poly.ExteriorRing()))
		for i := 0; i < poly.NumInteriorRings(); i++ {
			p.Holes = append(p.Holes, ringPoints(poly.InteriorRingN(i)))
		}
	}
	return p
}

// Bounds returns the axis-aligned bounding box of the shape's
// boundaries. Empty shapes return zero bounds and ok=false.
func (s Shape) Bounds() (min, max [2]float64, ok bool) {
	min = [2]float64{math.Inf(1), math.Inf(1)}
	max = [2]float64{math.Inf(-1), math.Inf(-1)}
	p := s.Profile()
	for _, rings := range [][]kernel.Contour{p.Outers, p.Holes} {
		for _, c := range rings {
			for _, pt := range c {
				min[0] = math.Min(min[0], pt[0])
				min[1] = math.Min(min[1], pt[1])
				max[0] = math.Max(max[0], pt[0])
				max[1] = math.Max(max[1], pt[1])
				ok = true
			}
		}
	}
	if !ok {
		return [2]float64{}, [2]float64{}, false
	}
	return min, max, true
}

// Translate returns the shape shifted by (dx, dy).
func (s Shape) Translate(dx, dy float64) (Shape, error) {
	polys := s.polygons()
	moved := make([]geom.Polygon, 0, len(polys))
	for _, poly := range polys {
		rings := make([]geom.LineString, 0, 1+poly.NumInteriorRings())
		rings = append(rings, shiftRing(poly.ExteriorRing(), dx, dy))
		for i := 0; i < poly.NumInteriorRings(); i++ {
			rings = append(rings, shiftRing(poly.InteriorRingN(i), dx, dy))
		}
		p := geom.NewPolygon(rings)
		if err := p.Validate(); err != nil {
			return Shape{}, fmt.Errorf("translate: %w", err)
		}
		moved = append(moved, p)
	}
	if len(moved) == 1 {
		return Shape{g: moved[0].AsGeometry()}, nil
	}
	mp := geom.NewMultiPolygon(moved)
	if err := mp.Validate(); err != nil {
		return Shape{}, fmt.Errorf("translate: %w", err)
	}
	return Shape{g: mp.AsGeometry()}, nil
}

func shiftRing(ls geom.LineString, dx, dy float64) geom.LineString {
	seq := ls.Coordinates()
	n := seq.Length()
	coords := make([]float64, 0, n*2)
	for i := 0; i < n; i++ {
		xy := seq.GetXY(i)
		coords = append(coords, xy.X+dx, xy.Y+dy)
	}
	return geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
}
