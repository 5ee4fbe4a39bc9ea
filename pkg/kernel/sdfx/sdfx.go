// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"
	"os"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/trailcurrentoss/reliefkit/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution
// when no tolerance is given.
const defaultMeshCells = 200

// STL tessellation cell-count clamps. WriteSTL derives the cell count
// from the bounding box and tolerance; very small solids or very loose
// tolerances would otherwise degenerate.
const (
	minSTLCells = 16
	maxSTLCells = 400
)

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Box creates a box with the given dimensions, centered at the origin.
func (k *SdfxKernel) Box(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return wrap(s)
}

// Cylinder creates a cylinder with the given height and radius,
// centered at the origin with its axis along Z. The segments parameter
// is ignored since SDF represents smooth surfaces.
func (k *SdfxKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s)
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *SdfxKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// contour2D converts a kernel.Contour into an sdfx polygon SDF.
// The contour is forced counter-clockwise and an explicitly repeated
// closing point is dropped.
func contour2D(c kernel.Contour) (sdf.SDF2, error) {
	pts := c
	if len(pts) > 1 {
		first := pts[0]
		last := pts[len(pts)-1]
		if first[0] == last[0] && first[1] == last[1] {
			pts = pts[:len(pts)-1]
		}
	}
	if len(pts) < 3 {
		return nil, fmt.Errorf("contour has %d points, need at least 3", len(pts))
	}

	// Shoelace signed area; negative means clockwise.
	area := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
	}

	verts := make([]v2.Vec, len(pts))
	if area < 0 {
		for i, p := range pts {
			verts[len(pts)-1-i] = v2.Vec{X: p[0], Y: p[1]}
		}
	} else {
		for i, p := range pts {
			verts[i] = v2.Vec{X: p[0], Y: p[1]}
		}
	}

	return sdf.Polygon2D(verts)
}

// Extrude sweeps a 2D profile along +Z from z=0 to z=height.
func (k *SdfxKernel) Extrude(p kernel.Profile, height float64) (kernel.Solid, error) {
	if height <= 0 {
		return nil, fmt.Errorf("extrude: non-positive height %g", height)
	}
	if p.IsEmpty() {
		return nil, fmt.Errorf("extrude: profile has no outer boundaries")
	}

	outers := make([]sdf.SDF2, 0, len(p.Outers))
	for i, c := range p.Outers {
		s2, err := contour2D(c)
		if err != nil {
			return nil, fmt.Errorf("extrude: outer %d: %w", i, err)
		}
		outers = append(outers, s2)
	}
	region := sdf.Union2D(outers...)

	if len(p.Holes) > 0 {
		holes := make([]sdf.SDF2, 0, len(p.Holes))
		for i, c := range p.Holes {
			s2, err := contour2D(c)
			if err != nil {
				return nil, fmt.Errorf("extrude: hole %d: %w", i, err)
			}
			holes = append(holes, s2)
		}
		region = sdf.Difference2D(region, sdf.Union2D(holes...))
	}

	// Extrude3D is symmetric about z=0; shift so the solid spans [0, height].
	s3 := sdf.Extrude3D(region, height)
	m := sdf.Translate3d(v3.Vec{Z: height / 2})
	return wrap(sdf.Transform3D(s3, m)), nil
}

// eulerZYX decomposes the rotation with columns (u, v, w) into ZYX
// Euler angles such that Rz(c)*Ry(b)*Rx(a) reproduces it.
func eulerZYX(u, v, w [3]float64) (a, b, c float64) {
	b = math.Asin(clamp(-u[2], -1, 1))
	if math.Abs(math.Cos(b)) < 1e-9 {
		// Gimbal lock: fold the X rotation into Z.
		a = 0
		c = math.Atan2(-v[0], v[1])
		return a, b, c
	}
	a = math.Atan2(v[2], w[2])
	c = math.Atan2(u[1], u[0])
	return a, b, c
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Place maps a solid from its local frame into the world frame with
// basis (u, v, w) and the given origin. The basis must be orthonormal
// and right-handed; a mirrored basis is a programming error.
func (k *SdfxKernel) Place(s kernel.Solid, origin, u, v, w [3]float64) kernel.Solid {
	det := u[0]*(v[1]*w[2]-v[2]*w[1]) -
		v[0]*(u[1]*w[2]-u[2]*w[1]) +
		w[0]*(u[1]*v[2]-u[2]*v[1])
	if math.Abs(det-1) > 1e-6 {
		panic(fmt.Sprintf("sdfx.Place: basis is not a rotation (det=%g)", det))
	}

	a, b, c := eulerZYX(u, v, w)
	m := sdf.Translate3d(v3.Vec{X: origin[0], Y: origin[1], Z: origin[2]}).
		Mul(sdf.RotateZ(c)).
		Mul(sdf.RotateY(b)).
		Mul(sdf.RotateX(a))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Contains reports whether the point is on or inside the solid.
func (k *SdfxKernel) Contains(s kernel.Solid, p [3]float64) bool {
	return unwrap(s).Evaluate(v3.Vec{X: p[0], Y: p[1], Z: p[2]}) <= 0
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	return meshAt(unwrap(s), defaultMeshCells), nil
}

// meshAt runs marching cubes at the given cell count and flattens the
// triangles into a kernel.Mesh.
func meshAt(sdf3 sdf.SDF3, cells int) *kernel.Mesh {
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}
}

// stlCells derives a marching cubes cell count from the solid's
// largest bounding-box dimension and the requested linear tolerance.
func stlCells(s sdf.SDF3, tolerance float64) int {
	bb := s.BoundingBox()
	size := bb.Max.Sub(bb.Min)
	longest := math.Max(size.X, math.Max(size.Y, size.Z))
	if tolerance <= 0 || longest <= 0 {
		return defaultMeshCells
	}
	cells := int(math.Ceil(longest / tolerance))
	if cells < minSTLCells {
		cells = minSTLCells
	}
	if cells > maxSTLCells {
		cells = maxSTLCells
	}
	return cells
}

// WriteSTL triangulates the solid at the given linear tolerance (mm)
// and writes a binary STL file to path.
func (k *SdfxKernel) WriteSTL(s kernel.Solid, path string, tolerance float64) error {
	sdf3 := unwrap(s)
	render.ToSTL(sdf3, path, render.NewMarchingCubesUniform(stlCells(sdf3, tolerance)))

	// render.ToSTL reports failures on its own logger only, so confirm
	// the file landed.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stl export to %s failed: %w", path, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("stl export to %s produced an empty file", path)
	}
	return nil
}
