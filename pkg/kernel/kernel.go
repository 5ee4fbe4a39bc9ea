// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx today, others later) provide solid modeling and
// boolean operations behind this interface. The kernel abstraction
// allows swapping backends without changing the relief engine.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation. Solids are
// immutable: every kernel operation returns a new handle and never
// modifies its inputs.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Contour is a closed 2D polygon boundary. The closing edge from the
// last point back to the first is implicit.
type Contour [][2]float64

// Profile is a planar region described by outer boundaries minus hole
// boundaries. Holes must lie inside one of the outers.
type Profile struct {
	Outers []Contour
	Holes  []Contour
}

// IsEmpty reports whether the profile has no outer boundaries.
func (p Profile) IsEmpty() bool {
	return len(p.Outers) == 0
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Extrude sweeps a 2D profile along local +Z from z=0 to z=height.
	// The profile keeps its XY coordinates. Returns an error for a
	// degenerate profile (no outers, a boundary with fewer than three
	// points, non-positive height).
	Extrude(p Profile, height float64) (Solid, error)

	// Place maps a solid from its local frame into a world frame:
	// local X to u, local Y to v, local Z to w, local origin to origin.
	// The triple (u, v, w) must be orthonormal and right-handed.
	Place(s Solid, origin, u, v, w [3]float64) Solid

	// Contains reports whether a point is inside the solid (boundary
	// points count as inside).
	Contains(s Solid, p [3]float64) bool

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)

	// WriteSTL triangulates the solid at the given linear tolerance
	// (mm) and writes a binary STL file to path.
	WriteSTL(s Solid, path string, tolerance float64) error
}
