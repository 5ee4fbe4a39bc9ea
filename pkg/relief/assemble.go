package relief

import (
	"fmt"

	"github.com/trailcurrentoss/reliefkit/pkg/kernel"
)

// Mode selects the boolean applied against the base solid.
type Mode int

const (
	// Cut removes the extruded volumes (deboss).
	Cut Mode = iota
	// Fuse adds the extruded volumes (emboss).
	Fuse
)

// DefaultOverlap is the penetration past the target surface that
// guarantees a clean boolean against it (mm).
const DefaultOverlap = 0.01

// extrudeAndPlace turns a profile into a placed solid. The local
// Z-range depends on the mode: a cut spans [-depth, overlap] so the
// volume reaches into the body and just past the surface, a fuse spans
// [-overlap, depth] so it rises out of the surface. The frame basis is
// right-handed, so local XY artwork lands on the face unmirrored and
// reads correctly from outside.
func extrudeAndPlace(k kernel.Kernel, frame Frame, mode Mode, p kernel.Profile, depth, overlap float64) (kernel.Solid, error) {
	solid, err := k.Extrude(p, depth+overlap)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBoolean, err)
	}

	zLow := -depth
	if mode == Fuse {
		zLow = -overlap
	}
	solid = k.Translate(solid, 0, 0, zLow)

	return k.Place(solid,
		[3]float64{frame.Origin.X, frame.Origin.Y, frame.Origin.Z},
		[3]float64{frame.U.X, frame.U.Y, frame.U.Z},
		[3]float64{frame.V.X, frame.V.Y, frame.V.Z},
		[3]float64{frame.Normal.X, frame.Normal.Y, frame.Normal.Z},
	), nil
}

// combine applies one placed volume to the working solid.
func combine(k kernel.Kernel, base, volume kernel.Solid, mode Mode) kernel.Solid {
	if mode == Fuse {
		return k.Union(base, volume)
	}
	return k.Difference(base, volume)
}

// Assemble extrudes each surviving layer to its own depth, places it
// in the face frame, and sequentially combines it against the base.
// Layers must already be pairwise disjoint; the combination order then
// only matters for numerical robustness, not final topology. Any
// failed step aborts the whole operation and no partial relief is
// returned — the base solid handle is never mutated.
func Assemble(k kernel.Kernel, base kernel.Solid, frame Frame, mode Mode, layers []Layer, overlap float64) (kernel.Solid, error) {
	result := base
	for _, layer := range layers {
		if layer.Depth < MinLayerDepth {
			continue
		}
		profile := layer.Shape.Profile()
		if profile.IsEmpty() {
			// Fully occluded by higher-priority layers.
			continue
		}
		volume, err := extrudeAndPlace(k, frame, mode, profile, layer.Depth, overlap)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", layer.Name, err)
		}
		result = combine(k, result, volume, mode)
	}
	return result, nil
}
