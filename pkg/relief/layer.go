package relief

import (
	"fmt"

	"github.com/trailcurrentoss/reliefkit/pkg/shape"
)

// MinLayerDepth is the depth below which a layer is dropped before
// extrusion; it would contribute a degenerate zero-height solid.
const MinLayerDepth = 1e-4

// Layer is one relief stratum: a planar region cut or fused at its own
// depth. Order in a layer slice is priority order: index 0 is drawn on
// top and ends up shallowest.
type Layer struct {
	Name  string
	Shape shape.Shape
	Depth float64
}

// Isolate subtracts every strictly-higher-priority shape from each
// layer so the returned layers are pairwise disjoint. The first
// (highest-priority, shallowest) layer is untouched; the last
// (background) layer has everything else removed. Disjoint layers are
// what make the per-depth extrusions combine unambiguously.
func Isolate(layers []Layer) ([]Layer, error) {
	out := make([]Layer, len(layers))
	for i, layer := range layers {
		isolated := layer.Shape
		var err error
		for j := 0; j < i; j++ {
			isolated, err = isolated.Difference(layers[j].Shape)
			if err != nil {
				return nil, fmt.Errorf("isolate layer %q against %q: %w",
					layer.Name, layers[j].Name, err)
			}
		}
		out[i] = Layer{Name: layer.Name, Shape: isolated, Depth: layer.Depth}
	}
	return out, nil
}
