package relief

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/trailcurrentoss/reliefkit/pkg/kernel"
	"github.com/trailcurrentoss/reliefkit/pkg/logo"
)

// LogoDeboss cuts the layered brand logo into a planar face. Each
// element is cut at a different depth to create the relief effect:
// circle background deepest at TotalDepth, then mountain, trail, and
// bolt at their ratio depths.
type LogoDeboss struct {
	Kernel kernel.Kernel
	Log    zerolog.Logger
}

// NewLogoDeboss returns a LogoDeboss orchestrator.
func NewLogoDeboss(k kernel.Kernel, log zerolog.Logger) *LogoDeboss {
	return &LogoDeboss{Kernel: k, Log: log}
}

// logoLayers builds the four logo layers in priority order, bolt
// shallowest first, and isolates them into disjoint regions.
func logoLayers(p LogoParams) ([]Layer, error) {
	shapes, err := logo.Build(p.Diameter)
	if err != nil {
		return nil, err
	}

	layers := []Layer{
		{Name: "bolt", Shape: shapes.Bolt, Depth: p.TotalDepth * p.BoltRatio},
		{Name: "trail", Shape: shapes.Trail, Depth: p.TotalDepth * p.TrailRatio},
		{Name: "mountain", Shape: shapes.Mountain, Depth: p.TotalDepth * p.MountainRatio},
		{Name: "circle", Shape: shapes.Circle, Depth: p.TotalDepth},
	}
	return Isolate(layers)
}

// Apply debosses the logo onto the face of the base solid and returns
// a new solid; the base is never modified.
func (op *LogoDeboss) Apply(base kernel.Solid, face Face, p LogoParams) (kernel.Solid, error) {
	frame, err := FrameOf(face)
	if err != nil {
		return nil, err
	}
	frame = frame.Rotated(p.Rotation).Offset(p.XOffset, p.YOffset)

	layers, err := logoLayers(p)
	if err != nil {
		return nil, fmt.Errorf("logo deboss: %w", err)
	}

	op.Log.Debug().
		Float64("diameter", p.Diameter).
		Float64("totalDepth", p.TotalDepth).
		Msg("applying logo deboss")

	result, err := Assemble(op.Kernel, base, frame, Cut, layers, 0)
	if err != nil {
		return nil, fmt.Errorf("logo deboss: %w", err)
	}
	return result, nil
}
