package relief

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/trailcurrentoss/reliefkit/pkg/glyph"
	"github.com/trailcurrentoss/reliefkit/pkg/kernel"
)

// LogoTextDeboss cuts the layered logo plus the wordmark. The text
// sits to the right of the circle at the header layout ratios and is
// vertically centered on the logo's midline, so it never overlaps the
// circle and needs no isolation against the logo layers.
type LogoTextDeboss struct {
	Kernel kernel.Kernel
	Log    zerolog.Logger
}

// NewLogoTextDeboss returns a LogoTextDeboss orchestrator.
func NewLogoTextDeboss(k kernel.Kernel, log zerolog.Logger) *LogoTextDeboss {
	return &LogoTextDeboss{Kernel: k, Log: log}
}

// Apply debosses logo and text onto the face of the base solid and
// returns a new solid; the base is never modified.
func (op *LogoTextDeboss) Apply(base kernel.Solid, face Face, p LogoTextParams) (kernel.Solid, error) {
	frame, err := FrameOf(face)
	if err != nil {
		return nil, err
	}
	frame = frame.Rotated(p.Rotation).Offset(p.XOffset, p.YOffset)

	layers, err := logoLayers(p.LogoParams)
	if err != nil {
		return nil, fmt.Errorf("logotext deboss: %w", err)
	}

	text := p.Text
	if text == "" {
		text = DefaultText
	}
	capHeight := p.Diameter * TextCapHeightRatio
	textShape, metrics, err := glyph.Assemble(text, capHeight)
	if err != nil {
		return nil, fmt.Errorf("logotext deboss: %w", err)
	}

	// Place the text to the right of the circle, vertically centered
	// on the logo midline.
	xStart := p.Diameter/2 + p.Diameter*TextGapRatio
	dy := -(metrics.YMin + metrics.YMax) / 2
	textShape, err = textShape.Translate(xStart, dy)
	if err != nil {
		return nil, fmt.Errorf("logotext deboss: place text: %w", err)
	}

	layers = append(layers, Layer{
		Name:  "text",
		Shape: textShape,
		Depth: p.TotalDepth * p.TextRatio,
	})

	op.Log.Debug().
		Str("text", text).
		Float64("capHeight", capHeight).
		Msg("applying logotext deboss")

	result, err := Assemble(op.Kernel, base, frame, Cut, layers, 0)
	if err != nil {
		return nil, fmt.Errorf("logotext deboss: %w", err)
	}
	return result, nil
}
