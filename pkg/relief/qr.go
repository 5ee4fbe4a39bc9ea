package relief

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/trailcurrentoss/reliefkit/pkg/kernel"
	"github.com/trailcurrentoss/reliefkit/pkg/qr"
)

// MinScanModuleSize is the module size (mm) below which an engraved
// code gets hard to print and scan.
const MinScanModuleSize = 0.3

// QREmboss applies a scannable QR code to a planar face, raised
// (fuse) or recessed (cut). The code is a single compound layer, so
// no isolation is needed.
type QREmboss struct {
	Kernel  kernel.Kernel
	Encoder qr.Encoder
	Log     zerolog.Logger
}

// NewQREmboss returns a QREmboss orchestrator with the given encoder
// capability. A nil encoder is reported at Apply time as
// qr.ErrNoEncoder.
func NewQREmboss(k kernel.Kernel, enc qr.Encoder, log zerolog.Logger) *QREmboss {
	return &QREmboss{Kernel: k, Encoder: enc, Log: log}
}

// Apply places the QR code for p.URL onto the face and returns the new
// solid together with the module size in mm, so the caller can judge
// print and scan feasibility.
func (op *QREmboss) Apply(base kernel.Solid, face Face, p QRParams) (kernel.Solid, float64, error) {
	if op.Encoder == nil {
		return nil, 0, qr.ErrNoEncoder
	}

	matrix, err := op.Encoder.Encode(p.URL, qr.Level(p.ErrorCorrection), p.Border)
	if err != nil {
		return nil, 0, fmt.Errorf("qr emboss: %w", err)
	}
	n := matrix.Size()
	if n == 0 || matrix.DarkCount() == 0 {
		return nil, 0, fmt.Errorf("qr emboss for %q: %w", p.URL, qr.ErrEmptyMatrix)
	}

	moduleSize := p.Size / float64(n)
	op.Log.Info().
		Int("version", qr.Version(n, p.Border)).
		Int("modules", n).
		Float64("moduleSizeMM", moduleSize).
		Msg("QR code encoded")
	if moduleSize < MinScanModuleSize {
		op.Log.Warn().
			Float64("moduleSizeMM", moduleSize).
			Msg("module size is very small; the code may be hard to print or scan. Increase QR size or shorten the URL")
	}

	rects := qr.Rasterize(matrix, p.Size)
	if len(rects) == 0 {
		return nil, 0, fmt.Errorf("qr emboss for %q: %w", p.URL, qr.ErrEmptyMatrix)
	}

	frame, err := FrameOf(face)
	if err != nil {
		return nil, 0, err
	}
	frame = frame.Offset(p.XOffset, p.YOffset)

	mode := Cut
	if p.Emboss {
		mode = Fuse
	}

	volume, err := extrudeAndPlace(op.Kernel, frame, mode, qr.Profile(rects), p.Height, DefaultOverlap)
	if err != nil {
		return nil, 0, fmt.Errorf("qr emboss: %w", err)
	}

	return combine(op.Kernel, base, volume, mode), moduleSize, nil
}
