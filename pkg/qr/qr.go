// Package qr turns text into a QR module matrix and rasterizes the
// matrix into the minimal set of merged rectangles suitable for
// extrusion. Encoding itself is delegated to an injected encoder; this
// package never implements QR encoding.
package qr

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// ErrNoEncoder reports a missing QR encoder capability. The encoder is
// injected once at orchestrator construction, not probed per call.
var ErrNoEncoder = errors.New(
	"no QR encoder configured: wire qr.StdEncoder{} (github.com/skip2/go-qrcode) into the orchestrator")

// ErrEmptyMatrix reports a matrix with zero dark modules.
var ErrEmptyMatrix = errors.New("QR matrix has no dark modules")

// Matrix is a square grid of QR modules, true meaning dark. It
// includes the quiet-zone border and is immutable once produced.
type Matrix [][]bool

// Size returns the side length in modules.
func (m Matrix) Size() int {
	return len(m)
}

// DarkCount returns the number of dark modules.
func (m Matrix) DarkCount() int {
	count := 0
	for _, row := range m {
		for _, dark := range row {
			if dark {
				count++
			}
		}
	}
	return count
}

// Encoder produces a module matrix (quiet zone included) for text.
type Encoder interface {
	Encode(text string, level Level, border int) (Matrix, error)
}

// Level is a QR error-correction level.
type Level string

// Error-correction levels in increasing redundancy order.
const (
	LevelL Level = "L"
	LevelM Level = "M"
	LevelQ Level = "Q"
	LevelH Level = "H"
)

// recovery maps a Level to the encoder library's constant, defaulting
// to medium for unknown labels.
func recovery(level Level) qrcode.RecoveryLevel {
	switch level {
	case LevelL:
		return qrcode.Low
	case LevelM:
		return qrcode.Medium
	case LevelQ:
		return qrcode.High
	case LevelH:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// StdEncoder implements Encoder with github.com/skip2/go-qrcode.
type StdEncoder struct{}

// Compile-time interface check.
var _ Encoder = StdEncoder{}

// Encode returns the module matrix for text with a quiet zone of
// border modules on every side. The standard quiet zone is 4 modules;
// 2 is usually enough for engraved codes.
func (StdEncoder) Encode(text string, level Level, border int) (Matrix, error) {
	if border < 0 {
		return nil, fmt.Errorf("quiet zone border must be >= 0, got %d", border)
	}
	code, err := qrcode.New(text, recovery(level))
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	// The library's own border is fixed at 4 modules; rebuild the quiet
	// zone at the requested width instead.
	code.DisableBorder = true
	return pad(code.Bitmap(), border), nil
}

// pad surrounds the matrix with light quiet-zone modules.
func pad(m [][]bool, border int) Matrix {
	if border == 0 {
		return Matrix(m)
	}
	n := len(m)
	size := n + 2*border
	out := make(Matrix, size)
	for i := range out {
		out[i] = make([]bool, size)
	}
	for r, row := range m {
		copy(out[r+border][border:], row)
	}
	return out
}

// Version computes the QR symbol version from the matrix side length
// and quiet-zone width (version 1 is 21x21 data modules, each version
// adds 4).
func Version(size, border int) int {
	return (size-2*border-17)/4 + 1
}
