package qr

import (
	"github.com/trailcurrentoss/reliefkit/pkg/kernel"
)

// Rect is one merged run of dark modules, axis-aligned in the local
// frame with the QR code centered at the origin.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// Width returns the rectangle's X extent.
func (r Rect) Width() float64 { return r.X2 - r.X1 }

// Height returns the rectangle's Y extent.
func (r Rect) Height() float64 { return r.Y2 - r.Y1 }

// Rasterize merges each row's maximal runs of dark modules into
// rectangles. The code spans size x size mm centered at the origin;
// row 0 is the top edge, so Y decreases with increasing row index.
// An all-light matrix yields nil.
func Rasterize(m Matrix, size float64) []Rect {
	n := m.Size()
	if n == 0 {
		return nil
	}

	moduleSize := size / float64(n)
	half := size / 2

	var rects []Rect
	for row := 0; row < n; row++ {
		col := 0
		for col < n {
			if !m[row][col] {
				col++
				continue
			}
			start := col
			for col < n && m[row][col] {
				col++
			}
			rects = append(rects, Rect{
				X1: -half + float64(start)*moduleSize,
				Y1: half - float64(row+1)*moduleSize,
				X2: -half + float64(col)*moduleSize,
				Y2: half - float64(row)*moduleSize,
			})
		}
	}
	return rects
}

// Profile converts merged rectangles into one extrudable compound
// profile.
func Profile(rects []Rect) kernel.Profile {
	var p kernel.Profile
	for _, r := range rects {
		p.Outers = append(p.Outers, kernel.Contour{
			{r.X1, r.Y1}, {r.X2, r.Y1}, {r.X2, r.Y2}, {r.X1, r.Y2},
		})
	}
	return p
}
