package qr

import (
	"math"
	"testing"
)

func TestStdEncoder(t *testing.T) {
	tests := []struct {
		name   string
		border int
	}{
		{"no quiet zone", 0},
		{"engraving quiet zone", 2},
		{"standard quiet zone", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := StdEncoder{}.Encode("https://example.com", LevelM, tt.border)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			n := m.Size()
			if n == 0 {
				t.Fatal("empty matrix")
			}
			for i, row := range m {
				if len(row) != n {
					t.Fatalf("row %d has %d modules, matrix is not square (n=%d)", i, len(row), n)
				}
			}
			// Side length minus the quiet zone must be a valid symbol
			// size: 17 + 4*version.
			data := n - 2*tt.border
			if (data-17)%4 != 0 || data < 21 {
				t.Errorf("data area %d modules is not a valid symbol size", data)
			}
			if v := Version(n, tt.border); v < 1 || v > 40 {
				t.Errorf("Version(%d, %d) = %d, out of range", n, tt.border, v)
			}
			if m.DarkCount() == 0 {
				t.Error("encoded matrix has no dark modules")
			}
			// The quiet zone stays light.
			for b := 0; b < tt.border; b++ {
				for i := 0; i < n; i++ {
					if m[b][i] || m[n-1-b][i] || m[i][b] || m[i][n-1-b] {
						t.Fatalf("dark module in quiet zone ring %d", b)
					}
				}
			}
		})
	}
}

func TestStdEncoderHigherLevelGrowsSymbol(t *testing.T) {
	const text = "https://example.com/some/longer/path"
	low, err := StdEncoder{}.Encode(text, LevelL, 0)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	high, err := StdEncoder{}.Encode(text, LevelH, 0)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if high.Size() <= low.Size() {
		t.Errorf("level H symbol (%d) not larger than level L (%d)", high.Size(), low.Size())
	}
}

func TestStdEncoderNegativeBorder(t *testing.T) {
	if _, err := (StdEncoder{}).Encode("x", LevelM, -1); err == nil {
		t.Error("negative border should fail")
	}
}

func TestVersion(t *testing.T) {
	tests := []struct {
		size, border, want int
	}{
		{21, 0, 1},
		{25, 0, 2},
		{29, 2, 2},
		{177, 0, 40},
	}
	for _, tt := range tests {
		if got := Version(tt.size, tt.border); got != tt.want {
			t.Errorf("Version(%d, %d) = %d, want %d", tt.size, tt.border, got, tt.want)
		}
	}
}

func TestRasterizeMergesRuns(t *testing.T) {
	m := Matrix{
		{true, true, false, true},
		{false, false, false, false},
		{true, true, true, true},
		{false, true, true, false},
	}
	rects := Rasterize(m, 4) // module size 1mm
	if len(rects) != 4 {
		t.Fatalf("got %d rects, want 4", len(rects))
	}

	// Row 0 occupies the top band y in [1, 2].
	r := rects[0]
	if r.X1 != -2 || r.X2 != 0 || r.Y1 != 1 || r.Y2 != 2 {
		t.Errorf("first run = %+v, want {-2 1 0 2}", r)
	}
	// Row 2 merges into one full-width run.
	r = rects[2]
	if r.X1 != -2 || r.X2 != 2 || r.Width() != 4 {
		t.Errorf("full row run = %+v, want x in [-2, 2]", r)
	}

	// Total rect area equals dark count times module area.
	area := 0.0
	for _, r := range rects {
		area += r.Width() * r.Height()
	}
	want := float64(m.DarkCount())
	if math.Abs(area-want) > 1e-12 {
		t.Errorf("total area = %g, want %g", area, want)
	}
}

func TestRasterizeRoundTrip(t *testing.T) {
	m, err := StdEncoder{}.Encode("https://example.com", LevelM, 2)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	const size = 20.0
	rects := Rasterize(m, size)

	// Reconstruct the matrix by sampling each module center.
	n := m.Size()
	moduleSize := size / float64(n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			x := -size/2 + (float64(col)+0.5)*moduleSize
			y := size/2 - (float64(row)+0.5)*moduleSize
			covered := false
			for _, r := range rects {
				if x > r.X1 && x < r.X2 && y > r.Y1 && y < r.Y2 {
					covered = true
					break
				}
			}
			if covered != m[row][col] {
				t.Fatalf("module (%d,%d): covered=%v, matrix=%v", row, col, covered, m[row][col])
			}
		}
	}
}

func TestRasterizeEmpty(t *testing.T) {
	if rects := Rasterize(nil, 10); rects != nil {
		t.Errorf("nil matrix: got %d rects, want none", len(rects))
	}
	allLight := Matrix{{false, false}, {false, false}}
	if rects := Rasterize(allLight, 10); rects != nil {
		t.Errorf("all-light matrix: got %d rects, want none", len(rects))
	}
}

func TestProfileFromRects(t *testing.T) {
	rects := []Rect{
		{X1: 0, Y1: 0, X2: 2, Y2: 1},
		{X1: -3, Y1: -1, X2: -1, Y2: 0},
	}
	p := Profile(rects)
	if len(p.Outers) != 2 || len(p.Holes) != 0 {
		t.Fatalf("profile has %d outers and %d holes, want 2 and 0",
			len(p.Outers), len(p.Holes))
	}
	if len(p.Outers[0]) != 4 {
		t.Errorf("outer contour has %d points, want 4", len(p.Outers[0]))
	}
}
