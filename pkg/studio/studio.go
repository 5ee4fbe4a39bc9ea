// Package studio launches an exported mesh into an external Blender
// "studio" scene: it locates the Blender executable, builds the
// headless-python command line, and writes a launcher script. The
// scene itself (cyclorama backdrop, three-point lighting, camera) is
// assembled by a separate data-driven scene script; this package only
// owns the parameter contract.
package studio

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Material preset keys understood by the scene script.
const (
	MaterialMatchSource     = "match_freecad"
	MaterialWhitePlastic    = "white_plastic"
	MaterialDarkGreyPlastic = "dark_grey_plastic"
	MaterialBrushedAluminum = "brushed_aluminum"
	MaterialRaw             = "raw"
)

// Materials lists the preset keys in menu order.
var Materials = []string{
	MaterialMatchSource,
	MaterialWhitePlastic,
	MaterialDarkGreyPlastic,
	MaterialBrushedAluminum,
	MaterialRaw,
}

// Resolution is a render resolution preset.
type Resolution struct {
	Width  int
	Height int
}

// Resolutions lists the render presets in menu order: Full HD, QHD,
// 4K UHD, square.
var Resolutions = []Resolution{
	{1920, 1080},
	{2560, 1440},
	{3840, 2160},
	{1080, 1080},
}

// SceneParams is the flat parameter set handed to the scene script.
type SceneParams struct {
	Material    string     `json:"material"`
	Color       [3]float64 `json:"color"` // RGB, 0-1
	Resolution  Resolution `json:"resolution"`
	Samples     int        `json:"samples"`
	FocalLength float64    `json:"focalLength"` // mm
}

// DefaultSceneParams returns product-photography defaults: 85 mm is
// a typical product focal length.
func DefaultSceneParams() SceneParams {
	return SceneParams{
		Material:    MaterialMatchSource,
		Color:       [3]float64{0.8, 0.8, 0.8},
		Resolution:  Resolutions[0],
		Samples:     256,
		FocalLength: 85,
	}
}

// wellKnownPaths are checked when blender is not on PATH.
var wellKnownPaths = []string{
	"/snap/bin/blender",
	"/usr/bin/blender",
	"/usr/local/bin/blender",
	"/opt/blender/blender",
}

// FindBlender locates the Blender executable via PATH lookup and the
// well-known install locations.
func FindBlender() (string, error) {
	if path, err := exec.LookPath("blender"); err == nil {
		return path, nil
	}
	for _, candidate := range wellKnownPaths {
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode()&0o111 != 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("blender executable not found on PATH or in %s", strings.Join(wellKnownPaths, ", "))
}

// Command builds the full Blender command line: blender runs the scene
// script headlessly and the script reads everything after the "--"
// separator.
func Command(blenderPath, scriptPath, stlPath string, p SceneParams) []string {
	color := fmt.Sprintf("%.3f,%.3f,%.3f", p.Color[0], p.Color[1], p.Color[2])
	return []string{
		blenderPath,
		"--python", scriptPath,
		"--",
		"--stl", stlPath,
		"--material", p.Material,
		"--freecad-color", color,
		"--resolution", strconv.Itoa(p.Resolution.Width), strconv.Itoa(p.Resolution.Height),
		"--samples", strconv.Itoa(p.Samples),
		"--focal-length", strconv.FormatFloat(p.FocalLength, 'f', -1, 64),
	}
}

// shellQuote quotes one token for a POSIX shell. Plain tokens pass
// through bare.
func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return false
		case strings.ContainsRune("-_./=:", r):
			return false
		}
		return true
	}) == -1 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// WriteLauncher writes an executable shell script in dir that opens
// the scene in Blender, and returns the script path.
func WriteLauncher(dir string, args []string) (string, error) {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = shellQuote(a)
	}
	script := "#!/bin/sh\n# Open the exported model in a Blender studio scene.\n# Press F12 in Blender to render.\nexec " +
		strings.Join(quoted, " ") + "\n"

	path := filepath.Join(dir, "open_in_blender.sh")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		return "", fmt.Errorf("write launcher: %w", err)
	}
	return path, nil
}
