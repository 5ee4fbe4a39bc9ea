package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/trailcurrentoss/reliefkit/pkg/kernel"
	sdfxkernel "github.com/trailcurrentoss/reliefkit/pkg/kernel/sdfx"
	"github.com/trailcurrentoss/reliefkit/pkg/qr"
	"github.com/trailcurrentoss/reliefkit/pkg/relief"
)

// App wires the geometry kernel, the QR encoder capability and the
// relief orchestrators together behind one front end.
type App struct {
	kernel   kernel.Kernel
	log      zerolog.Logger
	logo     *relief.LogoDeboss
	logoText *relief.LogoTextDeboss
	qrOp     *relief.QREmboss
}

// NewApp creates an App on the sdfx kernel with the standard QR
// encoder.
func NewApp(log zerolog.Logger) *App {
	k := sdfxkernel.New()
	return &App{
		kernel:   k,
		log:      log,
		logo:     relief.NewLogoDeboss(k, log),
		logoText: relief.NewLogoTextDeboss(k, log),
		qrOp:     relief.NewQREmboss(k, qr.StdEncoder{}, log),
	}
}

// ApplyLogo debosses the layered logo and returns the new solid with
// its parameter record.
func (a *App) ApplyLogo(base kernel.Solid, face relief.Face, p relief.LogoParams) (kernel.Solid, relief.Result, error) {
	solid, err := a.logo.Apply(base, face, p)
	if err != nil {
		return nil, relief.Result{}, err
	}
	return solid, relief.Result{Kind: relief.KindLogo, Logo: &p}, nil
}

// ApplyLogoText debosses the logo plus wordmark.
func (a *App) ApplyLogoText(base kernel.Solid, face relief.Face, p relief.LogoTextParams) (kernel.Solid, relief.Result, error) {
	solid, err := a.logoText.Apply(base, face, p)
	if err != nil {
		return nil, relief.Result{}, err
	}
	return solid, relief.Result{Kind: relief.KindLogoText, LogoText: &p}, nil
}

// ApplyQR embosses or debosses the QR code and logs the resulting
// module size.
func (a *App) ApplyQR(base kernel.Solid, face relief.Face, p relief.QRParams) (kernel.Solid, relief.Result, error) {
	solid, moduleSize, err := a.qrOp.Apply(base, face, p)
	if err != nil {
		return nil, relief.Result{}, err
	}
	a.log.Info().Float64("moduleSizeMM", moduleSize).Msg("QR module size")
	return solid, relief.Result{Kind: relief.KindQR, QR: &p}, nil
}

// Export writes the solid as STL at the given tessellation tolerance.
func (a *App) Export(s kernel.Solid, path string, tolerance float64) error {
	if err := a.kernel.WriteSTL(s, path, tolerance); err != nil {
		return err
	}
	a.log.Info().Str("path", path).Float64("tolerance", tolerance).Msg("exported STL")
	return nil
}

// MeshData is the JSON-serializable preview mesh format.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"`
}

// WritePreview tessellates the solid and writes the preview mesh as
// JSON for external viewers.
func (a *App) WritePreview(s kernel.Solid, name, path string) error {
	mesh, err := a.kernel.ToMesh(s)
	if err != nil {
		return fmt.Errorf("preview mesh: %w", err)
	}
	data, err := json.Marshal(MeshData{
		Vertices: mesh.Vertices,
		Normals:  mesh.Normals,
		Indices:  mesh.Indices,
		Name:     name,
	})
	if err != nil {
		return fmt.Errorf("encode preview mesh: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write preview mesh: %w", err)
	}
	a.log.Info().Str("path", path).Int("triangles", mesh.TriangleCount()).Msg("wrote preview mesh")
	return nil
}
