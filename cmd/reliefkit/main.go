// Command reliefkit debosses the brand logo, logo plus wordmark, or a
// QR code onto a demonstration solid, exports the result as STL, and
// optionally prepares a Blender studio scene launcher for it. Applied
// parameters are stored in a relief document next to the STL so an
// operation can be reloaded and re-run with edited values.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/rs/zerolog"

	"github.com/trailcurrentoss/reliefkit/pkg/config"
	"github.com/trailcurrentoss/reliefkit/pkg/document"
	"github.com/trailcurrentoss/reliefkit/pkg/kernel"
	"github.com/trailcurrentoss/reliefkit/pkg/relief"
	"github.com/trailcurrentoss/reliefkit/pkg/studio"
)

func main() {
	configDir := flag.String("config", ".", "directory containing "+config.ConfigName)
	op := flag.String("op", "logo", "operation: logo, logotext, or qr")
	out := flag.String("out", "relief.stl", "output STL path")
	url := flag.String("url", "https://trailcurrent.com", "data to encode (qr operation)")
	preview := flag.String("preview", "", "also write a JSON preview mesh to this path")
	blender := flag.Bool("blender", false, "write a Blender studio launcher next to the STL")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := config.Load(*configDir); err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if level, err := zerolog.ParseLevel(config.LogLevel()); err == nil {
		log = log.Level(level)
	}

	if err := run(log, *op, *out, *url, *preview, *blender); err != nil {
		log.Fatal().Err(err).Str("op", *op).Msg("relief operation failed")
	}
}

func run(log zerolog.Logger, op, out, url, preview string, blender bool) error {
	app := NewApp(log)

	base, face := demoTarget(app.kernel, op)

	var (
		result kernel.Solid
		record relief.Result
		err    error
	)
	switch op {
	case "logo":
		result, record, err = app.ApplyLogo(base, face, config.LogoParams())
	case "logotext":
		result, record, err = app.ApplyLogoText(base, face, config.LogoTextParams())
	case "qr":
		result, record, err = app.ApplyQR(base, face, config.QRParams(url))
	default:
		return fmt.Errorf("unknown operation %q (want logo, logotext, or qr)", op)
	}
	if err != nil {
		return err
	}

	if err := app.Export(result, out, config.ExportTolerance()); err != nil {
		return err
	}
	if preview != "" {
		if err := app.WritePreview(result, op, preview); err != nil {
			return err
		}
	}

	if err := storeRecord(log, out, op, record); err != nil {
		return err
	}

	if blender {
		if err := prepareStudio(log, out); err != nil {
			return err
		}
	}
	return nil
}

// storeRecord upserts the operation's parameter record into the relief
// document next to the STL, creating the document on first use.
func storeRecord(log zerolog.Logger, out, op string, record relief.Result) error {
	record.BodyID = "demo-body"
	record.FaceID = "top"
	record.CreatedAt = time.Now()

	docPath := strings.TrimSuffix(out, filepath.Ext(out)) + ".relief.json"
	doc, err := document.LoadOrNew(docPath, record.BodyID)
	if err != nil {
		return err
	}
	doc.Upsert(document.Feature{ID: document.FeatureID(op), Result: record})
	if err := doc.Save(docPath); err != nil {
		return err
	}
	log.Info().Str("path", docPath).Int("features", len(doc.Features)).Msg("stored relief parameters")
	return nil
}

// demoTarget builds the demonstration solid and its top face: a 50 mm
// cube for the logo operations, a thinner plate for QR codes.
func demoTarget(k kernel.Kernel, op string) (kernel.Solid, relief.Face) {
	if op == "qr" {
		base := k.Box(40, 40, 3)
		return base, relief.PlanarFace{
			Center: v3.Vec{Z: 1.5},
			Normal: v3.Vec{Z: 1},
			Width:  40,
			Height: 40,
		}
	}
	base := k.Box(50, 50, 50)
	return base, relief.PlanarFace{
		Center: v3.Vec{Z: 25},
		Normal: v3.Vec{Z: 1},
		Width:  50,
		Height: 50,
	}
}

// prepareStudio writes the Blender launcher script next to the STL.
func prepareStudio(log zerolog.Logger, stlPath string) error {
	blenderPath := config.BlenderPath()
	if blenderPath == "" {
		found, err := studio.FindBlender()
		if err != nil {
			return err
		}
		blenderPath = found
	}

	scenePath := config.ScenePath()
	if scenePath == "" {
		return fmt.Errorf("studio.scenePath is not configured; point it at the studio scene script")
	}

	args := studio.Command(blenderPath, scenePath, stlPath, config.SceneParams())
	launcher, err := studio.WriteLauncher(filepath.Dir(stlPath), args)
	if err != nil {
		return err
	}
	log.Info().Str("path", launcher).Msg("wrote Blender launcher")
	return nil
}
