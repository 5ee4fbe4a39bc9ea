// Package config loads tool configuration from an optional JSON file
// and seeds the defaults for every relief operation, the STL export,
// and the Blender studio scene.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/trailcurrentoss/reliefkit/pkg/relief"
	"github.com/trailcurrentoss/reliefkit/pkg/studio"
)

// ConfigName is the config file basename (JSON).
const ConfigName = "reliefkit.cfg.json"

// Load reads configuration from configDir and sets default values. A
// missing config file is fine; the defaults stand.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("logo.diameter", relief.DefaultDiameter)
	viper.SetDefault("logo.totalDepth", relief.DefaultTotalDepth)
	viper.SetDefault("logo.mountainRatio", relief.DefaultMountainRatio)
	viper.SetDefault("logo.trailRatio", relief.DefaultTrailRatio)
	viper.SetDefault("logo.boltRatio", relief.DefaultBoltRatio)
	viper.SetDefault("logo.textRatio", relief.DefaultTextRatio)
	viper.SetDefault("logo.text", relief.DefaultText)

	viper.SetDefault("qr.size", relief.DefaultQRSize)
	viper.SetDefault("qr.height", relief.DefaultQRHeight)
	viper.SetDefault("qr.errorCorrection", "M")
	viper.SetDefault("qr.border", relief.DefaultQRBorder)
	viper.SetDefault("qr.emboss", true)

	viper.SetDefault("export.tolerance", 0.1)

	viper.SetDefault("studio.blenderPath", "")
	viper.SetDefault("studio.scenePath", "")
	viper.SetDefault("studio.material", studio.MaterialMatchSource)
	viper.SetDefault("studio.resolutionWidth", 1920)
	viper.SetDefault("studio.resolutionHeight", 1080)
	viper.SetDefault("studio.samples", 256)
	viper.SetDefault("studio.focalLength", 85.0)

	viper.SetConfigName(ConfigName)
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// LogLevel returns the configured log level name.
func LogLevel() string {
	return viper.GetString("logLevel")
}

// LogoParams builds the configured logo deboss record.
func LogoParams() relief.LogoParams {
	return relief.LogoParams{
		Diameter:      viper.GetFloat64("logo.diameter"),
		TotalDepth:    viper.GetFloat64("logo.totalDepth"),
		MountainRatio: viper.GetFloat64("logo.mountainRatio"),
		TrailRatio:    viper.GetFloat64("logo.trailRatio"),
		BoltRatio:     viper.GetFloat64("logo.boltRatio"),
	}
}

// LogoTextParams builds the configured logo-plus-wordmark record.
func LogoTextParams() relief.LogoTextParams {
	return relief.LogoTextParams{
		LogoParams: LogoParams(),
		Text:       viper.GetString("logo.text"),
		TextRatio:  viper.GetFloat64("logo.textRatio"),
	}
}

// QRParams builds the configured QR record for the given URL.
func QRParams(url string) relief.QRParams {
	return relief.QRParams{
		URL:             url,
		Size:            viper.GetFloat64("qr.size"),
		Height:          viper.GetFloat64("qr.height"),
		Emboss:          viper.GetBool("qr.emboss"),
		ErrorCorrection: viper.GetString("qr.errorCorrection"),
		Border:          viper.GetInt("qr.border"),
	}
}

// ExportTolerance returns the STL tessellation tolerance in mm.
func ExportTolerance() float64 {
	return viper.GetFloat64("export.tolerance")
}

// BlenderPath returns the configured Blender executable path, empty
// meaning auto-discovery.
func BlenderPath() string {
	return viper.GetString("studio.blenderPath")
}

// ScenePath returns the configured studio scene script path.
func ScenePath() string {
	return viper.GetString("studio.scenePath")
}

// SceneParams builds the configured Blender scene record.
func SceneParams() studio.SceneParams {
	p := studio.DefaultSceneParams()
	p.Material = viper.GetString("studio.material")
	p.Resolution = studio.Resolution{
		Width:  viper.GetInt("studio.resolutionWidth"),
		Height: viper.GetInt("studio.resolutionHeight"),
	}
	p.Samples = viper.GetInt("studio.samples")
	p.FocalLength = viper.GetFloat64("studio.focalLength")
	return p
}
