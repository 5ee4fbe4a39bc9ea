package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailcurrentoss/reliefkit/pkg/relief"
	"github.com/trailcurrentoss/reliefkit/pkg/studio"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigName), []byte(`{}`), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "info", LogLevel())

	assert.Equal(t, relief.DefaultLogoParams(), LogoParams())
	assert.Equal(t, relief.DefaultLogoTextParams(), LogoTextParams())
	assert.Equal(t, relief.DefaultQRParams("https://example.com"), QRParams("https://example.com"))

	assert.Equal(t, 0.1, ExportTolerance())
	assert.Equal(t, "", BlenderPath())
	assert.Equal(t, "", ScenePath())
	assert.Equal(t, studio.DefaultSceneParams(), SceneParams())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", LogLevel())
	assert.Equal(t, relief.DefaultLogoParams(), LogoParams())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"logo": { "diameter": 24, "text": "Trail" },
		"qr": { "emboss": false, "size": 30 },
		"export": { "tolerance": 0.05 },
		"studio": {
			"blenderPath": "/opt/blender/blender",
			"scenePath": "/opt/studio_scene.py",
			"material": "brushed_aluminum",
			"resolutionWidth": 3840,
			"resolutionHeight": 2160,
			"samples": 64
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigName), []byte(cfg), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", LogLevel())

	logo := LogoParams()
	assert.Equal(t, 24.0, logo.Diameter)
	assert.Equal(t, relief.DefaultTotalDepth, logo.TotalDepth)
	assert.Equal(t, "Trail", LogoTextParams().Text)

	qr := QRParams("https://example.com")
	assert.False(t, qr.Emboss)
	assert.Equal(t, 30.0, qr.Size)
	assert.Equal(t, relief.DefaultQRHeight, qr.Height)

	assert.Equal(t, 0.05, ExportTolerance())
	assert.Equal(t, "/opt/blender/blender", BlenderPath())
	assert.Equal(t, "/opt/studio_scene.py", ScenePath())

	scene := SceneParams()
	assert.Equal(t, studio.MaterialBrushedAluminum, scene.Material)
	assert.Equal(t, studio.Resolution{Width: 3840, Height: 2160}, scene.Resolution)
	assert.Equal(t, 64, scene.Samples)
	assert.Equal(t, 85.0, scene.FocalLength)
}

func TestLoad_InvalidJSON(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigName), []byte(`{not json`), 0644))

	err := Load(dir)
	assert.Error(t, err)
}
