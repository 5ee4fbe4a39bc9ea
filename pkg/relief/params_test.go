package relief

import (
	"math"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultLogoParams()
	if p.Diameter != DefaultDiameter || p.TotalDepth != DefaultTotalDepth {
		t.Errorf("unexpected logo defaults: %+v", p)
	}
	if sum := p.MountainRatio + p.TrailRatio + p.BoltRatio; math.Abs(sum-1) > 1e-12 {
		t.Errorf("default layer ratios sum to %g, want 1", sum)
	}

	pt := DefaultLogoTextParams()
	if pt.Text != DefaultText || pt.TextRatio != DefaultTextRatio {
		t.Errorf("unexpected logotext defaults: %+v", pt)
	}

	q := DefaultQRParams("https://example.com")
	if q.URL != "https://example.com" || q.Size != DefaultQRSize || !q.Emboss {
		t.Errorf("unexpected qr defaults: %+v", q)
	}
	if q.Border != DefaultQRBorder || q.ErrorCorrection != "M" {
		t.Errorf("unexpected qr defaults: %+v", q)
	}
}

func TestResultValidate(t *testing.T) {
	logo := DefaultLogoParams()
	logoText := DefaultLogoTextParams()
	qr := DefaultQRParams("https://example.com")

	tests := []struct {
		name    string
		r       Result
		wantErr bool
	}{
		{"logo ok", Result{Kind: KindLogo, Logo: &logo}, false},
		{"logotext ok", Result{Kind: KindLogoText, LogoText: &logoText}, false},
		{"qr ok", Result{Kind: KindQR, QR: &qr}, false},
		{"missing variant", Result{Kind: KindLogo}, true},
		{"wrong variant", Result{Kind: KindLogo, QR: &qr}, true},
		{"two variants", Result{Kind: KindLogo, Logo: &logo, QR: &qr}, true},
		{"unknown kind", Result{Kind: "sticker", Logo: &logo}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResultSaveLoad(t *testing.T) {
	params := DefaultLogoTextParams()
	params.Rotation = 15
	params.Text = "Trail"
	r := Result{
		Kind:      KindLogoText,
		LogoText:  &params,
		BodyID:    "Body",
		FaceID:    "Face6",
		CreatedAt: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	}

	path := filepath.Join(t.TempDir(), "logo.relief.json")
	if err := r.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadResult(path)
	if err != nil {
		t.Fatalf("LoadResult failed: %v", err)
	}
	if loaded.Kind != KindLogoText {
		t.Errorf("Kind = %q, want %q", loaded.Kind, KindLogoText)
	}
	if loaded.LogoText == nil {
		t.Fatal("LogoText parameters missing after round trip")
	}
	if *loaded.LogoText != params {
		t.Errorf("parameters = %+v, want %+v", *loaded.LogoText, params)
	}
	if loaded.BodyID != "Body" || loaded.FaceID != "Face6" {
		t.Errorf("identifiers = %q/%q, want Body/Face6", loaded.BodyID, loaded.FaceID)
	}
	if !loaded.CreatedAt.Equal(r.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", loaded.CreatedAt, r.CreatedAt)
	}
}

func TestResultSaveInvalid(t *testing.T) {
	r := Result{Kind: KindLogo}
	path := filepath.Join(t.TempDir(), "bad.relief.json")
	if err := r.Save(path); err == nil {
		t.Error("saving an invalid result should fail")
	}
}

func TestLoadResultMissing(t *testing.T) {
	if _, err := LoadResult(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("loading a missing file should fail")
	}
}
