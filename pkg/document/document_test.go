package document

import (
	"path/filepath"
	"testing"

	"github.com/trailcurrentoss/reliefkit/pkg/relief"
)

func logoFeature(id FeatureID) Feature {
	p := relief.DefaultLogoParams()
	return Feature{
		ID:     id,
		Result: relief.Result{Kind: relief.KindLogo, Logo: &p},
	}
}

func qrFeature(id FeatureID, url string) Feature {
	p := relief.DefaultQRParams(url)
	return Feature{
		ID:     id,
		Result: relief.Result{Kind: relief.KindQR, QR: &p},
	}
}

func TestUpsertAndFind(t *testing.T) {
	d := New("coin")
	d.Upsert(logoFeature("front-logo"))
	d.Upsert(qrFeature("back-qr", "https://example.com"))

	if len(d.Features) != 2 {
		t.Fatalf("got %d features, want 2", len(d.Features))
	}
	if d.Find("front-logo") == nil || d.Find("back-qr") == nil {
		t.Fatal("features not found by ID")
	}
	if d.Find("absent") != nil {
		t.Error("Find returned a feature for an unknown ID")
	}

	// Upserting an existing ID replaces in place, keeping order.
	edited := logoFeature("front-logo")
	edited.Result.Logo.Diameter = 24
	d.Upsert(edited)
	if len(d.Features) != 2 {
		t.Fatalf("upsert duplicated: %d features", len(d.Features))
	}
	if d.Features[0].ID != "front-logo" {
		t.Error("upsert changed application order")
	}
	if got := d.Find("front-logo").Result.Logo.Diameter; got != 24 {
		t.Errorf("edited diameter = %g, want 24", got)
	}
}

func TestRemove(t *testing.T) {
	d := New("coin")
	d.Upsert(logoFeature("a"))
	d.Upsert(qrFeature("b", "https://example.com"))

	if !d.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if d.Remove("a") {
		t.Error("removing twice should report false")
	}
	if len(d.Features) != 1 || d.Features[0].ID != "b" {
		t.Errorf("unexpected features after remove: %+v", d.Features)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		doc      *Document
		wantCode string
	}{
		{"valid", func() *Document {
			d := New("coin")
			d.Upsert(logoFeature("a"))
			return d
		}(), ""},
		{"empty is valid", New("coin"), ""},
		{"missing body", New(""), "MISSING_BODY"},
		{"missing feature id", func() *Document {
			d := New("coin")
			d.Features = append(d.Features, logoFeature(""))
			return d
		}(), "MISSING_FEATURE_ID"},
		{"duplicate feature id", func() *Document {
			d := New("coin")
			d.Features = append(d.Features, logoFeature("a"), qrFeature("a", "x"))
			return d
		}(), "DUPLICATE_FEATURE_ID"},
		{"invalid parameters", func() *Document {
			d := New("coin")
			d.Features = append(d.Features, Feature{
				ID:     "a",
				Result: relief.Result{Kind: relief.KindLogo},
			})
			return d
		}(), "INVALID_PARAMETERS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.doc.Validate()
			if tt.wantCode == "" {
				if len(errs) != 0 {
					t.Errorf("Validate() = %v, want no errors", errs)
				}
				return
			}
			for _, e := range errs {
				if e.Code == tt.wantCode {
					return
				}
			}
			t.Errorf("Validate() = %v, want code %q", errs, tt.wantCode)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coin.relief.json")

	d := New("coin")
	d.Upsert(logoFeature("front-logo"))
	d.Upsert(qrFeature("back-qr", "https://example.com"))
	if err := d.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Body != "coin" || len(loaded.Features) != 2 {
		t.Fatalf("unexpected document: %+v", loaded)
	}
	qr := loaded.Find("back-qr")
	if qr == nil || qr.Result.QR == nil {
		t.Fatal("qr feature lost in round trip")
	}
	if qr.Result.QR.URL != "https://example.com" {
		t.Errorf("URL = %q after round trip", qr.Result.QR.URL)
	}
	if loaded.SavedAt.IsZero() {
		t.Error("SavedAt not stamped on save")
	}
}

func TestSaveInvalid(t *testing.T) {
	d := New("")
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := d.Save(path); err == nil {
		t.Error("saving an invalid document should fail")
	}
}

func TestLoadOrNew(t *testing.T) {
	dir := t.TempDir()

	d, err := LoadOrNew(filepath.Join(dir, "absent.json"), "coin")
	if err != nil {
		t.Fatalf("LoadOrNew failed: %v", err)
	}
	if d.Body != "coin" || len(d.Features) != 0 {
		t.Errorf("expected a fresh document, got %+v", d)
	}

	path := filepath.Join(dir, "doc.json")
	d.Upsert(logoFeature("a"))
	if err := d.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	again, err := LoadOrNew(path, "ignored")
	if err != nil {
		t.Fatalf("LoadOrNew failed: %v", err)
	}
	if again.Body != "coin" || len(again.Features) != 1 {
		t.Errorf("expected the stored document, got %+v", again)
	}
}
