// Package document stores applied relief features as a per-body
// document: each feature keeps the full parameter record of its
// operation so a later edit reloads the parameters, re-runs the pure
// Apply, and replaces the previous geometry.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/trailcurrentoss/reliefkit/pkg/relief"
)

// FeatureID is a stable identifier for a relief feature within its
// document.
type FeatureID string

// Feature is one applied relief operation.
type Feature struct {
	ID     FeatureID     `json:"id"`
	Result relief.Result `json:"result"`
}

// Document is the ordered set of relief features applied to one body.
// Order is application order; re-running the features in order against
// the pristine body reproduces the final solid.
type Document struct {
	Body     string    `json:"body"`
	Features []Feature `json:"features"`
	SavedAt  time.Time `json:"savedAt"`
}

// New returns an empty document for the named body.
func New(body string) *Document {
	return &Document{Body: body}
}

// Find returns the feature with the given ID, or nil.
func (d *Document) Find(id FeatureID) *Feature {
	for i := range d.Features {
		if d.Features[i].ID == id {
			return &d.Features[i]
		}
	}
	return nil
}

// Upsert replaces the feature with the same ID, keeping its position
// in application order, or appends a new one.
func (d *Document) Upsert(f Feature) {
	if existing := d.Find(f.ID); existing != nil {
		*existing = f
		return
	}
	d.Features = append(d.Features, f)
}

// Remove deletes the feature with the given ID and reports whether it
// was present.
func (d *Document) Remove(id FeatureID) bool {
	for i := range d.Features {
		if d.Features[i].ID == id {
			d.Features = append(d.Features[:i], d.Features[i+1:]...)
			return true
		}
	}
	return false
}

// ValidationError represents a document validation failure.
type ValidationError struct {
	Code      string
	Message   string
	FeatureID FeatureID
}

func (e ValidationError) Error() string {
	context := ""
	if e.FeatureID != "" {
		context = fmt.Sprintf(" (feature: %s)", e.FeatureID)
	}
	return fmt.Sprintf("%s: %s%s", e.Code, e.Message, context)
}

// Validate checks the whole document and returns every failure found
// rather than stopping at the first.
func (d *Document) Validate() []ValidationError {
	var errors []ValidationError

	if d.Body == "" {
		errors = append(errors, ValidationError{
			Code:    "MISSING_BODY",
			Message: "document has no body identifier",
		})
	}

	seen := make(map[FeatureID]bool, len(d.Features))
	for _, f := range d.Features {
		if f.ID == "" {
			errors = append(errors, ValidationError{
				Code:    "MISSING_FEATURE_ID",
				Message: "feature has no identifier",
			})
		} else if seen[f.ID] {
			errors = append(errors, ValidationError{
				Code:      "DUPLICATE_FEATURE_ID",
				Message:   "feature identifier is used more than once",
				FeatureID: f.ID,
			})
		}
		seen[f.ID] = true

		if err := f.Result.Validate(); err != nil {
			errors = append(errors, ValidationError{
				Code:      "INVALID_PARAMETERS",
				Message:   err.Error(),
				FeatureID: f.ID,
			})
		}
	}

	return errors
}

// Save validates the document and writes it as JSON.
func (d *Document) Save(path string) error {
	if errs := d.Validate(); len(errs) > 0 {
		return fmt.Errorf("document is invalid: %s", errs[0])
	}
	d.SavedAt = time.Now()
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// Load reads a document back and validates it.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if errs := d.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("document is invalid: %s", errs[0])
	}
	return &d, nil
}

// LoadOrNew reads the document at path, or starts a fresh one for the
// body when the file does not exist yet.
func LoadOrNew(path, body string) (*Document, error) {
	d, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(body), nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}
