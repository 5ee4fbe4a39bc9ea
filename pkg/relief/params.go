package relief

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Default parameter values shared by the orchestrators and the
// configuration layer.
const (
	DefaultDiameter      = 18.0
	DefaultTotalDepth    = 0.8
	DefaultMountainRatio = 0.55
	DefaultTrailRatio    = 0.30
	DefaultBoltRatio     = 0.15
	DefaultTextRatio     = 1.0

	DefaultQRSize   = 20.0
	DefaultQRHeight = 0.5
	DefaultQRBorder = 2

	// DefaultText is the brand wordmark placed beside the logo.
	DefaultText = "TrailCurrent"

	// Text layout ratios measured from the site header artwork.
	TextCapHeightRatio = 0.55 // cap height as a fraction of the logo diameter
	TextGapRatio       = 0.23 // gap between circle and text as a fraction of diameter
)

// LogoParams is the full input record for a logo deboss. All ratios
// are fractions of TotalDepth, not absolute depths, so one intensity
// knob rescales the whole relief while ratios keep relative layer
// prominence. Ratios are deliberately not clamped to [0,1] or
// validated against each other; choosing sane ranges is the caller's
// concern.
type LogoParams struct {
	Diameter      float64 `json:"diameter"`      // outer circle diameter (mm)
	TotalDepth    float64 `json:"totalDepth"`    // background cut depth (mm)
	MountainRatio float64 `json:"mountainRatio"` // mountain depth fraction
	TrailRatio    float64 `json:"trailRatio"`    // trail depth fraction
	BoltRatio     float64 `json:"boltRatio"`     // bolt depth fraction
	XOffset       float64 `json:"xOffset"`       // in-plane offset along U (mm)
	YOffset       float64 `json:"yOffset"`       // in-plane offset along V (mm)
	Rotation      float64 `json:"rotation"`      // rotation on the face (degrees)
}

// DefaultLogoParams returns the standard logo deboss record.
func DefaultLogoParams() LogoParams {
	return LogoParams{
		Diameter:      DefaultDiameter,
		TotalDepth:    DefaultTotalDepth,
		MountainRatio: DefaultMountainRatio,
		TrailRatio:    DefaultTrailRatio,
		BoltRatio:     DefaultBoltRatio,
	}
}

// LogoTextParams extends LogoParams with the wordmark layer.
type LogoTextParams struct {
	LogoParams
	Text      string  `json:"text"`
	TextRatio float64 `json:"textRatio"` // text depth fraction of TotalDepth
}

// DefaultLogoTextParams returns the standard logo-plus-wordmark record.
func DefaultLogoTextParams() LogoTextParams {
	return LogoTextParams{
		LogoParams: DefaultLogoParams(),
		Text:       DefaultText,
		TextRatio:  DefaultTextRatio,
	}
}

// QRParams is the full input record for a QR emboss or deboss.
type QRParams struct {
	URL             string  `json:"url"`
	Size            float64 `json:"size"`   // side length (mm)
	Height          float64 `json:"height"` // protrusion or recess depth (mm)
	Emboss          bool    `json:"emboss"` // true fuses, false cuts
	ErrorCorrection string  `json:"errorCorrection"`
	Border          int     `json:"border"` // quiet zone width in modules
	XOffset         float64 `json:"xOffset"`
	YOffset         float64 `json:"yOffset"`
}

// DefaultQRParams returns the standard QR record for the given URL.
func DefaultQRParams(url string) QRParams {
	return QRParams{
		URL:             url,
		Size:            DefaultQRSize,
		Height:          DefaultQRHeight,
		Emboss:          true,
		ErrorCorrection: "M",
		Border:          DefaultQRBorder,
	}
}

// Kind tags a stored relief result.
type Kind string

// Result kinds.
const (
	KindLogo     Kind = "logo"
	KindLogoText Kind = "logotext"
	KindQR       Kind = "qr"
)

// Result is the persisted record of one relief operation: the tagged
// parameter variant plus the source body and face identifiers. A later
// re-edit loads this record, re-runs the pure Apply, and replaces the
// prior result; geometry is never incrementally mutated.
type Result struct {
	Kind      Kind            `json:"kind"`
	Logo      *LogoParams     `json:"logo,omitempty"`
	LogoText  *LogoTextParams `json:"logotext,omitempty"`
	QR        *QRParams       `json:"qr,omitempty"`
	BodyID    string          `json:"bodyId,omitempty"`
	FaceID    string          `json:"faceId,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Validate checks that exactly the parameter variant matching Kind is
// present.
func (r Result) Validate() error {
	switch r.Kind {
	case KindLogo:
		if r.Logo == nil {
			return fmt.Errorf("result kind %q has no logo parameters", r.Kind)
		}
	case KindLogoText:
		if r.LogoText == nil {
			return fmt.Errorf("result kind %q has no logotext parameters", r.Kind)
		}
	case KindQR:
		if r.QR == nil {
			return fmt.Errorf("result kind %q has no qr parameters", r.Kind)
		}
	default:
		return fmt.Errorf("unknown result kind %q", r.Kind)
	}

	have := 0
	if r.Logo != nil {
		have++
	}
	if r.LogoText != nil {
		have++
	}
	if r.QR != nil {
		have++
	}
	if have != 1 {
		return fmt.Errorf("result kind %q carries %d parameter variants, want exactly 1", r.Kind, have)
	}
	return nil
}

// Save writes the record as JSON.
func (r Result) Save(path string) error {
	if err := r.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// LoadResult reads a stored record back for re-edit.
func LoadResult(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read result: %w", err)
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, fmt.Errorf("decode result: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Result{}, err
	}
	return r, nil
}
