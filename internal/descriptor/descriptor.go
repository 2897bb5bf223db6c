// Package descriptor loads the user-authored JSON slide descriptors and
// resolves each one into the exact-pixel geometry both output formats
// consume. Resolution happens once; the proprietary and office assemblers
// never recompute position or scale independently, which is what keeps the
// two formats visually synchronized.
package descriptor

import (
	"encoding/json"
	"fmt"
	"os"
)

// Geometry defaults applied when the descriptor omits a field.
const (
	DefaultWidth    = 374
	DefaultHeight   = 55
	DefaultFontSize = 59
)

// Descriptor is one parsed JSON slide specification with defaults applied.
type Descriptor struct {
	Text            string
	X               int
	Y               int
	Width           int
	Height          int
	FontSize        int
	FontFamily      string
	FontBold        bool
	Color           string // office format only
	FontScale       float64
	XOffset         int
	YOffset         int
	Media           string // media file name override
	BackgroundColor string // hex fill fallback when no media resolves
	Label           string
}

// rawDescriptor distinguishes absent fields from zero values.
type rawDescriptor struct {
	Text            string   `json:"text"`
	X               int      `json:"x"`
	Y               int      `json:"y"`
	Width           *int     `json:"width"`
	Height          *int     `json:"height"`
	FontSize        *int     `json:"fontSize"`
	FontFamily      string   `json:"fontFamily"`
	FontBold        bool     `json:"fontBold"`
	Color           string   `json:"color"`
	FontScale       *float64 `json:"pptxFontScale"`
	XOffset         int      `json:"pptxXoffset"`
	YOffset         int      `json:"pptxYoffset"`
	Media           string   `json:"media"`
	BackgroundColor string   `json:"backgroundColor"`
	Label           string   `json:"label"`
}

// Error reports an unusable descriptor file.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("descriptor %s: %v", e.Path, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Stage classifies the error for engine reporting.
func (e *Error) Stage() string { return "parsing" }

// Load reads and decodes one descriptor file, applying defaults.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	var raw rawDescriptor
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	d := &Descriptor{
		Text:            raw.Text,
		X:               raw.X,
		Y:               raw.Y,
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		FontSize:        DefaultFontSize,
		FontFamily:      raw.FontFamily,
		FontBold:        raw.FontBold,
		Color:           raw.Color,
		FontScale:       1.0,
		XOffset:         raw.XOffset,
		YOffset:         raw.YOffset,
		Media:           raw.Media,
		BackgroundColor: raw.BackgroundColor,
		Label:           raw.Label,
	}
	if raw.Width != nil {
		d.Width = *raw.Width
	}
	if raw.Height != nil {
		d.Height = *raw.Height
	}
	if raw.FontSize != nil {
		d.FontSize = *raw.FontSize
	}
	if raw.FontScale != nil {
		d.FontScale = *raw.FontScale
	}
	return d, nil
}

// Entry pairs a descriptor with its resolved media file. MediaPath is empty
// when the slide relies on a background fill color instead.
type Entry struct {
	Path       string
	Descriptor *Descriptor
	MediaPath  string
}
