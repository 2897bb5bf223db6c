package descriptor

import (
	"fmt"
	"strconv"
	"strings"
)

// Rect is an exact pixel rectangle. The proprietary format serializes it as
// {x y 0 width height}.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// RGBA is a color in the 0-1 component form both assemblers emit.
type RGBA struct {
	R, G, B, A float64
}

// String renders the color as the space-separated "r g b a" token.
func (c RGBA) String() string {
	parts := make([]string, 4)
	for i, v := range []float64{c.R, c.G, c.B, c.A} {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, " ")
}

// Hex renders the color as an RRGGBB hex string (office format).
func (c RGBA) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", int(c.R*255+0.5), int(c.G*255+0.5), int(c.B*255+0.5))
}

// ParseHexColor converts "#RRGGBB", "#RRGGBBAA", or "0xRRGGBB" into RGBA.
func ParseHexColor(s string) (RGBA, error) {
	hexPart := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	if len(hexPart) != 6 && len(hexPart) != 8 {
		return RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	n, err := strconv.ParseUint(hexPart, 16, 64)
	if err != nil {
		return RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	c := RGBA{A: 1}
	if len(hexPart) == 8 {
		c.A = float64(n&0xFF) / 255
		n >>= 8
	}
	c.B = float64(n&0xFF) / 255
	c.G = float64((n>>8)&0xFF) / 255
	c.R = float64((n>>16)&0xFF) / 255
	return c, nil
}

// Resolved is the single source of truth for one positioned slide in both
// output formats.
type Resolved struct {
	Text       string
	Label      string
	MediaPath  string
	Fill       *RGBA // nil: transparent text-only overlay
	TextColor  *RGBA // office format only; nil: configured default
	FontFamily string
	FontBold   bool

	PP6Rect     Rect
	PP6FontSize int

	OfficeRect     Rect
	OfficeFontSize int
}

// Resolve computes both format rectangles from one entry. The proprietary
// rectangle is the descriptor verbatim; the office rectangle applies the
// cross-format offsets, and the office font size applies the scale factor.
func Resolve(e Entry) (*Resolved, error) {
	d := e.Descriptor
	r := &Resolved{
		Text:       d.Text,
		Label:      d.Label,
		MediaPath:  e.MediaPath,
		FontFamily: d.FontFamily,
		FontBold:   d.FontBold,
		PP6Rect: Rect{
			X:      d.X,
			Y:      d.Y,
			Width:  d.Width,
			Height: d.Height,
		},
		PP6FontSize: d.FontSize,
		OfficeRect: Rect{
			X:      d.X + d.XOffset,
			Y:      d.Y + d.YOffset,
			Width:  d.Width,
			Height: d.Height,
		},
		OfficeFontSize: int(float64(d.FontSize) * d.FontScale),
	}

	if e.MediaPath == "" && d.BackgroundColor != "" {
		fill, err := ParseHexColor(d.BackgroundColor)
		if err != nil {
			return nil, &Error{Path: e.Path, Err: err}
		}
		r.Fill = &fill
	}
	if d.Color != "" {
		tc, err := ParseHexColor(d.Color)
		if err != nil {
			return nil, &Error{Path: e.Path, Err: err}
		}
		r.TextColor = &tc
	}
	return r, nil
}
