// Package pptx assembles PowerPoint slide decks from classified content
// units by writing the OOXML parts directly.
//
// Geometry is pixel-authored at 96 DPI and converted to EMUs on the way
// out (9525 EMU per pixel). Background images are aspect-fit against the
// canvas, never stretched. Video backgrounds cannot be embedded in a deck;
// they are skipped with a warning.
package pptx

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"chorale/internal/classify"
	"chorale/internal/descriptor"
	"chorale/internal/media"
	"chorale/internal/songs"
)

// Conversion factors the office format dictates.
const (
	emuPerPixel = 9525  // 96 DPI
	emuPerPoint = 12700 // font metrics and margins
)

// Rendering defaults.
const (
	DefaultWidth      = 1024
	DefaultHeight     = 768
	DefaultFontFamily = "Arial"
	DefaultFontSize   = 40  // points
	DefaultFontColor  = "FFFFFF"
	DefaultTopMargin  = 100 // points
)

// Shadow describes the text outer-shadow effect. Offsets are in points.
type Shadow struct {
	Enabled bool
	OffsetX int
	OffsetY int
	Blur    float64
}

// DefaultShadow is applied when Options.Shadow is nil.
var DefaultShadow = Shadow{Enabled: true, OffsetX: 2, OffsetY: 2, Blur: 3}

// Options control deck assembly. Zero values take the package defaults.
type Options struct {
	Width  int
	Height int

	FontFamily string
	FontSize   int    // points
	FontColor  string // RRGGBB hex
	TopMargin  int    // points

	LinesPerSlide int
	Shadow        *Shadow

	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.FontFamily == "" {
		o.FontFamily = DefaultFontFamily
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.FontColor == "" {
		o.FontColor = DefaultFontColor
	}
	if o.TopMargin <= 0 {
		o.TopMargin = DefaultTopMargin
	}
	if o.LinesPerSlide <= 0 {
		o.LinesPerSlide = 4
	}
	if o.Shadow == nil {
		s := DefaultShadow
		o.Shadow = &s
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Error reports a deck that could not be assembled or written.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("deck %s: %v", e.Path, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Stage classifies the error for engine reporting.
func (e *Error) Stage() string { return "serialization" }

type alignment string

const (
	alignLeft   alignment = "l"
	alignCenter alignment = "ctr"
)

// slide is one fully resolved deck slide. All geometry is in pixels; the
// serializer converts.
type slide struct {
	fill      string // RRGGBB background rectangle
	imagePath string // aspect-fit picture, empty for fill-only slides

	text       string
	rect       *descriptor.Rect // nil: the default text box
	align      alignment
	fontFamily string
	fontSize   int // points
	fontColor  string
	bold       bool
}

// Deck accumulates slides for one output file. In playlist mode a single
// deck collects every unit's slides.
type Deck struct {
	opts   Options
	slides []slide
}

// New returns an empty deck.
func New(opts Options) *Deck {
	return &Deck{opts: opts.withDefaults()}
}

// SlideCount reports the number of slides added so far.
func (d *Deck) SlideCount() int { return len(d.slides) }

// AddUnit appends slides for one classified content unit.
func (d *Deck) AddUnit(unit *classify.ContentUnit) error {
	switch unit.Kind {
	case classify.KindSong:
		return d.AddSong(unit.Song, unit.SongMedia)
	case classify.KindPositionedSlides:
		return d.AddPositioned(unit.Slides)
	default:
		d.AddMediaSequence(unit.Media)
		return nil
	}
}

// AddSong appends the song's slides in arrangement (playback) order, split
// by LinesPerSlide and centered. mediaPath, when an image, backgrounds every
// slide.
func (d *Deck) AddSong(song *songs.Song, mediaPath string) error {
	background := mediaPath
	if background != "" && media.IsVideo(background) {
		d.opts.Logger.Warn("video backgrounds cannot be embedded in a deck, skipping",
			slog.String("media", background))
		background = ""
	}

	for _, token := range song.Arrangement {
		section, ok := song.Section(token)
		if !ok {
			continue
		}
		for _, chunk := range songs.SplitSlides(section.Lines, d.opts.LinesPerSlide) {
			d.slides = append(d.slides, slide{
				fill:       "000000",
				imagePath:  background,
				text:       strings.Join(chunk, "\n"),
				align:      alignCenter,
				fontFamily: d.opts.FontFamily,
				fontSize:   d.opts.FontSize,
				fontColor:  d.opts.FontColor,
			})
		}
	}
	return nil
}

// AddPositioned appends exact-geometry slides. Position, size, and font
// always come from the resolved descriptor; text is left-aligned.
func (d *Deck) AddPositioned(entries []descriptor.Entry) error {
	for _, entry := range entries {
		r, err := descriptor.Resolve(entry)
		if err != nil {
			return err
		}

		s := slide{fill: "000000", align: alignLeft, bold: r.FontBold}
		if r.Fill != nil {
			s.fill = r.Fill.Hex()
		}
		if r.MediaPath != "" {
			if media.IsVideo(r.MediaPath) {
				d.opts.Logger.Warn("video backgrounds cannot be embedded in a deck, skipping",
					slog.String("media", r.MediaPath))
			} else {
				s.imagePath = r.MediaPath
			}
		}
		if r.Text != "" {
			rect := r.OfficeRect
			s.text = r.Text
			s.rect = &rect
			s.fontSize = r.OfficeFontSize
			s.fontFamily = r.FontFamily
			if s.fontFamily == "" {
				s.fontFamily = d.opts.FontFamily
			}
			s.fontColor = d.opts.FontColor
			if r.TextColor != nil {
				s.fontColor = r.TextColor.Hex()
			}
		}
		d.slides = append(d.slides, s)
	}
	return nil
}

// AddMediaSequence appends one background-only slide per image. Videos are
// skipped with a warning.
func (d *Deck) AddMediaSequence(paths []string) {
	for _, path := range paths {
		if media.IsVideo(path) {
			d.opts.Logger.Warn("video backgrounds cannot be embedded in a deck, skipping",
				slog.String("media", path))
			continue
		}
		d.slides = append(d.slides, slide{fill: "000000", imagePath: path})
	}
}

// fitRect aspect-fits an image into the canvas, returning the offset and
// extent in EMUs. Wider images fit the width and center vertically; taller
// images fit the height and center horizontally.
func fitRect(imgW, imgH, canvasW, canvasH int) (offX, offY, extX, extY int64) {
	cx := int64(canvasW) * emuPerPixel
	cy := int64(canvasH) * emuPerPixel
	imgAspect := float64(imgW) / float64(imgH)
	canvasAspect := float64(canvasW) / float64(canvasH)

	if imgAspect > canvasAspect {
		extX = cx
		extY = int64(float64(cx) / imgAspect)
		offY = (cy - extY) / 2
		return
	}
	extY = cy
	extX = int64(float64(cy) * imgAspect)
	offX = (cx - extX) / 2
	return
}

// shadowGeometry converts point offsets into the EMU distance and the
// 60000ths-of-a-degree direction the effect element encodes.
func shadowGeometry(s Shadow) (blurRad, dist, dir int64) {
	blurRad = int64(s.Blur * emuPerPoint)
	dx := float64(s.OffsetX * emuPerPoint)
	dy := float64(s.OffsetY * emuPerPoint)
	dist = int64(math.Sqrt(dx*dx + dy*dy))

	if s.OffsetX == 0 {
		if s.OffsetY > 0 {
			dir = 5400000
		} else {
			dir = 16200000
		}
		return
	}
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	dir = int64(deg*60000) % 21600000
	if dir < 0 {
		dir += 21600000
	}
	return
}
