// Package pro6 assembles ProPresenter 6 presentation documents from
// classified content units and serializes them to the flat XML the target
// player reads.
//
// The document model is deliberately small: groups hold slides, slides hold
// an optional background media cue and an optional text block, and an
// optional arrangement orders groups for playback by UUID. Everything the
// serializer emits beyond that is a fixed attribute the player requires
// verbatim.
package pro6

import (
	"fmt"
	"net/url"
)

// Document field defaults. Width and height describe the canvas the text
// rectangles were authored against.
const (
	DefaultWidth         = 1024
	DefaultHeight        = 768
	DefaultLinesPerSlide = 4

	// Song lyrics render in a CJK-capable face at a large half-point size;
	// positioned slides default to the regular weight at their own size.
	DefaultSongFontFamily = "PingFangSC-Semibold"
	DefaultSongFontSize   = 114
	DefaultTextFontFamily = "PingFangSC-Regular"
)

// Document is one presentation: ordered slide groups plus an optional
// playback arrangement referencing them by UUID.
type Document struct {
	UUID   string
	Title  string
	Width  int
	Height int

	Groups      []Group
	Arrangement *Arrangement
}

// Group is one slide grouping with the label color shown in the player's
// group sidebar.
type Group struct {
	UUID   string
	Name   string
	Color  string
	Slides []Slide
}

// Slide holds at most one background cue and one text block. Fill, when set,
// paints the slide background instead of media.
type Slide struct {
	UUID       string
	Label      string
	Fill       string // "r g b a"; empty means the default black
	Background *MediaCue
	Text       *TextBlock
}

// MediaCue is a slide background referencing a media file. Source is the
// exact attribute value serialized; the playlist assembler rewrites it to a
// bundle-relative path after relocating MediaPath.
type MediaCue struct {
	CueUUID     string
	ElementUUID string
	DisplayName string
	MediaPath   string // absolute filesystem path
	Source      string
	IsVideo     bool
	Format      string
	Behavior    string
}

// TextBlock is one rendered text element. Data is the base64 rich-text
// payload produced by the rtf package.
type TextBlock struct {
	ElementUUID string
	Position    string // "{x y 0 w h}"
	Vertical    string // vertical alignment: "0" top, "1" center
	Data        string
}

// Arrangement orders groups for playback. GroupIDs may repeat; repeats
// reference the same group UUID rather than duplicated slides.
type Arrangement struct {
	UUID     string
	GroupIDs []string
}

// EachMediaCue visits every background cue in document order. Cues are
// passed by pointer so callers can rewrite sources in place.
func (d *Document) EachMediaCue(fn func(*MediaCue)) {
	for gi := range d.Groups {
		for si := range d.Groups[gi].Slides {
			if cue := d.Groups[gi].Slides[si].Background; cue != nil {
				fn(cue)
			}
		}
	}
}

// FileURL renders an absolute path as the file:// URL form media sources
// use, percent-escaping where the path requires it.
func FileURL(abs string) string {
	return (&url.URL{Scheme: "file", Path: abs}).String()
}

// RelativeURL percent-escapes a bundle-relative media path.
func RelativeURL(rel string) string {
	return (&url.URL{Path: rel}).String()
}

func rect(x, y, w, h int) string {
	return fmt.Sprintf("{%d %d 0 %d %d}", x, y, w, h)
}
