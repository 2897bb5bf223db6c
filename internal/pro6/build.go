package pro6

import (
	"path/filepath"
	"strconv"
	"strings"

	"chorale/internal/classify"
	"chorale/internal/descriptor"
	"chorale/internal/identity"
	"chorale/internal/media"
	"chorale/internal/rtf"
	"chorale/internal/sections"
	"chorale/internal/songs"
	"chorale/internal/textutil"
)

// BuildOptions control document assembly. Zero values take the package
// defaults; NewID defaults to random uppercase UUIDs.
type BuildOptions struct {
	Title         string
	Width         int
	Height        int
	LinesPerSlide int
	// LoopVideo selects looping playback for video backgrounds. Image
	// backgrounds always play once.
	LoopVideo bool

	FontFamily string // song lyric font
	FontSize   int    // song lyric size in half-points

	NewID func() string
}

func (o BuildOptions) withDefaults() BuildOptions {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.LinesPerSlide <= 0 {
		o.LinesPerSlide = DefaultLinesPerSlide
	}
	if o.FontFamily == "" {
		o.FontFamily = DefaultSongFontFamily
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultSongFontSize
	}
	if o.NewID == nil {
		o.NewID = identity.New
	}
	return o
}

// Build assembles a document for one classified content unit.
func Build(unit *classify.ContentUnit, opts BuildOptions) (*Document, error) {
	opts = opts.withDefaults()
	if opts.Title == "" {
		opts.Title = textutil.TitleFromName(filepath.Base(unit.Dir))
	}
	switch unit.Kind {
	case classify.KindSong:
		return BuildSong(unit.Song, unit.SongMedia, opts)
	case classify.KindPositionedSlides:
		return BuildPositioned(unit.Slides, opts)
	default:
		return BuildMediaSequence(unit.Media, opts)
	}
}

// BuildSong assembles a song document: one group per section, slides split
// by LinesPerSlide, and an arrangement referencing the groups in playback
// order. mediaPath, when non-empty, backgrounds every slide.
func BuildSong(song *songs.Song, mediaPath string, opts BuildOptions) (*Document, error) {
	opts = opts.withDefaults()
	if opts.Title == "" {
		opts.Title = song.Title
	}
	doc := newDocument(opts)

	groupByLabel := make(map[string]string, len(song.Sections))
	for _, section := range song.Sections {
		if len(section.Lines) == 0 {
			continue
		}
		group := Group{
			UUID:  opts.NewID(),
			Name:  sections.DisplayName(section.Label),
			Color: section.Kind.Color(),
		}
		groupByLabel[section.Label] = group.UUID

		chunks := songs.SplitSlides(section.Lines, opts.LinesPerSlide)
		for i, chunk := range chunks {
			label := ""
			if len(chunks) > 1 {
				label = section.Label + "-" + strconv.Itoa(i+1)
			}
			slide, err := newSongSlide(strings.Join(chunk, "\n"), label, mediaPath, opts)
			if err != nil {
				return nil, err
			}
			group.Slides = append(group.Slides, slide)
		}
		doc.Groups = append(doc.Groups, group)
	}

	arrangement := &Arrangement{UUID: opts.NewID()}
	for _, token := range song.Arrangement {
		if id, ok := groupByLabel[token]; ok {
			arrangement.GroupIDs = append(arrangement.GroupIDs, id)
		}
	}
	if len(arrangement.GroupIDs) > 0 {
		doc.Arrangement = arrangement
	}
	return doc, nil
}

// BuildPositioned assembles a document of exact-geometry slides in one
// group.
func BuildPositioned(entries []descriptor.Entry, opts BuildOptions) (*Document, error) {
	opts = opts.withDefaults()
	doc := newDocument(opts)

	group := Group{UUID: opts.NewID(), Name: "Group", Color: sections.DefaultColor}
	for _, entry := range entries {
		resolved, err := descriptor.Resolve(entry)
		if err != nil {
			return nil, err
		}
		slide, err := newPositionedSlide(entry, resolved, opts)
		if err != nil {
			return nil, err
		}
		group.Slides = append(group.Slides, slide)
	}
	doc.Groups = append(doc.Groups, group)
	return doc, nil
}

// BuildMediaSequence assembles one background-only slide per media file in
// the given order.
func BuildMediaSequence(paths []string, opts BuildOptions) (*Document, error) {
	opts = opts.withDefaults()
	doc := newDocument(opts)

	group := Group{UUID: opts.NewID(), Name: "Group", Color: sections.DefaultColor}
	for _, path := range paths {
		cue, err := newMediaCue(path, opts)
		if err != nil {
			return nil, err
		}
		group.Slides = append(group.Slides, Slide{
			UUID:       opts.NewID(),
			Label:      media.Stem(path),
			Background: cue,
		})
	}
	doc.Groups = append(doc.Groups, group)
	return doc, nil
}

func newDocument(opts BuildOptions) *Document {
	return &Document{
		UUID:   opts.NewID(),
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
	}
}

func newSongSlide(text, label, mediaPath string, opts BuildOptions) (Slide, error) {
	slide := Slide{UUID: opts.NewID(), Label: label}

	if mediaPath != "" {
		cue, err := newMediaCue(mediaPath, opts)
		if err != nil {
			return Slide{}, err
		}
		slide.Background = cue
	}

	data, err := rtf.Encode(text, opts.FontFamily, opts.FontSize, rtf.AlignCenter)
	if err != nil {
		return Slide{}, err
	}
	slide.Text = &TextBlock{
		ElementUUID: opts.NewID(),
		Position:    rect(0, 69, opts.Width, 434),
		Vertical:    "1",
		Data:        data,
	}
	return slide, nil
}

func newPositionedSlide(entry descriptor.Entry, r *descriptor.Resolved, opts BuildOptions) (Slide, error) {
	label := r.Label
	if label == "" && entry.Path != "" {
		label = media.Stem(entry.Path)
	}
	slide := Slide{UUID: opts.NewID(), Label: label}

	if r.Fill != nil {
		slide.Fill = r.Fill.String()
	}
	if r.MediaPath != "" {
		cue, err := newMediaCue(r.MediaPath, opts)
		if err != nil {
			return Slide{}, err
		}
		slide.Background = cue
	}

	if r.Text != "" {
		family := r.FontFamily
		if family == "" {
			family = DefaultTextFontFamily
		}
		data, err := rtf.Encode(r.Text, family, r.PP6FontSize, rtf.AlignLeft)
		if err != nil {
			return Slide{}, err
		}
		slide.Text = &TextBlock{
			ElementUUID: opts.NewID(),
			Position:    rect(r.PP6Rect.X, r.PP6Rect.Y, r.PP6Rect.Width, r.PP6Rect.Height),
			Vertical:    "0",
			Data:        data,
		}
	}
	return slide, nil
}

func newMediaCue(path string, opts BuildOptions) (*MediaCue, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	cue := &MediaCue{
		CueUUID:     opts.NewID(),
		ElementUUID: opts.NewID(),
		DisplayName: media.Stem(path),
		MediaPath:   abs,
		Source:      FileURL(abs),
		IsVideo:     media.IsVideo(path),
	}
	if cue.IsVideo {
		cue.Format = "'avc1'"
		cue.Behavior = "1"
		if opts.LoopVideo {
			cue.Behavior = "2"
		}
	} else {
		cue.Format = media.FormatName(path)
		cue.Behavior = "1"
	}
	return cue, nil
}

