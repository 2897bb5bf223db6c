// Package classify inspects one source directory and decides which of the
// three content models applies: positioned JSON slides, a song with an
// arrangement, or a plain media sequence.
//
// Priority is strict and short-circuiting: any JSON descriptor wins, then
// the first text file containing a line exactly equal to "Arrangement", then
// the recognized media files. A directory produces exactly one variant;
// files not matching the winning variant are silently excluded (a documented
// limitation, not a merge).
package classify

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	"chorale/internal/descriptor"
	"chorale/internal/media"
	"chorale/internal/songs"
	"chorale/internal/textutil"
)

// Kind names the winning content model.
type Kind int

const (
	KindPositionedSlides Kind = iota
	KindSong
	KindMediaSequence
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindPositionedSlides:
		return "positioned-slides"
	case KindSong:
		return "song"
	default:
		return "media-sequence"
	}
}

// ContentUnit is one classified source directory. Exactly one variant field
// is populated, selected by Kind.
type ContentUnit struct {
	Dir  string
	Kind Kind

	// KindPositionedSlides
	Slides []descriptor.Entry

	// KindSong
	Song *songs.Song
	// SongMedia is the first media file (natural sort) in the song's
	// directory; it backgrounds every generated slide. Empty when the
	// directory holds lyrics only.
	SongMedia string

	// KindMediaSequence
	Media []string
}

// Error reports a directory with no usable content.
type Error struct {
	Dir string
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("classify %s: %s", e.Dir, e.Msg) }

// Stage classifies the error for engine reporting.
func (e *Error) Stage() string { return "classification" }

// Classify inspects dir and returns its content unit. Classification is
// pure aside from reading the directory; all failures are returned, never
// panicked.
func Classify(dir string, logger *slog.Logger) (*ContentUnit, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		files = append(files, entry.Name())
	}
	if len(files) == 0 {
		return nil, &Error{Dir: dir, Msg: "empty directory"}
	}

	jsonFiles := lo.Filter(files, func(name string, _ int) bool {
		return strings.EqualFold(filepath.Ext(name), ".json")
	})
	if len(jsonFiles) > 0 {
		return classifyPositioned(dir, jsonFiles, logger)
	}

	if songFile, ok := findSongFile(dir, files); ok {
		return classifySong(dir, songFile)
	}

	mediaFiles, err := media.List(dir)
	if err != nil {
		return nil, err
	}
	if len(mediaFiles) == 0 {
		return nil, &Error{Dir: dir, Msg: "no usable content (no descriptors, song, or media)"}
	}
	return &ContentUnit{Dir: dir, Kind: KindMediaSequence, Media: mediaFiles}, nil
}

func classifyPositioned(dir string, jsonFiles []string, logger *slog.Logger) (*ContentUnit, error) {
	textutil.SortNatural(jsonFiles)

	var slides []descriptor.Entry
	for _, name := range jsonFiles {
		path := filepath.Join(dir, name)
		d, err := descriptor.Load(path)
		if err != nil {
			return nil, err
		}

		mediaPath := resolveMedia(dir, name, d)
		if mediaPath == "" && d.BackgroundColor == "" {
			// Unusable descriptor: not fatal to the unit, just dropped.
			logger.Warn("dropping descriptor with no media and no fill color",
				slog.String("descriptor", path))
			continue
		}
		slides = append(slides, descriptor.Entry{Path: path, Descriptor: d, MediaPath: mediaPath})
	}
	if len(slides) == 0 {
		return nil, &Error{Dir: dir, Msg: "JSON descriptors present but none has resolvable media or a fill color"}
	}
	return &ContentUnit{Dir: dir, Kind: KindPositionedSlides, Slides: slides}, nil
}

// resolveMedia finds the media file backing a descriptor. An explicit media
// field wins over the shared-base-name match.
func resolveMedia(dir, jsonName string, d *descriptor.Descriptor) string {
	if d.Media != "" {
		override := filepath.Join(dir, d.Media)
		if fileExists(override) {
			return override
		}
	}
	base := strings.TrimSuffix(jsonName, filepath.Ext(jsonName))
	for _, ext := range append(append([]string{}, media.ImageExts...), media.VideoExts...) {
		candidate := filepath.Join(dir, base+ext)
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

func findSongFile(dir string, files []string) (string, bool) {
	textFiles := lo.Filter(files, func(name string, _ int) bool {
		return strings.EqualFold(filepath.Ext(name), ".txt")
	})
	sort.Strings(textFiles)
	for _, name := range textFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) == "Arrangement" {
				return path, true
			}
		}
	}
	return "", false
}

func classifySong(dir, songFile string) (*ContentUnit, error) {
	title := textutil.TitleFromName(media.Stem(songFile))
	song, err := songs.ParseFile(songFile, title)
	if err != nil {
		return nil, err
	}

	mediaFiles, err := media.List(dir)
	if err != nil {
		return nil, err
	}
	unit := &ContentUnit{Dir: dir, Kind: KindSong, Song: song}
	if len(mediaFiles) > 0 {
		unit.SongMedia = mediaFiles[0]
	}
	return unit, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
