// Package songs parses lyric files into typed sections and a playback
// arrangement, and chunks section lines into slide-sized groups.
//
// A song file is a sequence of labeled sections. A section starts at a line
// holding a short uppercase marker such as V1, C2, B1, PC1, or TAG1;
// following non-blank lines are its lyrics. The literal line "Arrangement"
// ends the sections; every non-blank token after it names a section in
// playback order. Tokens that do not match a parsed section label are a
// fatal parse error, never guessed at.
package songs

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"chorale/internal/sections"
)

// arrangementMarker is the literal line separating sections from the
// playback arrangement.
const arrangementMarker = "Arrangement"

var sectionMarker = regexp.MustCompile(`^[A-Z]{1,4}[0-9]{1,2}$`)

// Section is one labeled block of lyrics. Sections are immutable once
// parsed.
type Section struct {
	Label string
	Kind  sections.Kind
	Lines []string
}

// Song is a parsed lyrics file: ordered sections plus the playback
// arrangement referencing them by label.
type Song struct {
	Title       string
	Sections    []Section
	Arrangement []string

	byLabel map[string]int
}

// Section returns the section with the given label.
func (s *Song) Section(label string) (Section, bool) {
	i, ok := s.byLabel[label]
	if !ok {
		return Section{}, false
	}
	return s.Sections[i], true
}

// ParseError reports a malformed song file with enough context for the
// caller to display directly.
type ParseError struct {
	Path  string
	Line  int
	Token string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse song %s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("parse song %s: %s", e.Path, e.Msg)
}

// Stage classifies the error for engine reporting.
func (e *ParseError) Stage() string { return "parsing" }

// ParseFile reads and parses a song file. The title defaults to the file
// name; callers may override it afterwards.
func ParseFile(path, title string) (*Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read song file: %w", err)
	}
	return Parse(path, title, string(data))
}

// Parse parses song text. path is used only for error context.
func Parse(path, title, text string) (*Song, error) {
	song := &Song{Title: title, byLabel: make(map[string]int)}

	lines := strings.Split(text, "\n")
	current := -1
	arranged := false
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if arranged {
			for _, token := range strings.Fields(line) {
				song.Arrangement = append(song.Arrangement, token)
			}
			continue
		}
		switch {
		case line == arrangementMarker:
			arranged = true
		case sectionMarker.MatchString(line):
			if _, dup := song.byLabel[line]; dup {
				return nil, &ParseError{Path: path, Line: i + 1, Token: line, Msg: fmt.Sprintf("duplicate section label %q", line)}
			}
			song.Sections = append(song.Sections, Section{Label: line, Kind: sections.KindOf(line)})
			song.byLabel[line] = len(song.Sections) - 1
			current = len(song.Sections) - 1
		case line == "":
			// Blank lines separate stanzas but carry no lyrics.
		case current >= 0:
			song.Sections[current].Lines = append(song.Sections[current].Lines, line)
		default:
			// Text before the first section marker (title lines, notes)
			// carries no lyrics.
		}
	}

	if !arranged {
		return nil, &ParseError{Path: path, Msg: "missing Arrangement line"}
	}
	if len(song.Arrangement) == 0 {
		return nil, &ParseError{Path: path, Msg: "Arrangement line has no section tokens"}
	}
	if len(song.Sections) == 0 {
		return nil, &ParseError{Path: path, Msg: "no sections found"}
	}
	for _, token := range song.Arrangement {
		if _, ok := song.byLabel[token]; !ok {
			return nil, &ParseError{Path: path, Token: token, Msg: fmt.Sprintf("arrangement references undefined section %q", token)}
		}
	}
	return song, nil
}

// SplitSlides chunks lines into groups of at most perSlide, preserving
// order. A trailing remainder yields a final partial slide; it is never
// dropped or padded.
func SplitSlides(lines []string, perSlide int) [][]string {
	if perSlide < 1 {
		perSlide = 1
	}
	var out [][]string
	for start := 0; start < len(lines); start += perSlide {
		end := start + perSlide
		if end > len(lines) {
			end = len(lines)
		}
		out = append(out, lines[start:end])
	}
	return out
}
