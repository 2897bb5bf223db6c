package pro6_test

import (
	"bytes"
	"strings"
	"testing"

	"chorale/internal/descriptor"
	"chorale/internal/identity"
	"chorale/internal/pro6"
	"chorale/internal/songs"
)

const songText = `V1
amazing grace how sweet
the sound that saved
C1
praise the lord
Arrangement
V1 C1 V1
`

func parseSong(t *testing.T) *songs.Song {
	t.Helper()
	song, err := songs.Parse("song.txt", "Test Song", songText)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return song
}

func TestSongDocumentGroupsAndArrangement(t *testing.T) {
	song := parseSong(t)
	doc, err := pro6.BuildSong(song, "", pro6.BuildOptions{NewID: identity.Sequence()})
	if err != nil {
		t.Fatalf("BuildSong: %v", err)
	}

	if len(doc.Groups) != 2 {
		t.Fatalf("expected one group per section, got %d", len(doc.Groups))
	}
	if doc.Groups[0].Name != "Verse 1" || doc.Groups[1].Name != "Chorus 1" {
		t.Fatalf("unexpected group names: %q, %q", doc.Groups[0].Name, doc.Groups[1].Name)
	}
	if doc.Arrangement == nil {
		t.Fatal("expected an arrangement")
	}
	ids := doc.Arrangement.GroupIDs
	if len(ids) != 3 {
		t.Fatalf("expected 3 arrangement entries, got %d", len(ids))
	}
	if ids[0] != ids[2] || ids[0] != doc.Groups[0].UUID {
		t.Fatal("arrangement repeats must reuse the verse group UUID")
	}
	if ids[1] != doc.Groups[1].UUID {
		t.Fatal("second arrangement entry must reference the chorus group")
	}
}

func TestTextElementFillAlphaIsZero(t *testing.T) {
	song := parseSong(t)
	doc, err := pro6.BuildSong(song, "", pro6.BuildOptions{NewID: identity.Sequence()})
	if err != nil {
		t.Fatalf("BuildSong: %v", err)
	}
	data, err := pro6.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `fillColor="1 1 1 0"`) {
		t.Fatal("text element fill must be fully transparent")
	}
	if strings.Contains(out, `<RVTextElement`) && strings.Contains(out, `fillColor="1 1 1 1"`) {
		t.Fatal("opaque text fill would paint over the slide background")
	}
}

func TestMarshalOmitsXMLDeclaration(t *testing.T) {
	song := parseSong(t)
	doc, err := pro6.BuildSong(song, "", pro6.BuildOptions{NewID: identity.Sequence()})
	if err != nil {
		t.Fatalf("BuildSong: %v", err)
	}
	data, err := pro6.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("<RVPresentationDocument ")) {
		t.Fatalf("document must start with the root element, got %.60s", data)
	}
	for _, want := range []string{
		`buildNumber="100991749"`,
		`versionNumber="600"`,
		`os="2"`,
		`category="Presentation"`,
		`CCLISongTitle="Test Song"`,
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestSongSlideSplitsAndLabels(t *testing.T) {
	text := "V1\none\ntwo\nthree\nfour\nfive\nArrangement\nV1\n"
	song, err := songs.Parse("song.txt", "T", text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	doc, err := pro6.BuildSong(song, "", pro6.BuildOptions{LinesPerSlide: 2, NewID: identity.Sequence()})
	if err != nil {
		t.Fatalf("BuildSong: %v", err)
	}
	slides := doc.Groups[0].Slides
	if len(slides) != 3 {
		t.Fatalf("5 lines at 2 per slide must give 3 slides, got %d", len(slides))
	}
	for i, want := range []string{"V1-1", "V1-2", "V1-3"} {
		if slides[i].Label != want {
			t.Fatalf("slide %d label %q, want %q", i, slides[i].Label, want)
		}
	}

	single, err := pro6.BuildSong(parseSong(t), "", pro6.BuildOptions{NewID: identity.Sequence()})
	if err != nil {
		t.Fatalf("BuildSong: %v", err)
	}
	if got := single.Groups[0].Slides[0].Label; got != "" {
		t.Fatalf("single-slide section must have an empty label, got %q", got)
	}
}

func TestSongSlideTextRectSpansCanvas(t *testing.T) {
	doc, err := pro6.BuildSong(parseSong(t), "", pro6.BuildOptions{Width: 1920, Height: 1080, NewID: identity.Sequence()})
	if err != nil {
		t.Fatalf("BuildSong: %v", err)
	}
	got := doc.Groups[0].Slides[0].Text.Position
	if got != "{0 69 0 1920 434}" {
		t.Fatalf("unexpected song text rect %q", got)
	}
}

func TestVideoBehaviorFollowsLoopOption(t *testing.T) {
	paths := []string{"/media/loop.mp4"}

	looped, err := pro6.BuildMediaSequence(paths, pro6.BuildOptions{LoopVideo: true, NewID: identity.Sequence()})
	if err != nil {
		t.Fatalf("BuildMediaSequence: %v", err)
	}
	if got := looped.Groups[0].Slides[0].Background.Behavior; got != "2" {
		t.Fatalf("looping video behavior %q, want 2", got)
	}

	once, err := pro6.BuildMediaSequence(paths, pro6.BuildOptions{NewID: identity.Sequence()})
	if err != nil {
		t.Fatalf("BuildMediaSequence: %v", err)
	}
	if got := once.Groups[0].Slides[0].Background.Behavior; got != "1" {
		t.Fatalf("play-once video behavior %q, want 1", got)
	}

	image, err := pro6.BuildMediaSequence([]string{"/media/still.png"}, pro6.BuildOptions{LoopVideo: true, NewID: identity.Sequence()})
	if err != nil {
		t.Fatalf("BuildMediaSequence: %v", err)
	}
	if got := image.Groups[0].Slides[0].Background.Behavior; got != "1" {
		t.Fatalf("image behavior %q, want 1", got)
	}
}

func TestMediaCueSourceIsFileURL(t *testing.T) {
	doc, err := pro6.BuildMediaSequence([]string{"/media/with space.png"}, pro6.BuildOptions{NewID: identity.Sequence()})
	if err != nil {
		t.Fatalf("BuildMediaSequence: %v", err)
	}
	cue := doc.Groups[0].Slides[0].Background
	if cue.Source != "file:///media/with%20space.png" {
		t.Fatalf("unexpected source %q", cue.Source)
	}
	if cue.Format != "PNG image" {
		t.Fatalf("unexpected format %q", cue.Format)
	}
	if cue.DisplayName != "with space" {
		t.Fatalf("unexpected display name %q", cue.DisplayName)
	}
}

func TestPositionedSlideGeometryAndFill(t *testing.T) {
	entries := []descriptor.Entry{
		{
			Path: "/src/first.json",
			Descriptor: &descriptor.Descriptor{
				Text: "hello", X: 231, Y: 653, Width: 374, Height: 55,
				FontSize: 59, FontScale: 1,
			},
			MediaPath: "/src/first.png",
		},
		{
			Path: "/src/second.json",
			Descriptor: &descriptor.Descriptor{
				Text: "filled", Width: 374, Height: 55, FontSize: 59,
				FontScale: 1, BackgroundColor: "#0000FF", Label: "Custom",
			},
		},
	}
	doc, err := pro6.BuildPositioned(entries, pro6.BuildOptions{NewID: identity.Sequence()})
	if err != nil {
		t.Fatalf("BuildPositioned: %v", err)
	}
	slides := doc.Groups[0].Slides
	if slides[0].Text.Position != "{231 653 0 374 55}" {
		t.Fatalf("unexpected rect %q", slides[0].Text.Position)
	}
	if slides[0].Label != "first" {
		t.Fatalf("label must fall back to the descriptor stem, got %q", slides[0].Label)
	}
	if slides[1].Fill != "0 0 1 1" {
		t.Fatalf("unexpected fill %q", slides[1].Fill)
	}
	if slides[1].Label != "Custom" {
		t.Fatalf("explicit label must win, got %q", slides[1].Label)
	}

	data, err := pro6.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Contains(data, []byte(`backgroundColor="0 0 1 1"`)) ||
		!bytes.Contains(data, []byte(`drawingBackgroundColor="true"`)) {
		t.Fatal("fill color must serialize onto the slide")
	}
}

func TestMarshalIsDeterministicWithSequencedIDs(t *testing.T) {
	build := func() []byte {
		doc, err := pro6.BuildSong(parseSong(t), "/media/bg.png", pro6.BuildOptions{NewID: identity.Sequence()})
		if err != nil {
			t.Fatalf("BuildSong: %v", err)
		}
		data, err := pro6.Marshal(doc)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		return data
	}
	if !bytes.Equal(build(), build()) {
		t.Fatal("identical inputs with sequenced IDs must serialize identically")
	}
}

func TestEachMediaCueVisitsEverySlide(t *testing.T) {
	doc, err := pro6.BuildSong(parseSong(t), "/media/bg.png", pro6.BuildOptions{NewID: identity.Sequence()})
	if err != nil {
		t.Fatalf("BuildSong: %v", err)
	}
	count := 0
	doc.EachMediaCue(func(cue *pro6.MediaCue) {
		count++
		cue.Source = "Media/bg.png"
	})
	if count != 2 {
		t.Fatalf("expected a cue on each slide, got %d", count)
	}
	data, err := pro6.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if bytes.Contains(data, []byte("file://")) {
		t.Fatal("rewritten sources must replace the absolute URLs")
	}
}
