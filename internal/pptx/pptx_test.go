package pptx_test

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"chorale/internal/descriptor"
	"chorale/internal/pptx"
	"chorale/internal/songs"
	"chorale/internal/testsupport"
)

func render(t *testing.T, deck *pptx.Deck) map[string]string {
	t.Helper()
	var buf bytes.Buffer
	if err := deck.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("deck is not a valid archive: %v", err)
	}
	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		parts[f.Name] = string(data)
	}
	return parts
}

func parseSong(t *testing.T) *songs.Song {
	t.Helper()
	song, err := songs.Parse("song.txt", "Test Song",
		"V1\nverse line one\nverse line two\nC1\nchorus line\nArrangement\nV1 C1 V1\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return song
}

func TestDeckContainsRequiredParts(t *testing.T) {
	deck := pptx.New(pptx.Options{Logger: testsupport.Logger()})
	if err := deck.AddSong(parseSong(t), ""); err != nil {
		t.Fatalf("AddSong: %v", err)
	}
	parts := render(t, deck)

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/_rels/slide1.xml.rels",
	} {
		if _, ok := parts[name]; !ok {
			t.Errorf("missing part %s", name)
		}
	}
	if !strings.Contains(parts["ppt/presentation.xml"], `<p:sldSz cx="9753600" cy="7315200"/>`) {
		t.Fatal("default 1024x768 canvas must convert to EMUs at 96 DPI")
	}
}

func TestSongSlidesFollowArrangementOrder(t *testing.T) {
	deck := pptx.New(pptx.Options{Logger: testsupport.Logger()})
	if err := deck.AddSong(parseSong(t), ""); err != nil {
		t.Fatalf("AddSong: %v", err)
	}
	if deck.SlideCount() != 3 {
		t.Fatalf("arrangement V1 C1 V1 must give 3 slides, got %d", deck.SlideCount())
	}
	parts := render(t, deck)
	if !strings.Contains(parts["ppt/slides/slide1.xml"], "verse line one") {
		t.Fatal("first slide must carry the verse")
	}
	if !strings.Contains(parts["ppt/slides/slide2.xml"], "chorus line") {
		t.Fatal("second slide must carry the chorus")
	}
	if !strings.Contains(parts["ppt/slides/slide3.xml"], "verse line one") {
		t.Fatal("the repeated verse must reappear as a third slide")
	}
	if !strings.Contains(parts["ppt/slides/slide1.xml"], `algn="ctr"`) {
		t.Fatal("song text must be centered")
	}
}

func TestSongDefaultTextBox(t *testing.T) {
	deck := pptx.New(pptx.Options{Logger: testsupport.Logger()})
	if err := deck.AddSong(parseSong(t), ""); err != nil {
		t.Fatalf("AddSong: %v", err)
	}
	slide1 := render(t, deck)["ppt/slides/slide1.xml"]

	// 0.5" left inset, 100pt top margin, one inch narrower than the canvas.
	if !strings.Contains(slide1, `<a:off x="457200" y="1270000"/><a:ext cx="8838600" cy="6045200"/>`) {
		t.Fatalf("unexpected default text box geometry:\n%s", slide1)
	}
	if !strings.Contains(slide1, `sz="4000"`) {
		t.Fatal("default 40pt font must serialize as sz=4000")
	}
	if !strings.Contains(slide1, `<a:latin typeface="Arial"/>`) {
		t.Fatal("default font family must be Arial")
	}
	if !strings.Contains(slide1, `<a:srgbClr val="FFFFFF"/>`) {
		t.Fatal("default font color must be white")
	}
}

func TestWideImageFitsWidthAndCentersVertically(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "wide.png")
	testsupport.WritePNG(t, img, 8, 4)

	deck := pptx.New(pptx.Options{Logger: testsupport.Logger()})
	deck.AddMediaSequence([]string{img})
	slide1 := render(t, deck)["ppt/slides/slide1.xml"]

	if !strings.Contains(slide1, `<a:off x="0" y="1219200"/><a:ext cx="9753600" cy="4876800"/>`) {
		t.Fatalf("wide image must fit the width and center vertically:\n%s", slide1)
	}
}

func TestTallImageFitsHeightAndCentersHorizontally(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "tall.png")
	testsupport.WritePNG(t, img, 4, 8)

	deck := pptx.New(pptx.Options{Logger: testsupport.Logger()})
	deck.AddMediaSequence([]string{img})
	slide1 := render(t, deck)["ppt/slides/slide1.xml"]

	if !strings.Contains(slide1, `<a:off x="3048000" y="0"/><a:ext cx="3657600" cy="7315200"/>`) {
		t.Fatalf("tall image must fit the height and center horizontally:\n%s", slide1)
	}
}

func TestImageEmbeddedWithContentType(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "bg.png")
	testsupport.WritePNG(t, img, 4, 3)

	deck := pptx.New(pptx.Options{Logger: testsupport.Logger()})
	deck.AddMediaSequence([]string{img})
	parts := render(t, deck)

	if _, ok := parts["ppt/media/image1.png"]; !ok {
		t.Fatal("image bytes must be embedded")
	}
	if !strings.Contains(parts["[Content_Types].xml"], `Extension="png"`) {
		t.Fatal("content types must declare the image extension")
	}
	if !strings.Contains(parts["ppt/slides/_rels/slide1.xml.rels"], "../media/image1.png") {
		t.Fatal("slide rels must reference the embedded image")
	}
}

func TestVideosAreSkipped(t *testing.T) {
	deck := pptx.New(pptx.Options{Logger: testsupport.Logger()})
	deck.AddMediaSequence([]string{"/media/clip.mp4"})
	if deck.SlideCount() != 0 {
		t.Fatal("video media must not produce slides")
	}

	song := parseSong(t)
	if err := deck.AddSong(song, "/media/clip.mp4"); err != nil {
		t.Fatalf("AddSong: %v", err)
	}
	slide1 := render(t, deck)["ppt/slides/slide1.xml"]
	if strings.Contains(slide1, "<p:pic>") {
		t.Fatal("a video song background must be dropped, not embedded")
	}
}

func TestPositionedSlideGeometryAndFont(t *testing.T) {
	deck := pptx.New(pptx.Options{Logger: testsupport.Logger()})
	err := deck.AddPositioned([]descriptor.Entry{{
		Path: "/src/a.json",
		Descriptor: &descriptor.Descriptor{
			Text: "positioned & precise", X: 100, Y: 200, Width: 374, Height: 55,
			FontSize: 60, FontScale: 0.5, XOffset: -20, YOffset: 5,
			Color: "#FF0000", BackgroundColor: "#112233",
		},
	}})
	if err != nil {
		t.Fatalf("AddPositioned: %v", err)
	}
	slide1 := render(t, deck)["ppt/slides/slide1.xml"]

	// x 100-20=80px, y 200+5=205px at 9525 EMU per pixel.
	if !strings.Contains(slide1, `<a:off x="762000" y="1952625"/><a:ext cx="3562350" cy="523875"/>`) {
		t.Fatalf("unexpected text box geometry:\n%s", slide1)
	}
	if !strings.Contains(slide1, `sz="3000"`) {
		t.Fatal("scaled font must be 30pt")
	}
	if !strings.Contains(slide1, `algn="l"`) {
		t.Fatal("positioned text must be left aligned")
	}
	if !strings.Contains(slide1, `<a:srgbClr val="FF0000"/>`) {
		t.Fatal("descriptor color must win over the default font color")
	}
	if !strings.Contains(slide1, `<a:solidFill><a:srgbClr val="112233"/></a:solidFill>`) {
		t.Fatal("background fill must paint the backdrop rectangle")
	}
	if !strings.Contains(slide1, "positioned &amp; precise") {
		t.Fatal("text must be XML escaped")
	}
}

func TestShadowGeometryFromOffsets(t *testing.T) {
	deck := pptx.New(pptx.Options{Logger: testsupport.Logger()})
	if err := deck.AddSong(parseSong(t), ""); err != nil {
		t.Fatalf("AddSong: %v", err)
	}
	slide1 := render(t, deck)["ppt/slides/slide1.xml"]

	// Default 2pt/2pt offsets: 45 degrees, sqrt(2)*25400 EMU distance.
	if !strings.Contains(slide1, `<a:outerShdw blurRad="38100" dist="35920" dir="2700000">`) {
		t.Fatalf("unexpected shadow geometry:\n%s", slide1)
	}
	if !strings.Contains(slide1, `<a:alpha val="60000"/>`) {
		t.Fatal("shadow must keep the fixed 60% alpha")
	}
}

func TestShadowCanBeDisabled(t *testing.T) {
	deck := pptx.New(pptx.Options{Shadow: &pptx.Shadow{}, Logger: testsupport.Logger()})
	if err := deck.AddSong(parseSong(t), ""); err != nil {
		t.Fatalf("AddSong: %v", err)
	}
	slide1 := render(t, deck)["ppt/slides/slide1.xml"]
	if strings.Contains(slide1, "outerShdw") {
		t.Fatal("disabled shadow must not serialize an effect list")
	}
}
