package media_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"chorale/internal/media"
	"chorale/internal/testsupport"
)

func TestListNaturalSortsAndFiltersMedia(t *testing.T) {
	dir := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(dir, "10.png"), 4, 4)
	testsupport.WritePNG(t, filepath.Join(dir, "2.png"), 4, 4)
	testsupport.WritePNG(t, filepath.Join(dir, "1.png"), 4, 4)
	testsupport.WriteFile(t, filepath.Join(dir, "notes.txt"), "not media")
	testsupport.WriteFile(t, filepath.Join(dir, ".hidden.png"), "hidden")

	got, err := media.List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{
		filepath.Join(dir, "1.png"),
		filepath.Join(dir, "2.png"),
		filepath.Join(dir, "10.png"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected listing: %v", got)
	}
}

func TestRecognizers(t *testing.T) {
	if !media.IsImage("a/b.JPG") || !media.IsImage("x.webp") {
		t.Fatal("expected image extensions to be recognized case-insensitively")
	}
	if !media.IsVideo("clip.mp4") || media.IsVideo("clip.png") {
		t.Fatal("unexpected video recognition")
	}
	if media.IsMedia("slide.json") {
		t.Fatal("json must not be media")
	}
}

func TestDimensions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bg.png")
	testsupport.WritePNG(t, path, 64, 48)

	w, h, err := media.Dimensions(path)
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if w != 64 || h != 48 {
		t.Fatalf("unexpected dimensions: %dx%d", w, h)
	}
}

func TestDimensionsRejectsNonImages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	testsupport.WriteFile(t, path, "not really a video")

	if _, _, err := media.Dimensions(path); err == nil {
		t.Fatal("expected probe error for non-image content")
	}
}

func TestFormatName(t *testing.T) {
	if media.FormatName("a.png") != "PNG image" {
		t.Fatal("png format name")
	}
	if media.FormatName("a.jpeg") != "JPEG image" {
		t.Fatal("jpeg format name")
	}
	if media.Stem("/x/y/01_intro.png") != "01_intro" {
		t.Fatal("stem")
	}
}
