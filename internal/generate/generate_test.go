package generate_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chorale/internal/config"
	"chorale/internal/generate"
	"chorale/internal/testsupport"
)

const songText = `V1
amazing grace how sweet
the sound that saved
C1
praise the lord
Arrangement
V1 C1 V1
`

func testConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]generate.Format{
		"":     generate.FormatBoth,
		"both": generate.FormatBoth,
		"PRO6": generate.FormatPro6,
		"pptx": generate.FormatPPTX,
	} {
		got, err := generate.ParseFormat(input)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", input, err)
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := generate.ParseFormat("keynote"); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestRunLeafDirectoryProducesBothFormats(t *testing.T) {
	source := filepath.Join(t.TempDir(), "announcements")
	testsupport.WritePNG(t, filepath.Join(source, "01.png"), 8, 4)
	testsupport.WritePNG(t, filepath.Join(source, "02.png"), 4, 8)
	outputDir := t.TempDir()

	result, err := generate.Run(t.Context(), testsupport.Logger(), testConfig(), generate.Options{
		Source:    source,
		Format:    generate.FormatBoth,
		OutputDir: outputDir,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Documents) != 1 {
		t.Fatalf("expected one document, got %v", result.Documents)
	}
	data, err := os.ReadFile(result.Documents[0])
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if !strings.Contains(string(data), "<RVMediaCue") {
		t.Fatal("media sequence document must contain media cues")
	}
	if filepath.Base(result.Documents[0]) != "announcements.pro6" {
		t.Fatalf("unexpected document name: %s", result.Documents[0])
	}

	if result.Deck == "" {
		t.Fatal("expected a deck path")
	}
	if _, err := os.Stat(result.Deck); err != nil {
		t.Fatalf("stat deck: %v", err)
	}
	if result.Container != "" {
		t.Fatalf("leaf directory must not produce a container, got %s", result.Container)
	}
}

func TestRunSingleSongFile(t *testing.T) {
	source := filepath.Join(t.TempDir(), "amazing_grace.txt")
	testsupport.WriteFile(t, source, songText)
	outputDir := t.TempDir()

	result, err := generate.Run(t.Context(), testsupport.Logger(), testConfig(), generate.Options{
		Source:    source,
		Format:    generate.FormatPro6,
		OutputDir: outputDir,
		Title:     "Amazing Grace",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Documents) != 1 {
		t.Fatalf("expected one document, got %v", result.Documents)
	}
	data, err := os.ReadFile(result.Documents[0])
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if !strings.Contains(string(data), `CCLISongTitle="Amazing Grace"`) {
		t.Fatal("title override must flow into the document")
	}
	if !strings.Contains(string(data), "<RVSongArrangement") {
		t.Fatal("song document must carry its arrangement")
	}
}

func TestRunOptionOverridesBeatConfiguredValues(t *testing.T) {
	source := filepath.Join(t.TempDir(), "amazing_grace.txt")
	testsupport.WriteFile(t, source, songText)

	result, err := generate.Run(t.Context(), testsupport.Logger(), testConfig(), generate.Options{
		Source:    source,
		Format:    generate.FormatPro6,
		OutputDir: t.TempDir(),
		Width:     1920,
		Height:    1080,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(result.Documents[0])
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if !strings.Contains(string(data), `width="1920"`) || !strings.Contains(string(data), `height="1080"`) {
		t.Fatal("canvas overrides must flow into the document")
	}
}

func TestRunRejectsNonLyricsFile(t *testing.T) {
	source := filepath.Join(t.TempDir(), "slide.json")
	testsupport.WriteFile(t, source, `{"text":"hi"}`)

	_, err := generate.Run(t.Context(), testsupport.Logger(), testConfig(), generate.Options{
		Source:    source,
		Format:    generate.FormatPro6,
		OutputDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("a non-txt file source must be rejected")
	}
}

func TestRunPlaylistModePackagesBundleAndDeck(t *testing.T) {
	source := filepath.Join(t.TempDir(), "Sunday Service")
	testsupport.WritePNG(t, filepath.Join(source, "01 Welcome", "bg.png"), 4, 4)
	testsupport.WriteFile(t, filepath.Join(source, "02 Amazing Grace", "amazing_grace.txt"), songText)
	outputDir := t.TempDir()

	result, err := generate.Run(t.Context(), testsupport.Logger(), testConfig(), generate.Options{
		Source:    source,
		Format:    generate.FormatBoth,
		OutputDir: outputDir,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", result.Failures)
	}
	if len(result.Documents) != 2 {
		t.Fatalf("expected two documents, got %v", result.Documents)
	}
	if filepath.Base(result.Container) != "Sunday Service.pro6plx" {
		t.Fatalf("unexpected container name: %s", result.Container)
	}

	reader, err := zip.OpenReader(result.Container)
	if err != nil {
		t.Fatalf("open container: %v", err)
	}
	defer reader.Close()
	names := make(map[string]bool, len(reader.File))
	for _, f := range reader.File {
		names[f.Name] = true
	}
	if !names["Sunday Service/data.pro6pl"] {
		t.Fatalf("container must hold the playlist descriptor, got %v", names)
	}
	if !names["Sunday Service/Media/bg.png"] {
		t.Fatal("container must hold the relocated media")
	}

	if result.Deck == "" {
		t.Fatal("expected a combined deck")
	}
	if _, err := os.Stat(result.Deck); err != nil {
		t.Fatalf("stat deck: %v", err)
	}
}

func TestRunPlaylistContinuesPastBrokenUnit(t *testing.T) {
	source := filepath.Join(t.TempDir(), "service")
	testsupport.WritePNG(t, filepath.Join(source, "01 ok", "bg.png"), 4, 4)
	if err := os.MkdirAll(filepath.Join(source, "02 broken"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := generate.Run(t.Context(), testsupport.Logger(), testConfig(), generate.Options{
		Source:    source,
		Format:    generate.FormatPro6,
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Documents) != 1 {
		t.Fatalf("expected the healthy unit to survive, got %v", result.Documents)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("expected one recorded failure, got %v", result.Failures)
	}
	failure := result.Failures[0]
	if filepath.Base(failure.Dir) != "02 broken" {
		t.Fatalf("unexpected failing unit: %s", failure.Dir)
	}
	if failure.Stage != "classification" {
		t.Fatalf("unexpected failure stage: %s", failure.Stage)
	}
}

func TestRunFailsWhenEveryUnitIsBroken(t *testing.T) {
	source := filepath.Join(t.TempDir(), "service")
	if err := os.MkdirAll(filepath.Join(source, "01 empty"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	_, err := generate.Run(t.Context(), testsupport.Logger(), testConfig(), generate.Options{
		Source:    source,
		Format:    generate.FormatPro6,
		OutputDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("a playlist with no usable units must fail")
	}
}
