package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chorale/internal/testsupport"
)

func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func writeTestConfig(t *testing.T, outputDir string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := fmt.Sprintf("[output]\ndir = %q\n\n[logging]\nlevel = \"error\"\n", outputDir)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestCLIGenerateMediaDirectory(t *testing.T) {
	source := filepath.Join(t.TempDir(), "announcements")
	testsupport.WritePNG(t, filepath.Join(source, "bg.png"), 4, 4)
	outputDir := t.TempDir()
	configPath := writeTestConfig(t, outputDir)

	out, err := runCLI(t, configPath, "generate", source, "--format", "pro6")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "announcements.pro6") {
		t.Fatalf("report must list the document, got %q", out)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "announcements.pro6")); err != nil {
		t.Fatalf("stat document: %v", err)
	}
}

func TestCLIGenerateJSONOutput(t *testing.T) {
	source := filepath.Join(t.TempDir(), "announcements")
	testsupport.WritePNG(t, filepath.Join(source, "bg.png"), 4, 4)
	outputDir := t.TempDir()
	configPath := writeTestConfig(t, outputDir)

	out, err := runCLI(t, configPath, "generate", source, "--format", "both", "--json")
	if err != nil {
		t.Fatalf("generate --json: %v", err)
	}
	var view generateResultView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode JSON report: %v\noutput: %q", err, out)
	}
	if len(view.Documents) != 1 || view.Deck == "" {
		t.Fatalf("unexpected report: %+v", view)
	}
}

func TestCLIGenerateRejectsUnknownFormat(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())
	if _, err := runCLI(t, configPath, "generate", t.TempDir(), "--format", "keynote"); err == nil {
		t.Fatal("expected an unknown format error")
	}
}

func TestCLIConfigInitAndValidate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("init must report the target path, got %q", out)
	}

	if _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("init must refuse to overwrite without --overwrite")
	}
	if _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, err = runCLI(t, target, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("unexpected validate output: %q", out)
	}
}

func TestCLIConfigShow(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	out, err := runCLI(t, configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"slides.lines_per_slide", "text.font_family", "shadow.enabled"} {
		if !strings.Contains(out, want) {
			t.Fatalf("show output missing %s: %q", want, out)
		}
	}
}
