package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Slides contains settings shared by both document formats.
type Slides struct {
	// LinesPerSlide is the song page break. Env fallback: PAGE_BREAK_EVERY.
	LinesPerSlide int `toml:"lines_per_slide"`
	Width         int `toml:"width"`
	Height        int `toml:"height"`
	// LoopVideo selects looping playback for video backgrounds.
	LoopVideo bool `toml:"loop_video"`

	SongFontFamily string `toml:"song_font_family"`
	SongFontSize   int    `toml:"song_font_size"` // half-points
}

// Text contains the deck text defaults. Env fallbacks: FONT_FAMILY,
// PPTX_FONT_SIZE (or FONT_SIZE), FONT_COLOR, TOP_MARGIN.
type Text struct {
	FontFamily string `toml:"font_family"`
	FontSize   int    `toml:"font_size"` // points
	FontColor  string `toml:"font_color"`
	TopMargin  int    `toml:"top_margin"` // points
}

// Shadow contains the deck text shadow. Pointer fields distinguish an
// omitted key (default or env fallback applies) from an explicit zero.
// Env fallbacks: ADD_TEXT_SHADOW, SHADOW_OFFSET_X, SHADOW_OFFSET_Y,
// SHADOW_BLUR_RADIUS.
type Shadow struct {
	Enabled    *bool    `toml:"enabled"`
	OffsetX    *int     `toml:"offset_x"`
	OffsetY    *int     `toml:"offset_y"`
	BlurRadius *float64 `toml:"blur_radius"`
}

// Output contains output locations.
type Output struct {
	Dir string `toml:"dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates every configuration value for chorale.
//
// Configuration sections:
//   - Slides: canvas size, song page breaks, video playback
//   - Text: deck font defaults and top margin
//   - Shadow: deck text shadow geometry
//   - Output: default output directory
//   - Logging: log format and level
type Config struct {
	Slides  Slides  `toml:"slides"`
	Text    Text    `toml:"text"`
	Shadow  Shadow  `toml:"shadow"`
	Output  Output  `toml:"output"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/chorale/config.toml")
}

// Load locates, parses, and validates a configuration file. Keys the file
// omits take environment fallbacks, then repository defaults. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	var cfg Config

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("chorale.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// ShadowEnabled reports the resolved shadow toggle. Only meaningful after
// Load or normalize.
func (c *Config) ShadowEnabled() bool {
	return c.Shadow.Enabled != nil && *c.Shadow.Enabled
}

// ShadowOffsets returns the resolved offset and blur values.
func (c *Config) ShadowOffsets() (x, y int, blur float64) {
	if c.Shadow.OffsetX != nil {
		x = *c.Shadow.OffsetX
	}
	if c.Shadow.OffsetY != nil {
		y = *c.Shadow.OffsetY
	}
	if c.Shadow.BlurRadius != nil {
		blur = *c.Shadow.BlurRadius
	}
	return
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
