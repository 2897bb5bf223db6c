package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeSlides(); err != nil {
		return err
	}
	if err := c.normalizeText(); err != nil {
		return err
	}
	if err := c.normalizeShadow(); err != nil {
		return err
	}
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeSlides() error {
	if c.Slides.LinesPerSlide == 0 {
		value, err := envInt("PAGE_BREAK_EVERY", defaultLinesPerSlide)
		if err != nil {
			return err
		}
		c.Slides.LinesPerSlide = value
	}
	if c.Slides.Width == 0 {
		c.Slides.Width = defaultWidth
	}
	if c.Slides.Height == 0 {
		c.Slides.Height = defaultHeight
	}
	c.Slides.SongFontFamily = strings.TrimSpace(c.Slides.SongFontFamily)
	if c.Slides.SongFontFamily == "" {
		c.Slides.SongFontFamily = defaultSongFontFamily
	}
	if c.Slides.SongFontSize == 0 {
		c.Slides.SongFontSize = defaultSongFontSize
	}
	return nil
}

func (c *Config) normalizeText() error {
	c.Text.FontFamily = strings.TrimSpace(c.Text.FontFamily)
	if c.Text.FontFamily == "" {
		c.Text.FontFamily = envString("FONT_FAMILY", defaultFontFamily)
	}
	if c.Text.FontSize == 0 {
		value, err := envInt("PPTX_FONT_SIZE", 0)
		if err != nil {
			return err
		}
		if value == 0 {
			if value, err = envInt("FONT_SIZE", defaultFontSize); err != nil {
				return err
			}
		}
		c.Text.FontSize = value
	}
	c.Text.FontColor = strings.TrimSpace(c.Text.FontColor)
	if c.Text.FontColor == "" {
		c.Text.FontColor = envString("FONT_COLOR", defaultFontColor)
	}
	if c.Text.TopMargin == 0 {
		value, err := envInt("TOP_MARGIN", defaultTopMargin)
		if err != nil {
			return err
		}
		c.Text.TopMargin = value
	}
	return nil
}

func (c *Config) normalizeShadow() error {
	if c.Shadow.Enabled == nil {
		enabled := defaultShadowEnabled
		if value, ok := os.LookupEnv("ADD_TEXT_SHADOW"); ok {
			parsed, err := strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("ADD_TEXT_SHADOW: %w", err)
			}
			enabled = parsed
		}
		c.Shadow.Enabled = &enabled
	}
	if c.Shadow.OffsetX == nil {
		value, err := envInt("SHADOW_OFFSET_X", defaultShadowOffsetX)
		if err != nil {
			return err
		}
		c.Shadow.OffsetX = &value
	}
	if c.Shadow.OffsetY == nil {
		value, err := envInt("SHADOW_OFFSET_Y", defaultShadowOffsetY)
		if err != nil {
			return err
		}
		c.Shadow.OffsetY = &value
	}
	if c.Shadow.BlurRadius == nil {
		blur := defaultShadowBlurRadius
		if value, ok := os.LookupEnv("SHADOW_BLUR_RADIUS"); ok {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return fmt.Errorf("SHADOW_BLUR_RADIUS: %w", err)
			}
			blur = parsed
		}
		c.Shadow.BlurRadius = &blur
	}
	return nil
}

func (c *Config) normalizeOutput() error {
	var err error
	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = defaultOutputDir
	}
	if c.Output.Dir, err = expandPath(c.Output.Dir); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func envString(name, fallback string) string {
	if value, ok := os.LookupEnv(name); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func envInt(name string, fallback int) (int, error) {
	value, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return parsed, nil
}
