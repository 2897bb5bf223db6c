package config

import (
	"errors"
	"fmt"

	"chorale/internal/descriptor"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSlides(); err != nil {
		return err
	}
	if err := c.validateText(); err != nil {
		return err
	}
	if err := c.validateShadow(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSlides() error {
	if c.Slides.LinesPerSlide < 1 {
		return errors.New("slides.lines_per_slide must be at least 1")
	}
	if c.Slides.Width < 1 || c.Slides.Height < 1 {
		return errors.New("slides.width and slides.height must be positive")
	}
	if c.Slides.SongFontSize < 1 {
		return errors.New("slides.song_font_size must be positive")
	}
	return nil
}

func (c *Config) validateText() error {
	if c.Text.FontSize < 1 {
		return errors.New("text.font_size must be positive")
	}
	if c.Text.TopMargin < 0 {
		return errors.New("text.top_margin must not be negative")
	}
	if _, err := descriptor.ParseHexColor(c.Text.FontColor); err != nil {
		return fmt.Errorf("text.font_color: %w", err)
	}
	return nil
}

func (c *Config) validateShadow() error {
	if c.Shadow.BlurRadius != nil && *c.Shadow.BlurRadius < 0 {
		return errors.New("shadow.blur_radius must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}
