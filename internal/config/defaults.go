package config

const (
	defaultLinesPerSlide  = 4
	defaultWidth          = 1024
	defaultHeight         = 768
	defaultSongFontFamily = "PingFangSC-Semibold"
	defaultSongFontSize   = 114

	defaultFontFamily = "Arial"
	defaultFontSize   = 40
	defaultFontColor  = "0xFFFFFF"
	defaultTopMargin  = 100

	defaultShadowEnabled    = true
	defaultShadowOffsetX    = 2
	defaultShadowOffsetY    = 2
	defaultShadowBlurRadius = 3.0

	defaultOutputDir = "~/chorale/output"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults. Environment
// fallbacks are not consulted; use Load for that.
func Default() Config {
	enabled := defaultShadowEnabled
	offsetX := defaultShadowOffsetX
	offsetY := defaultShadowOffsetY
	blur := defaultShadowBlurRadius
	return Config{
		Slides: Slides{
			LinesPerSlide:  defaultLinesPerSlide,
			Width:          defaultWidth,
			Height:         defaultHeight,
			SongFontFamily: defaultSongFontFamily,
			SongFontSize:   defaultSongFontSize,
		},
		Text: Text{
			FontFamily: defaultFontFamily,
			FontSize:   defaultFontSize,
			FontColor:  defaultFontColor,
			TopMargin:  defaultTopMargin,
		},
		Shadow: Shadow{
			Enabled:    &enabled,
			OffsetX:    &offsetX,
			OffsetY:    &offsetY,
			BlurRadius: &blur,
		},
		Output: Output{
			Dir: defaultOutputDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
