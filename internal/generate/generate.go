package generate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"chorale/internal/classify"
	"chorale/internal/config"
	"chorale/internal/descriptor"
	"chorale/internal/logging"
	"chorale/internal/playlist"
	"chorale/internal/pptx"
	"chorale/internal/pro6"
	"chorale/internal/songs"
	"chorale/internal/textutil"
)

// Format selects which document formats a run produces.
type Format string

const (
	FormatPro6 Format = "pro6"
	FormatPPTX Format = "pptx"
	FormatBoth Format = "both"
)

// ParseFormat maps a user-supplied format name onto a Format. The empty
// string means both formats.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "both":
		return FormatBoth, nil
	case "pro6":
		return FormatPro6, nil
	case "pptx":
		return FormatPPTX, nil
	default:
		return "", fmt.Errorf("format: unsupported value %q (expected pro6, pptx, or both)", value)
	}
}

func (f Format) pro6() bool { return f == FormatPro6 || f == FormatBoth }
func (f Format) pptx() bool { return f == FormatPPTX || f == FormatBoth }

// Options describe one generation run.
type Options struct {
	// Source is a content directory, a playlist directory of content
	// subdirectories, or a single lyrics .txt file.
	Source string
	Format Format
	// OutputDir defaults to the configured output directory.
	OutputDir string
	// Name is the base name for generated files and the playlist display
	// name. Defaults to the source base name.
	Name string
	// Title overrides the document title in single-unit mode.
	Title string
	// Type optionally forces the content model for a file source. Only
	// "song" is meaningful; directories are always classified.
	Type string

	// Overrides for the configured values. Zero means configured.
	Width         int
	Height        int
	LinesPerSlide int
	// LoopVideo overrides the configured video playback when non-nil.
	LoopVideo *bool
}

// UnitFailure records a playlist unit that was skipped.
type UnitFailure struct {
	Dir   string
	Stage string
	Err   error
}

// Result lists the artifacts a run produced.
type Result struct {
	Documents []string // .pro6 paths
	Deck      string   // .pptx path
	Container string   // .pro6plx path
	Failures  []UnitFailure
}

// Run executes one generation run. In playlist mode broken units are
// skipped and reported through Result.Failures; classification, staging,
// and packaging failures outside unit scope abort the run.
func Run(ctx context.Context, logger *slog.Logger, cfg *config.Config, opts Options) (*Result, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "generate")
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	cfg = applyOverrides(cfg, opts)

	source, err := config.ExpandPath(opts.Source)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}
	if outputDir, err = config.ExpandPath(outputDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = textutil.SanitizeFileName(stemOf(source))
	}

	if !info.IsDir() {
		unit, err := classifyFile(source, opts.Type, opts.Title)
		if err != nil {
			return nil, err
		}
		return runSingle(logger, cfg, opts, unit, outputDir, name)
	}

	subdirs, err := contentSubdirs(source)
	if err != nil {
		return nil, err
	}
	if len(subdirs) > 0 {
		return runPlaylist(ctx, logger, cfg, opts, subdirs, outputDir, name)
	}

	unit, err := classify.Classify(source, logger)
	if err != nil {
		return nil, err
	}
	return runSingle(logger, cfg, opts, unit, outputDir, name)
}

// applyOverrides layers per-run option values over the configured ones.
func applyOverrides(cfg *config.Config, opts Options) *config.Config {
	clone := *cfg
	if opts.Width > 0 {
		clone.Slides.Width = opts.Width
	}
	if opts.Height > 0 {
		clone.Slides.Height = opts.Height
	}
	if opts.LinesPerSlide > 0 {
		clone.Slides.LinesPerSlide = opts.LinesPerSlide
	}
	if opts.LoopVideo != nil {
		clone.Slides.LoopVideo = *opts.LoopVideo
	}
	return &clone
}

// classifyFile handles the single lyrics file shortcut. Only song text is
// accepted; other content needs a directory.
func classifyFile(path, kind, title string) (*classify.ContentUnit, error) {
	if kind != "" && kind != "song" {
		return nil, fmt.Errorf("source %s: content type %q is not valid for a file source", path, kind)
	}
	if kind == "" && !strings.EqualFold(filepath.Ext(path), ".txt") {
		return nil, fmt.Errorf("source %s: a file source must be a lyrics .txt", path)
	}
	if title == "" {
		title = textutil.TitleFromName(stemOf(path))
	}
	song, err := songs.ParseFile(path, title)
	if err != nil {
		return nil, err
	}
	return &classify.ContentUnit{Dir: filepath.Dir(path), Kind: classify.KindSong, Song: song}, nil
}

func runSingle(logger *slog.Logger, cfg *config.Config, opts Options, unit *classify.ContentUnit, outputDir, name string) (*Result, error) {
	result := &Result{}

	title := opts.Title
	if title == "" && unit.Kind == classify.KindSong && unit.Song != nil {
		title = unit.Song.Title
	}

	if opts.Format.pro6() {
		doc, err := pro6.Build(unit, buildOptions(cfg, title))
		if err != nil {
			return nil, err
		}
		path := filepath.Join(outputDir, name+".pro6")
		if err := pro6.WriteFile(doc, path); err != nil {
			return nil, err
		}
		result.Documents = append(result.Documents, path)
		logger.Info("document written",
			logging.String(logging.FieldPath, path),
			logging.String(logging.FieldUnit, unit.Kind.String()))
	}

	if opts.Format.pptx() {
		deck := pptx.New(deckOptions(cfg, logger))
		if err := deck.AddUnit(unit); err != nil {
			return nil, err
		}
		path := filepath.Join(outputDir, name+".pptx")
		if err := deck.WriteFile(path); err != nil {
			return nil, err
		}
		result.Deck = path
		logger.Info("deck written",
			logging.String(logging.FieldPath, path),
			logging.Int("slides", deck.SlideCount()))
	}

	return result, nil
}

func runPlaylist(ctx context.Context, logger *slog.Logger, cfg *config.Config, opts Options, subdirs []string, outputDir, name string) (*Result, error) {
	result := &Result{}

	var docs []*pro6.Document
	var deck *pptx.Deck
	if opts.Format.pptx() {
		deck = pptx.New(deckOptions(cfg, logger))
	}

	for _, dir := range subdirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		unit, err := classify.Classify(dir, logger)
		if err == nil && opts.Format.pro6() {
			var doc *pro6.Document
			if doc, err = pro6.Build(unit, buildOptions(cfg, "")); err == nil {
				docs = append(docs, doc)
			}
		}
		if err == nil && deck != nil {
			err = deck.AddUnit(unit)
		}
		if err != nil {
			stage := StageOf(err)
			logger.Warn("skipping unit",
				logging.String(logging.FieldUnit, filepath.Base(dir)),
				logging.String(logging.FieldStage, stage),
				logging.Error(err))
			result.Failures = append(result.Failures, UnitFailure{Dir: dir, Stage: stage, Err: err})
			continue
		}
	}

	succeeded := len(subdirs) - len(result.Failures)
	if succeeded == 0 {
		return nil, fmt.Errorf("playlist %s: every unit failed", opts.Source)
	}

	if opts.Format.pro6() {
		bundle, err := playlist.Assemble(ctx, docs, playlist.Options{
			Name:      name,
			OutputDir: outputDir,
			Logger:    logger,
		})
		if err != nil {
			return nil, err
		}
		defer bundle.Close()

		container, err := bundle.Package(ctx)
		if err != nil {
			return nil, err
		}
		result.Documents = bundle.DocumentPaths
		result.Container = container
		logger.Info("playlist packaged",
			logging.String(logging.FieldPath, container),
			logging.Int("documents", len(bundle.DocumentPaths)),
			logging.Int("skipped", len(result.Failures)))
	}

	if deck != nil {
		path := filepath.Join(outputDir, name+".pptx")
		if err := deck.WriteFile(path); err != nil {
			return nil, err
		}
		result.Deck = path
		logger.Info("deck written",
			logging.String(logging.FieldPath, path),
			logging.Int("slides", deck.SlideCount()))
	}

	return result, nil
}

// contentSubdirs lists the non-hidden subdirectories of dir in natural
// order. An empty result means dir is itself a leaf content directory.
func contentSubdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	textutil.SortNatural(names)

	dirs := make([]string, len(names))
	for i, n := range names {
		dirs[i] = filepath.Join(dir, n)
	}
	return dirs, nil
}

func buildOptions(cfg *config.Config, title string) pro6.BuildOptions {
	return pro6.BuildOptions{
		Title:         title,
		Width:         cfg.Slides.Width,
		Height:        cfg.Slides.Height,
		LinesPerSlide: cfg.Slides.LinesPerSlide,
		LoopVideo:     cfg.Slides.LoopVideo,
		FontFamily:    cfg.Slides.SongFontFamily,
		FontSize:      cfg.Slides.SongFontSize,
	}
}

func deckOptions(cfg *config.Config, logger *slog.Logger) pptx.Options {
	color := ""
	if parsed, err := descriptor.ParseHexColor(cfg.Text.FontColor); err == nil {
		color = parsed.Hex()
	}
	x, y, blur := cfg.ShadowOffsets()
	return pptx.Options{
		Width:         cfg.Slides.Width,
		Height:        cfg.Slides.Height,
		FontFamily:    cfg.Text.FontFamily,
		FontSize:      cfg.Text.FontSize,
		FontColor:     color,
		TopMargin:     cfg.Text.TopMargin,
		LinesPerSlide: cfg.Slides.LinesPerSlide,
		Shadow:        &pptx.Shadow{Enabled: cfg.ShadowEnabled(), OffsetX: x, OffsetY: y, Blur: blur},
		Logger:        logger,
	}
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
