package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"chorale/internal/generate"
)

type unitFailureView struct {
	Dir   string `json:"dir"`
	Stage string `json:"stage"`
	Error string `json:"error"`
}

type generateResultView struct {
	Documents []string          `json:"documents,omitempty"`
	Deck      string            `json:"deck,omitempty"`
	Container string            `json:"container,omitempty"`
	Failures  []unitFailureView `json:"failures,omitempty"`
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var outputFlag string
	var nameFlag string
	var titleFlag string
	var typeFlag string
	var widthFlag int
	var heightFlag int
	var linesFlag int
	var loopFlag bool
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "generate <source>",
		Short: "Generate documents from a content directory, playlist directory, or lyrics file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := generate.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			runOpts := generate.Options{
				Source:        args[0],
				Format:        format,
				OutputDir:     outputFlag,
				Name:          nameFlag,
				Title:         titleFlag,
				Type:          typeFlag,
				Width:         widthFlag,
				Height:        heightFlag,
				LinesPerSlide: linesFlag,
			}
			if cmd.Flags().Changed("loop") {
				runOpts.LoopVideo = &loopFlag
			}

			result, err := generate.Run(cmd.Context(), logger, cfg, runOpts)
			if err != nil {
				return err
			}

			view := generateResultView{
				Documents: result.Documents,
				Deck:      result.Deck,
				Container: result.Container,
			}
			for _, failure := range result.Failures {
				view.Failures = append(view.Failures, unitFailureView{
					Dir:   failure.Dir,
					Stage: failure.Stage,
					Error: failure.Err.Error(),
				})
			}

			if jsonFlag {
				return writeJSON(cmd, view)
			}
			return renderGenerateReport(cmd, view)
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "both", "Output format: pro6, pptx, or both")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory (defaults to the configured directory)")
	cmd.Flags().StringVar(&nameFlag, "name", "", "Base name for generated files")
	cmd.Flags().StringVar(&titleFlag, "title", "", "Document title override (single source only)")
	cmd.Flags().StringVar(&typeFlag, "type", "", "Content model for a file source (song)")
	cmd.Flags().IntVar(&widthFlag, "width", 0, "Canvas width in pixels (defaults to the configured value)")
	cmd.Flags().IntVar(&heightFlag, "height", 0, "Canvas height in pixels (defaults to the configured value)")
	cmd.Flags().IntVar(&linesFlag, "lines", 0, "Lyric lines per song slide (defaults to the configured value)")
	cmd.Flags().BoolVar(&loopFlag, "loop", false, "Loop video backgrounds")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the result as JSON")

	return cmd
}

func renderGenerateReport(cmd *cobra.Command, view generateResultView) error {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	var rows [][]string
	for _, doc := range view.Documents {
		rows = append(rows, []string{"document", filepath.Base(doc), doc})
	}
	if view.Deck != "" {
		rows = append(rows, []string{"deck", filepath.Base(view.Deck), view.Deck})
	}
	if view.Container != "" {
		rows = append(rows, []string{"playlist", filepath.Base(view.Container), view.Container})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable([]string{"Kind", "Name", "Path"}, rows))
	}

	for _, failure := range view.Failures {
		fmt.Fprintln(out, renderStatusLine(filepath.Base(failure.Dir), statusWarn,
			fmt.Sprintf("skipped during %s: %s", failure.Stage, failure.Error), colorize))
	}
	if len(view.Failures) == 0 {
		fmt.Fprintln(out, renderStatusLine("generate", statusOK, "all units processed", colorize))
	}
	return nil
}
