package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"avclapper/internal/config"
	"avclapper/internal/render"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var inputFormat string
	var scriptPath string
	var frameSize string
	var noProbe bool

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Write avconv command lines that composite the synchronized files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			sess, err := readSession(cmd, args, inputFormat, logger)
			if err != nil {
				return err
			}
			result, err := solveSession(cmd, sess, ctx)
			if err != nil {
				return err
			}

			opts := render.OptionsFromConfig(cfg.Render)
			if size := strings.ToLower(strings.TrimSpace(frameSize)); size != "" {
				if _, _, err := config.ParseFrameSize(size); err != nil {
					return fmt.Errorf("--frame-size: %w", err)
				}
				opts.FallbackSize = size
			}
			var sizer render.FrameSizer
			if !noProbe {
				sizer = render.NewProbeSizer(cfg.Render)
			}
			renderer := render.New(opts, sizer, logger)

			if scriptPath == "" || scriptPath == "-" {
				return renderer.Script(cmd.Context(), cmd.OutOrStdout(), result.Files)
			}
			if err := renderer.WriteFile(cmd.Context(), scriptPath, result.Files); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d commands to %s\n", len(result.Files), scriptPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFormat, "format", "f", inputAuto, "Input format: auto, lines or yaml")
	cmd.Flags().StringVar(&scriptPath, "script", "-", "Script destination (\"-\" for stdout)")
	cmd.Flags().StringVar(&frameSize, "frame-size", "", "Canvas size for files ffprobe cannot size, e.g. 1920x1080")
	cmd.Flags().BoolVar(&noProbe, "no-probe", false, "Skip ffprobe and use the fallback frame size for every file")
	return cmd
}
