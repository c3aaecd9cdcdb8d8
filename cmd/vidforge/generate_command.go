package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidforge/internal/history"
	"vidforge/internal/services/ffmpeg"
	"vidforge/internal/services/neural"
	"vidforge/internal/strategy"
	"vidforge/internal/workflow"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var (
		prompt   string
		output   string
		width    int
		height   int
		duration int
		short    bool
		audio    bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a short video from a text prompt",
		Long: `Generate a short video from a text prompt.

The generator classifies the prompt into a visual and audio theme, then works
down a fallback chain of synthesis strategies until one produces an artifact.
A metadata sidecar is written next to the output file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			neuralClient := neural.NewCLI(neural.WithBinary(cfg.Tools.NeuralBinary))
			encoder := ffmpeg.NewCLI(ffmpeg.WithBinary(cfg.Tools.FFmpegBinary))
			chain := strategy.DefaultChain(cfg, neuralClient, encoder, logger)

			opts := []workflow.Option{}
			if store, storeErr := history.Open(cfg); storeErr == nil {
				defer store.Close()
				opts = append(opts, workflow.WithRecorder(store))
			} else {
				logger.Warn("history ledger unavailable", "error", storeErr)
			}

			gen := workflow.NewGenerator(cfg, chain, logger, opts...)
			result, err := gen.Generate(cmd.Context(), workflow.Request{
				Prompt:          prompt,
				OutputPath:      output,
				Width:           width,
				Height:          height,
				DurationSeconds: duration,
				Short:           short,
				Audio:           audio,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %s (%d bytes)\n", result.ArtifactPath, result.BytesWritten)
			fmt.Fprintf(out, "Strategy: %s (fallback: %s)\n", result.StrategyUsed, yesNo(result.Fallback))
			fmt.Fprintf(out, "Metadata: %s\n", result.MetadataPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Text prompt describing the video")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output video path")
	cmd.Flags().IntVar(&width, "width", 0, "Video width (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "Video height (default from config)")
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "Duration in seconds (default from config)")
	cmd.Flags().BoolVar(&short, "short", false, "Produce a short-form clip at the configured short duration")
	cmd.Flags().BoolVar(&audio, "audio", false, "Include the synthetic audio layer")
	_ = cmd.MarkFlagRequired("prompt")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
