package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vidforge/internal/deps"
)

func newCapabilitiesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Report which optional tool binaries are usable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			requirements := deps.Requirements(cfg.Tools.FFmpegBinary, cfg.Tools.NeuralBinary)
			statuses := deps.CheckBinaries(requirements)
			caps := deps.Probe(cmd.Context(), deps.ProbeOptions{
				FFmpegBinary: cfg.Tools.FFmpegBinary,
				NeuralBinary: cfg.Tools.NeuralBinary,
				Timeout:      time.Duration(cfg.Tools.ProbeTimeoutSeconds) * time.Second,
			})

			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				detail := status.Detail
				if detail == "" {
					detail = status.Description
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					yesNo(status.Available),
					detail,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Capability", "Binary", "Found", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "Media encoder usable: %s\n", yesNo(caps.HasMediaEncoder))
			fmt.Fprintf(out, "Neural stack usable: %s\n", yesNo(caps.HasNeuralStack))
			return nil
		},
	}
}
