package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"vidforge/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generations from the local ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history ledger: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No generations recorded")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format(time.DateTime),
					entry.Prompt,
					entry.Strategy,
					yesNo(entry.Fallback),
					strconv.FormatInt(entry.FileSizeBytes, 10),
					entry.OutputPath,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Created", "Prompt", "Strategy", "Fallback", "Bytes", "Output"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to list")
	return cmd
}
