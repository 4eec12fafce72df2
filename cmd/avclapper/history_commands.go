package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"avclapper/internal/history"
	"avclapper/internal/report"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded analyze runs",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	return historyCmd
}

func withHistory(cmd *cobra.Command, ctx *commandContext, fn func(*history.Store) error) error {
	store, err := ctx.openHistory(cmd)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("history is disabled (set [history] enabled = true)")
	}
	defer store.Close()
	return fn(store)
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd, ctx, func(store *history.Store) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if asJSON {
					if runs == nil {
						runs = []history.Run{}
					}
					return writeJSON(cmd, runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortID(run.ID),
						run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
						string(run.Status),
						fmt.Sprintf("%d", run.Files),
						fmt.Sprintf("%d", run.Syncs),
						run.InputName,
					})
				}
				fmt.Fprintln(out, report.Table(
					[]string{"ID", "Created", "Status", "Files", "Syncs", "Input"},
					rows,
					[]report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignRight, report.AlignLeft},
					nil,
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one run with its per-file solutions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd, ctx, func(store *history.Store) error {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, run)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run:       %s\n", run.ID)
				fmt.Fprintf(out, "Created:   %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
				fmt.Fprintf(out, "Input:     %s (sha256 %s)\n", run.InputName, run.InputDigest)
				fmt.Fprintf(out, "Status:    %s\n", run.Status)
				if run.Error != "" {
					fmt.Fprintf(out, "Error:     %s\n", run.Error)
				}
				fmt.Fprintf(out, "Syncs:     %d (%d ambiguous, %d unassigned tags)\n", run.Syncs, run.Ambiguities, run.Unassigned)
				fmt.Fprintf(out, "System:    %d equations, %d variables\n", run.Equations, run.Variables)
				fmt.Fprintf(out, "Elapsed:   %s\n", run.Duration)
				if len(run.Solutions) == 0 {
					return nil
				}

				rows := make([][]string, 0, len(run.Solutions))
				for _, sol := range run.Solutions {
					rows = append(rows, []string{
						fmt.Sprintf("%.3f", sol.Offset),
						fmt.Sprintf("%.6f", sol.Scale),
						report.TypeLabel(sol.Type),
						sol.Name,
					})
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, report.Table(
					[]string{"Offset", "Scale", "Type", "File"},
					rows,
					[]report.Alignment{report.AlignRight, report.AlignRight, report.AlignLeft, report.AlignLeft},
					nil,
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func shortID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
