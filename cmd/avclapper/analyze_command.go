package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"avclapper/internal/analysis"
	"avclapper/internal/history"
	"avclapper/internal/logging"
	"avclapper/internal/report"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var inputFormat string
	var output string
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "analyze [input]",
		Short: "Correlate sync tags and solve per-file offsets and scales",
		Long: "Reads the clapper line format or a YAML manifest from the given file " +
			"(stdin when omitted or \"-\") and prints the sync groups, the per-file " +
			"solution and the deviation of every sync on the common timeline.",
		Args: cobra.MaximumNArgs(1),
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

			runID := history.NewID()
			runCtx := logging.WithRunID(cmd.Context(), runID)
			result, runErr := analysis.New(sess.store, logger).Run(runCtx)
			recorded := ""
			if cfg.History.Enabled && !noHistory && recordRun(cmd, ctx, history.NewRun(runID, sess.name, sess.raw, result, runErr)) {
				recorded = runID
			}
			return writeAnalysis(cmd, output, result, runErr, recorded)
		},
	}

	cmd.Flags().StringVarP(&inputFormat, "format", "f", inputAuto, "Input format: auto, lines or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in the history database")
	return cmd
}

// recordRun stores run in history and reports whether it was stored.
// History failures are logged and never fail the analysis.
func recordRun(cmd *cobra.Command, ctx *commandContext, run history.Run) bool {
	logger, _ := ctx.ensureLogger()
	logger = logging.NewComponentLogger(logger, "history")

	store, err := ctx.openHistory(cmd)
	if err != nil {
		logger.Warn("run history unavailable", logging.Error(err))
		return false
	}
	if store == nil {
		return false
	}
	defer store.Close()

	if err := store.Record(cmd.Context(), run); err != nil {
		logger.Warn("failed to record run history",
			logging.String(logging.FieldRunID, run.ID),
			logging.Error(err),
		)
		return false
	}
	logger.Debug("run recorded",
		logging.String(logging.FieldRunID, run.ID),
		logging.String("status", string(run.Status)),
	)
	return true
}

// writeAnalysis prints the report and then surfaces runErr so the process
// exits non-zero on unsolvable input.
func writeAnalysis(cmd *cobra.Command, output string, result *analysis.Result, runErr error, runID string) error {
	if result == nil && runErr != nil {
		return runErr
	}
	rep := report.Build(result, runErr)
	rep.RunID = runID

	out := cmd.OutOrStdout()
	if err := report.Write(out, rep, output, report.TextOptions{Color: shouldColorize(out)}); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if runErr != nil {
		return runErr
	}
	return nil
}

// solveSession runs an analysis without touching history and fails on
// anything short of a solved run.
func solveSession(cmd *cobra.Command, sess *session, ctx *commandContext) (*analysis.Result, error) {
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	result, err := analysis.New(sess.store, logger).Run(cmd.Context())
	if err != nil {
		return nil, err
	}
	if !result.Solved() {
		return nil, errors.New("analysis did not produce a solution")
	}
	return result, nil
}
