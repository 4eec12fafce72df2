package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"avclapper/internal/correlate"
	"avclapper/internal/logging"
	"avclapper/internal/records"
	"avclapper/internal/solve"
)

// Result is the outcome of one run.
type Result struct {
	Files       []*records.File
	Syncs       []*records.Sync
	Ambiguities []correlate.Ambiguity
	Unassigned  []*records.Tag
	Equations   int
	Variables   int
	Duration    time.Duration

	solved bool
}

// Solved reports whether offsets and scales were computed. It is false when
// Run returned an error.
func (r *Result) Solved() bool {
	return r != nil && r.solved
}

// Analyzer correlates and solves the files of one store.
type Analyzer struct {
	store  *records.Store
	logger *slog.Logger
}

// New returns an analyzer for store.
func New(store *records.Store, logger *slog.Logger) *Analyzer {
	return &Analyzer{store: store, logger: logger}
}

// Run resets the store, correlates, solves and normalizes. On
// solve.ErrUnsolvable the returned result carries the correlation, with every
// file left at the identity solution.
func (a *Analyzer) Run(ctx context.Context) (*Result, error) {
	if a.store == nil || a.store.Len() == 0 {
		return nil, errors.New("analyze: no files to synchronize")
	}
	logger := logging.NewComponentLogger(logging.WithContext(ctx, a.logger), "analysis")
	started := time.Now()

	a.store.Reset()
	files := a.store.Files()
	corr := correlate.New(a.store, logging.WithContext(ctx, a.logger)).Run()

	result := &Result{
		Files:       files,
		Syncs:       corr.Syncs,
		Ambiguities: corr.Ambiguities,
		Unassigned:  corr.Unassigned,
	}

	sys, err := solve.Build(files, corr.Syncs)
	if err != nil {
		return result, fmt.Errorf("analyze: %w", err)
	}
	result.Equations = sys.Rows()
	result.Variables = sys.Cols()
	logger.Info("linear system built",
		logging.Int("files", len(files)),
		logging.Int("syncs", len(corr.Syncs)),
		logging.Int("equations", sys.Rows()),
		logging.Int("variables", sys.Cols()),
		logging.String("reference", sys.Reference.Name),
	)

	if err := sys.Solve(); err != nil {
		result.Duration = time.Since(started)
		var unsolvable *solve.UnsolvableError
		if errors.As(err, &unsolvable) {
			logger.Error("system cannot be solved",
				logging.Strings("files", unsolvable.Files),
				logging.Error(err),
			)
		}
		return result, fmt.Errorf("analyze: %w", err)
	}
	solve.Normalize(files)
	result.solved = true
	result.Duration = time.Since(started)

	for _, file := range files {
		logger.Debug("file solved",
			logging.String("file", file.Name),
			logging.Float64("offset", file.Solution.Offset),
			logging.Float64("scale", file.Solution.Scale),
		)
	}
	logger.Info("synchronization solved",
		logging.Int("files", len(files)),
		logging.Int("ambiguities", len(corr.Ambiguities)),
		logging.Duration("elapsed", result.Duration),
	)
	return result, nil
}
