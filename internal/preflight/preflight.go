package preflight

import (
	"avclapper/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// RunAll executes the checks that apply to cfg. The history directory is
// only checked when history is enabled.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
	}
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	if cfg.History.Enabled && cfg.History.Path != "" {
		results = append(results, CheckDirectoryAccess("History directory", parentDir(cfg.History.Path)))
	}
	results = append(results, CheckBinary("FFprobe", cfg.Render.FFprobe))
	return results
}
