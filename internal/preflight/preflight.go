package preflight

import (
	"context"

	"wavscribe/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Advisory failures are reported as warnings and do not fail Passed.
	Advisory bool
	Detail   string
}

// Warning reports whether the result failed only in an advisory way.
func (r Result) Warning() bool {
	return !r.Passed && r.Advisory
}

// RunAll executes every preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	return []Result{
		CheckInputFile("Input file", cfg.Run.InputFile()),
		CheckOutputDirectory("Output directory", cfg.Run.OutputPath),
		CheckCredentials(cfg.Recognition),
		CheckEndpoint(ctx, cfg.Recognition.Endpoint),
	}
}

// Failed returns the results that failed outright; warnings are excluded.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed && !r.Advisory {
			failed = append(failed, r)
		}
	}
	return failed
}

// Passed reports whether every non-advisory result passed.
func Passed(results []Result) bool {
	return len(Failed(results)) == 0
}
