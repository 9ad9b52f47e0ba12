package commands

import (
	"context"
	"log/slog"
)

// PostAction is one best-effort step run after a committed mutation.
type PostAction struct {
	Name string
	Run  func(ctx context.Context) error
}

// runPipeline executes every step in order. A failing step is logged and
// skipped; it never aborts the remaining steps and never affects the
// already committed transaction. Returns the names of the failed steps.
func runPipeline(ctx context.Context, logger *slog.Logger, operation string, steps []PostAction) []string {
	var failed []string
	for _, step := range steps {
		if err := step.Run(ctx); err != nil {
			logger.Warn("post-action step failed",
				slog.String("operation", operation),
				slog.String("step", step.Name),
				slog.String("error", err.Error()),
			)
			failed = append(failed, step.Name)
		}
	}
	return failed
}
