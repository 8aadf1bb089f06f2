package backend

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// WaitForAnalysis polls IsAnalyzing every interval until the backend is
// idle. It returns ErrAnalysisTimeout once maxWait has elapsed; a zero
// maxWait waits indefinitely.
func WaitForAnalysis(ctx context.Context, b Output, interval, maxWait time.Duration) error {
	start := time.Now()
	for polls := 1; ; polls++ {
		busy, err := b.IsAnalyzing(ctx)
		if err != nil {
			return fmt.Errorf("failed to poll analysis state: %w", err)
		}
		if !busy {
			slog.Debug("backend: analysis finished", "polls", polls, "elapsed", time.Since(start))
			return nil
		}
		if maxWait > 0 && time.Since(start)+interval > maxWait {
			return fmt.Errorf("%w (waited %s)", ErrAnalysisTimeout, time.Since(start).Round(time.Millisecond))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// Analyze starts an analysis and waits for it to finish.
func Analyze(ctx context.Context, b Output, interval, maxWait time.Duration) error {
	if err := b.RunAnalysis(ctx); err != nil {
		return fmt.Errorf("failed to start analysis: %w", err)
	}
	return WaitForAnalysis(ctx, b, interval, maxWait)
}
