package toolhouse

import (
	"context"
	"time"
)

// DefaultPollInterval matches the browser widget's status check cadence.
const DefaultPollInterval = 3 * time.Second

// WaitForRun polls the run at a fixed interval until its status is terminal
// (completed or failed) or ctx is cancelled. There is intentionally no
// backoff; each tick is one idempotent status read. Poll errors are not
// terminal — the next tick simply tries again, same as the browser loop.
func (c *Client) WaitForRun(ctx context.Context, runID string, interval time.Duration) (*AgentRun, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	run, err := c.GetRun(ctx, runID)
	if err == nil && isTerminal(run.Status) {
		return run, nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			run, err := c.GetRun(ctx, runID)
			if err != nil {
				continue
			}
			if isTerminal(run.Status) {
				return run, nil
			}
		}
	}
}

func isTerminal(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}
