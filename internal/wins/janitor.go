// ABOUTME: Periodic purge of soft-deleted wins
// ABOUTME: Runs until its context is cancelled
package wins

import (
	"context"
	"time"
)

// RunPurgeLoop purges wins deleted more than retentionHours ago, once at
// start and then every interval. It returns nil when ctx is cancelled.
func (s *Service) RunPurgeLoop(ctx context.Context, interval time.Duration, retentionHours int) error {
	if interval <= 0 {
		interval = time.Hour
	}

	purge := func() {
		if _, err := s.Purge(ctx, retentionHours); err != nil {
			s.logger.Error("purge failed", "err", err)
		}
	}

	purge()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			purge()
		}
	}
}
