package session

import (
	"context"
	"time"

	"github.com/agencyos/leadbot/core"
	"github.com/agencyos/leadbot/logging"
)

// RunJanitor drives periodic TTL eviction on the store until ctx is
// cancelled. It runs independently of request handling; start it once at
// process initialization in its own goroutine.
func RunJanitor(ctx context.Context, store core.SessionStore, interval time.Duration, logger logging.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("session janitor stopped")
			return
		case now := <-ticker.C:
			if removed := store.PurgeExpired(now); removed > 0 {
				logger.Info("purged expired sessions", "removed", removed)
			}
		}
	}
}
