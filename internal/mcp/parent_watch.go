package mcp

import (
	"context"
	"os"
	"time"

	"mediator/internal/logging"
)

// WatchInterval is how often WatchParent polls the parent PID.
var WatchInterval = 2 * time.Second

// WatchParent cancels the server when the parent process goes away, so an
// orphaned stdio server does not linger. It never reads stdin; the stdio
// transport owns it.
//
// The goroutine exits when ctx is cancelled or parent death is detected.
func WatchParent(ctx context.Context, cancelFn context.CancelFunc) {
	ppid := os.Getppid()
	interval := WatchInterval
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if os.Getppid() != ppid {
					logging.New("mcp").Warn("parent process died, shutting down", "ppid", ppid)
					cancelFn()
					return
				}
			}
		}
	}()
}
