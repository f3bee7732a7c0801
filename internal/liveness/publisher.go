// Package liveness mirrors the heartbeat to places outside the local store
// so something other than the next startup can tell the process is alive.
package liveness

import "context"

// Publisher receives every heartbeat timestamp.
type Publisher interface {
	Publish(ctx context.Context, lastSeen string) error
}
