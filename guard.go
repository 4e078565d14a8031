package boardagent

import "sync/atomic"

// Guard is the process-wide "deploy in progress" flag. Build/deploy
// collaborators set it; the synchronizer only reads it. It is a plain value
// handed to NewSynchronizer rather than a package global so tests can scope
// one per case.
type Guard struct {
	busy atomic.Bool
}

// SetBusy flips the flag. While set, all synchronizer operations return
// immediately without touching the enumerator or the store.
func (g *Guard) SetBusy(v bool) {
	if g == nil {
		return
	}
	g.busy.Store(v)
}

// Busy reports whether a build/deploy operation is in progress. A nil guard
// is never busy.
func (g *Guard) Busy() bool {
	return g != nil && g.busy.Load()
}
