// Package gate implements the pause/resume control in front of
// stage-1 sample intake (spec §5): "A counting semaphore or equivalent
// gate before stage 1's sample intake; pause blocks the intake loop,
// resume releases it."
package gate

import "sync"

// Gate is an open-by-default channel gate: Wait blocks while the
// gate is paused, returns immediately while it is open.
type Gate struct {
	mu     sync.Mutex
	open   bool
	waitCh chan struct{}
}

// New returns an open Gate.
func New() *Gate {
	g := &Gate{open: true}
	return g
}

// Wait blocks until the gate is open.
func (g *Gate) Wait() {
	for {
		g.mu.Lock()
		if g.open {
			g.mu.Unlock()
			return
		}
		ch := g.waitCh
		g.mu.Unlock()
		<-ch
	}
}

// Pause closes the gate; subsequent Wait calls block until Resume.
func (g *Gate) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.open {
		g.open = false
		g.waitCh = make(chan struct{})
	}
}

// Resume opens the gate, releasing every blocked Wait.
func (g *Gate) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.open {
		g.open = true
		close(g.waitCh)
		g.waitCh = nil
	}
}
