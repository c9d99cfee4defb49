// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import "sync"

// StateChangeReason distinguishes the motivations for a SignalStateChange
// event (spec 4.4's "triggers a state-change notification" for candidate
// upgrades vs. spec 4.5's write-state transitions vs. spec 4.6's
// receive-state transitions).
type StateChangeReason int

// Reasons a state-change event fired.
const (
	ReasonWriteState StateChangeReason = iota + 1
	ReasonReceiveState
	ReasonCandidateUpdated
)

// ConnectionEventHandler is the set of typed callbacks an observer
// registers with a Connection (spec 4.10/6 "Events"). Any field left nil
// is simply never invoked.
type ConnectionEventHandler struct {
	OnStateChange  func(c *Connection, reason StateChangeReason)
	OnDestroyed    func(c *Connection)
	OnReadyToSend  func(c *Connection)
	OnNominated    func(c *Connection)
}

// eventPublisher fans lifecycle events out to a snapshot of subscribers,
// tolerating re-entrant Subscribe during dispatch (spec 4.10 / 9; there is
// no unsubscribe) by copying the slice before looping rather than holding a lock across
// the callback — generalized from the teacher's icetransport.go single
// atomic.Value-held handler to the multi-observer list spec 4.10 requires.
type eventPublisher struct {
	mu sync.Mutex

	onStateChange []func(c *Connection, reason StateChangeReason)
	onDestroyed   []func(c *Connection)
	onReadyToSend []func(c *Connection)
	onNominated   []func(c *Connection)

	destroyedFired bool
}

func (p *eventPublisher) Subscribe(h ConnectionEventHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h.OnStateChange != nil {
		p.onStateChange = append(p.onStateChange, h.OnStateChange)
	}
	if h.OnDestroyed != nil {
		p.onDestroyed = append(p.onDestroyed, h.OnDestroyed)
	}
	if h.OnReadyToSend != nil {
		p.onReadyToSend = append(p.onReadyToSend, h.OnReadyToSend)
	}
	if h.OnNominated != nil {
		p.onNominated = append(p.onNominated, h.OnNominated)
	}
}

func (p *eventPublisher) snapshotStateChange() []func(c *Connection, reason StateChangeReason) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]func(c *Connection, reason StateChangeReason), len(p.onStateChange))
	copy(out, p.onStateChange)
	return out
}

func (p *eventPublisher) snapshotDestroyed() []func(c *Connection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]func(c *Connection), len(p.onDestroyed))
	copy(out, p.onDestroyed)
	return out
}

func (p *eventPublisher) snapshotReadyToSend() []func(c *Connection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]func(c *Connection), len(p.onReadyToSend))
	copy(out, p.onReadyToSend)
	return out
}

func (p *eventPublisher) snapshotNominated() []func(c *Connection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]func(c *Connection), len(p.onNominated))
	copy(out, p.onNominated)
	return out
}

// EmitStateChange runs every subscriber against a snapshot taken before
// the loop starts (spec 9: "support snapshot-on-dispatch to tolerate
// re-entrant subscribe/unsubscribe").
func (p *eventPublisher) EmitStateChange(c *Connection, reason StateChangeReason) {
	for _, f := range p.snapshotStateChange() {
		f(c, reason)
	}
}

// EmitDestroyed fires SignalDestroyed at most once per Connection (spec 4.9
// / 8's quantified invariant), returning false if it had already fired.
func (p *eventPublisher) EmitDestroyed(c *Connection) bool {
	p.mu.Lock()
	if p.destroyedFired {
		p.mu.Unlock()
		return false
	}
	p.destroyedFired = true
	p.mu.Unlock()

	for _, f := range p.snapshotDestroyed() {
		f(c)
	}
	return true
}

// EmitReadyToSend fires the ready-to-send signal (spec 6 "Events").
func (p *eventPublisher) EmitReadyToSend(c *Connection) {
	for _, f := range p.snapshotReadyToSend() {
		f(c)
	}
}

// EmitNominated fires the nominated signal.
func (p *eventPublisher) EmitNominated(c *Connection) {
	for _, f := range p.snapshotNominated() {
		f(c)
	}
}
