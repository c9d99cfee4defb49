// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import "time"

// receiveStateTracker implements spec 4.6: receiving = (now - last) <
// receiving_timeout, fed by data, STUN requests, and STUN responses.
type receiveStateTracker struct {
	timeout time.Duration

	receiving      bool
	unchangedSince time.Time

	onState func(old, new bool)
}

func newReceiveStateTracker(timeout time.Duration, onState func(old, new bool)) *receiveStateTracker {
	if timeout <= 0 {
		timeout = defaultReceivingTimeout
	}
	return &receiveStateTracker{timeout: timeout, onState: onState}
}

// seen marks now as the last-received time and recomputes the receiving
// flag. Callers (Connection.OnReadPacket / HandleStun*) call this on every
// inbound packet, request, or response, per spec 4.6.
func (r *receiveStateTracker) seen(now time.Time) {
	r.apply(now, now)
}

// recompute re-derives receiving from now vs lastReceived without
// updating lastReceived (used by UpdateState ticks between packets).
func (r *receiveStateTracker) recompute(now, lastReceived time.Time) {
	r.apply(now, lastReceived)
}

func (r *receiveStateTracker) apply(now, lastReceived time.Time) {
	next := !lastReceived.IsZero() && now.Sub(lastReceived) < r.timeout
	if next != r.receiving {
		old := r.receiving
		r.receiving = next
		r.unchangedSince = now
		if r.onState != nil {
			r.onState(old, next)
		}
	}
}

func (r *receiveStateTracker) Receiving() bool {
	return r.receiving
}

func (r *receiveStateTracker) UnchangedSince() time.Time {
	return r.unchangedSince
}

// reset clears receiving without touching unchangedSince's callback
// semantics differently from any other transition — ForgetLearnedState
// (spec 4.9) explicitly resets receiving to false but does not emit a
// state-change event, so callers invoke this directly rather than apply().
func (r *receiveStateTracker) reset(now time.Time) {
	r.receiving = false
	r.unchangedSince = now
}
