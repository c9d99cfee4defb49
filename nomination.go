// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

// nominationTracker holds nomination/acked_nomination/remote_nomination
// (spec 3/2 item 7). Fields are atomic because Set*-style commands and
// inbound-packet handling may race from the caller's perspective even
// though both ultimately execute on the network sequence (spec 5) — using
// atomics here means reads from GetXxx-style query methods never need to
// hop onto the sequence just to be safe.
type nominationTracker struct {
	nomination       atomicUint32
	ackedNomination  atomicUint32
	remoteNomination atomicUint32
}

// SetNomination sets the controlling side's nomination intent. Per the
// spec 3 invariant acked_nomination <= nomination, this never lowers
// acked_nomination; it is the caller's job (Connection.set_nomination) not
// to regress nomination itself in ordinary operation.
func (n *nominationTracker) SetNomination(value uint32) {
	n.nomination.store(value)
}

// Nomination returns the controlling side's current nomination intent.
func (n *nominationTracker) Nomination() uint32 {
	return n.nomination.load()
}

// AckNomination records that a ping carrying NOMINATION=value received a
// successful response, returning true the first time value is newly
// acknowledged (spec 4.4: "publish nominated").
func (n *nominationTracker) AckNomination(value uint32) bool {
	if value == 0 {
		return false
	}
	return n.ackedNomination.storeIfGreater(value)
}

// AckedNomination returns the highest nomination value acknowledged by a
// successful response.
func (n *nominationTracker) AckedNomination() uint32 {
	return n.ackedNomination.load()
}

// ObserveRemoteNomination records a nomination value observed from an
// inbound USE-CANDIDATE request (spec 4.7), returning true the first time
// it transitions from unset (spec scenario 5: "a later request with
// NOMINATION=2 does not decrease it").
func (n *nominationTracker) ObserveRemoteNomination(value uint32) bool {
	wasZero := n.remoteNomination.load() == 0
	changed := n.remoteNomination.storeIfGreater(value)
	return changed && wasZero
}

// RemoteNomination returns the highest nomination value observed from the
// remote peer.
func (n *nominationTracker) RemoteNomination() uint32 {
	return n.remoteNomination.load()
}

// Nominated reports whether either direction has confirmed a nomination:
// the controlling side got an ack, or the controlled side observed one.
func (n *nominationTracker) Nominated() bool {
	return n.ackedNomination.load() > 0 || n.remoteNomination.load() > 0
}

// reset clears all three fields (Connection.ForgetLearnedState does NOT
// call this — spec 4.9 only lists write_state/receiving/RTT/ping-history
// as reset; nomination survives ForgetLearnedState deliberately).
func (n *nominationTracker) reset() {
	n.nomination.store(0)
	n.ackedNomination.store(0)
	n.remoteNomination.store(0)
}
