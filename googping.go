// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"bytes"

	"github.com/pion/stun/v3"
)

// googPingElision implements spec 4.2's GOOG_PING compaction: once the
// peer has proven it understands GOOG_PING_REQUEST and this side's next
// outbound Binding Request carries byte-identical attributes (excluding the
// header, MESSAGE-INTEGRITY and FINGERPRINT) to the last full one it built
// (cached_stun_binding), it sends a minimal GOOG_PING in its place.
//
// remoteSupport is tri-state (spec 3: "remote_support_goog_ping"
// unknown/true/false) because a Connection must not assume support until
// it has observed either a GOOG_PING_REQUEST from the peer or a
// successful GOOG_PING response to one it sent; treating "unknown" as
// false is intentional caution, not an oversight.
type googPingElision struct {
	remoteSupport      triState
	cachedStunBinding  []byte
}

type triState int

const (
	triUnknown triState = iota
	triFalse
	triTrue
)

func (e *googPingElision) observeRemoteGoogPingRequest() {
	e.remoteSupport = triTrue
}

func (e *googPingElision) observeGoogPingSuccess() {
	e.remoteSupport = triTrue
}

func (e *googPingElision) observeGoogPingUnsupported() {
	e.remoteSupport = triFalse
}

// canElide reports whether candidate (the attribute bytes of the full
// Binding Request this side would otherwise send, without header,
// MESSAGE-INTEGRITY and FINGERPRINT) can instead go out as a compact
// GOOG_PING, per spec 4.2: remote support confirmed AND byte-identical to
// the cached attributes of the last full request.
func (e *googPingElision) canElide(candidate []byte) bool {
	return e.remoteSupport == triTrue && e.cachedStunBinding != nil && bytes.Equal(e.cachedStunBinding, candidate)
}

// rememberFullBinding caches the attribute bytes of the full Binding
// Request this side just built, the reference point future pings compare
// against.
func (e *googPingElision) rememberFullBinding(candidate []byte) {
	e.cachedStunBinding = append([]byte(nil), candidate...)
}

// reset clears remote_support_goog_ping and the cached binding (spec 4.9
// ForgetLearnedState: a changed candidate pair can't assume the peer's
// support carries over, and the byte-identical check is meaningless
// against a stale cache).
func (e *googPingElision) reset() {
	e.remoteSupport = triUnknown
	e.cachedStunBinding = nil
}

// buildGoogPingRequest constructs the minimal compact-ping message spec
// 4.2 describes: a GOOG_PING_REQUEST carrying only USERNAME and a
// MESSAGE-INTEGRITY (the "-32" truncation some ICE stacks use is a wire
// detail of the peer's own implementation, not something this side needs
// to special-case to verify an inbound one or compute an outbound one),
// keyed by the same short-term credential a full Binding Request uses.
// A fresh random transaction id is assigned by stun.TransactionID; the
// caller reads it back off the returned message.
func buildGoogPingRequest(username string, password string) (*stun.Message, error) {
	return stun.Build(
		stun.TransactionID,
		googPingType(),
		stun.NewUsername(username),
		stun.NewShortTermIntegrity(password),
		stun.Fingerprint,
	)
}

func googPingType() stun.MessageType {
	return stun.NewType(stun.MethodBinding+0x200, stun.ClassRequest)
}
