// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"github.com/pion/stun/v3"

	"github.com/pion/ice/internal/iceattr"
)

// applyPiggyback invokes the configured Fill hook, if any, and folds any
// resulting opaque payload into m as a GOOG_MISC_INFO attribute before the
// message's integrity/fingerprint are finalized (spec 4.8's "a DTLS layer
// may attach opaque bytes to an outbound STUN message ... and later
// retrieve bytes attached to an inbound one").
func applyPiggyback(hooks *PiggybackHooks, m *stun.Message) error {
	if hooks == nil || hooks.Fill == nil {
		return nil
	}
	attrs := &PiggybackAttributes{}
	hooks.Fill(attrs)
	if len(attrs.payload) == 0 {
		return nil
	}
	m.Add(iceattr.AttrGoogMiscInfo, attrs.payload)
	return nil
}

// consumePiggyback extracts a GOOG_MISC_INFO payload from an inbound
// message, if present, and hands it to the configured Consume hook
// alongside the ConnectionRequest it answers (nil for a fresh inbound
// request rather than a response).
func consumePiggyback(hooks *PiggybackHooks, m *stun.Message, original *ConnectionRequest) {
	if hooks == nil || hooks.Consume == nil {
		return
	}
	v, err := m.Get(iceattr.AttrGoogMiscInfo)
	if err != nil || len(v) == 0 {
		return
	}
	hooks.Consume(v, original)
}
