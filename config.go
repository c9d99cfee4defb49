// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"time"

	"github.com/pion/logging"
)

// GoogDeltaConsumer receives a GOOG_DELTA byte string carried on an
// inbound Binding Request and returns the value to ack back as
// GOOG_DELTA_ACK (spec 4.7).
type GoogDeltaConsumer interface {
	ConsumeGoogDelta(delta []byte) (ack uint64)
}

// GoogDeltaAckConsumer receives a GOOG_DELTA_ACK carried on an inbound
// Binding Response (spec 4.7, "symmetrically").
type GoogDeltaAckConsumer interface {
	ConsumeGoogDeltaAck(ack uint64)
}

// PiggybackHooks lets a DTLS-in-STUN layer ride along on Connection's STUN
// traffic without the core knowing anything about DTLS (spec 4.8).
// Absence (a nil *PiggybackHooks, or nil fields) is a no-op, never a dummy
// implementation, per SPEC_FULL's 4.8 grounding note.
type PiggybackHooks struct {
	// Fill is invoked on every outbound STUN message to let the caller
	// append opaque attributes before MESSAGE-INTEGRITY/FINGERPRINT are
	// computed.
	Fill func(attrs *PiggybackAttributes)

	// Consume is invoked with any piggyback bytes found on an inbound
	// message, alongside the original request if this was a response.
	Consume func(data []byte, original *ConnectionRequest)
}

// PiggybackAttributes is the narrow mutation surface Fill gets: append
// opaque bytes, nothing else, so a DTLS layer can't reach into STUN
// internals it has no business touching.
type PiggybackAttributes struct {
	payload []byte
}

// Append adds opaque bytes to the outbound message's piggyback attribute.
func (a *PiggybackAttributes) Append(b []byte) {
	a.payload = append(a.payload, b...)
}

// ConnectionConfig configures a Connection at construction (spec 3/6),
// following the teacher's settingengine.go convention of a plain exported
// field set with Set* methods layered on top for the handful of fields
// spec 6 says must be settable after construction from any goroutine.
type ConnectionConfig struct {
	// Role is this side's ICE role (controlling/controlled).
	Role Role

	// LocalTiebreaker is this side's RFC 8445 tie-breaker, compared on
	// role conflict (spec 4.7).
	LocalTiebreaker uint64

	ReceivingTimeout time.Duration
	UnwritableTimeout  time.Duration
	UnwritableMinChecks int
	InactiveTimeout    time.Duration
	TimeoutFailures    int
	ConnectFailures    int
	ConnectTimeout     time.Duration

	MaxPingsSinceLastResponse int

	// UseCandidateAttr mirrors spec 3's use_candidate_attr, defaulting to
	// true and forced false by the caller when the peer is ice-lite until
	// this pair becomes best (the channel's call, not this core's).
	UseCandidateAttr bool

	// SupportsRenomination gates whether BuildPingRequest attaches a
	// NOMINATION attribute (spec 4.2).
	SupportsRenomination bool

	GoogDeltaConsumer    GoogDeltaConsumer
	GoogDeltaAckConsumer GoogDeltaAckConsumer
	Piggyback            *PiggybackHooks

	LoggerFactory logging.LoggerFactory
}

// DefaultConnectionConfig returns a ConnectionConfig populated with spec
// 4.5/4.1/3's documented defaults.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		ReceivingTimeout:          defaultReceivingTimeout,
		UnwritableTimeout:         defaultUnwritableTimeout,
		UnwritableMinChecks:       defaultUnwritableMinChecks,
		InactiveTimeout:           defaultInactiveTimeout,
		TimeoutFailures:           defaultTimeoutFailures,
		ConnectFailures:           defaultConnectFailures,
		ConnectTimeout:            defaultConnectTimeout,
		MaxPingsSinceLastResponse: defaultMaxPingsSinceLastResponse,
		UseCandidateAttr:          true,
		LoggerFactory:             logging.NewDefaultLoggerFactory(),
	}
}

func (c ConnectionConfig) writeStateConfig() writeStateConfig {
	return writeStateConfig{
		unwritableTimeout:   c.UnwritableTimeout,
		unwritableMinChecks: c.UnwritableMinChecks,
		inactiveTimeout:     c.InactiveTimeout,
		timeoutFailures:     c.TimeoutFailures,
		connectFailures:     c.ConnectFailures,
		connectTimeout:      c.ConnectTimeout,
	}
}
