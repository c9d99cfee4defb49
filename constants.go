// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import "time"

// TransactionIDSize mirrors stun.TransactionIDSize (96 bits); duplicated
// here as a plain constant so error/value types in this file don't need to
// import the stun package just for a size.
const TransactionIDSize = 12

// Defaults for ConnectionConfig, spec 4.5/4.1/3.
const (
	// defaultUnwritableTimeout is spec 4.5's "unwritable_timeout": once a
	// response has been seen, how long without another one before the pair
	// becomes WRITE_UNRELIABLE.
	defaultUnwritableTimeout = 10 * time.Second

	// defaultUnwritableMinChecks is "unwritable_min_checks" in spec 4.5.
	defaultUnwritableMinChecks = 6

	// defaultInactiveTimeout is spec 4.5's "inactive_timeout".
	defaultInactiveTimeout = 30 * time.Second

	// defaultTimeoutFailures is CONNECTION_WRITE_TIMEOUT_FAILURES.
	defaultTimeoutFailures = 20

	// defaultConnectFailures is CONNECTION_WRITE_CONNECT_FAILURES: the
	// number of unanswered pings before WRITE_INIT can time out.
	defaultConnectFailures = 5

	// defaultConnectTimeout is CONNECTION_WRITE_CONNECT_TIMEOUT: how long
	// WRITE_INIT is tolerated before timing out, given enough failures.
	defaultConnectTimeout = 15 * time.Second

	// defaultReceivingTimeout is spec 4.6.
	defaultReceivingTimeout = 2500 * time.Millisecond

	// defaultMaxPingsSinceLastResponse bounds pings_since_last_response
	// (spec 3 invariant: grows append-only up to an implementation bound).
	defaultMaxPingsSinceLastResponse = 64

	// defaultMaxOutstandingPings is an implementation bound for diagnostics
	// (spec 2 item 8, PingHistory).
	defaultMaxOutstandingPings = 256
)

// Defaults for StunRequestManager, RFC 5389 7.2.1.
const (
	defaultMinRTO        = 500 * time.Millisecond
	defaultMaxRTO        = 8000 * time.Millisecond
	defaultMaxRetransmit = 7 // N_Rc
)

// Defaults for RttEstimator, spec 4.4.
const (
	// rttEMAShift sets the event-based EMA smoothing factor ~= 1/8, matching
	// the classic TCP SRTT update (RFC 6298) the vendored pion/ice agent.go
	// traces its own RTT handling back to.
	rttEMAShift = 3 // divide by 2^3 == 8
)

// Unknown is the zero-value sentinel shared by every "enum"-shaped type in
// this package, matching the teacher's convention in icecandidatetype.go /
// networktype.go.
const Unknown = 0
