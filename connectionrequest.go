// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"time"

	"github.com/pion/stun/v3"
)

// ConnectionRequest is one STUN binding (or GOOG_PING) transaction on a
// Connection (spec 2 item 4): carries the nonce/ice-controlling/
// ice-controlled/priority/use-candidate/nomination attributes that went
// out, and is owned by the StunRequestManager until it resolves.
type ConnectionRequest struct {
	TransactionID [TransactionIDSize]byte
	Message       *stun.Message

	// IsGoogPing distinguishes the compact-ping elision (spec 4.2) from a
	// full Binding Request; a success response to a GOOG_PING confirms the
	// peer's GOOG_PING support. Both are matched by transaction id alone.
	IsGoogPing bool

	// UseCandidate/Nomination mirror the attributes baked into Message,
	// kept unpacked for cheap inspection by response handling (spec 4.4).
	UseCandidate bool
	Nomination   uint32

	sentAt  time.Time
	attempt int
	rto     time.Duration
	timer   stunTimer
}

// stunTimer is the minimal timer surface stunRequestManager needs,
// satisfied by *time.Timer; abstracted so tests can substitute a fake
// clock without a background goroutine actually sleeping.
type stunTimer interface {
	Stop() bool
}

// timerFactory schedules f to run after d and returns a stoppable handle.
// Overridable per manager for tests (spec 5: "timers... run to completion
// before another task observes state" — a fake factory can run f inline).
type timerFactory func(d time.Duration, f func()) stunTimer

func realTimerFactory(d time.Duration, f func()) stunTimer {
	return time.AfterFunc(d, f)
}
