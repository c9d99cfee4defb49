// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"time"

	"github.com/pion/logging"
	"github.com/pion/stun/v3"
)

// stunRequestManagerCallbacks are the Connection-supplied hooks spec 4.1
// describes as "deliver {response | error-response | timeout} callbacks
// keyed to the owning Connection".
type stunRequestManagerCallbacks struct {
	onSuccess func(req *ConnectionRequest, msg *stun.Message, at time.Time)
	onError   func(req *ConnectionRequest, msg *stun.Message, at time.Time)
	onTimeout func(req *ConnectionRequest, at time.Time)
}

// stunRequestManager owns the in-flight STUN transactions on one
// Connection (spec 2 item 3 / 4.1), grounded on the vendored pion/ice
// agent.go's pendingBindingRequests/invalidatePendingBindingRequests/
// handleInboundBindingSuccess, generalized from "one list shared by the
// whole Agent" to "one manager per Connection".
type stunRequestManager struct {
	log logging.LeveledLogger

	send func(msg *stun.Message) error

	minRTO, maxRTO time.Duration
	maxRetransmit  int

	// rttEstimate, when non-zero, seeds a request's initial RTO at
	// 2*rttEstimate per spec 4.1 ("current RTT x2 or configured floor").
	rttEstimate func() time.Duration

	newTimer timerFactory

	// dispatch runs a retransmit-timer callback before it is allowed to
	// touch inFlight or invoke a Connection callback. The real timer
	// factory fires on its own goroutine (spec 5: "implementations that
	// receive external calls from other threads MUST post a task"), so a
	// Connection wires this to its own run() to serialise timer fallout
	// back onto the network sequence. Defaults to direct invocation so a
	// bare manager (as used in this file's own tests) needs no dispatcher.
	dispatch func(func())

	inFlight map[[TransactionIDSize]byte]*ConnectionRequest

	callbacks stunRequestManagerCallbacks
}

func newStunRequestManager(log logging.LeveledLogger, send func(msg *stun.Message) error, cb stunRequestManagerCallbacks) *stunRequestManager {
	return &stunRequestManager{
		log:           log,
		send:          send,
		minRTO:        defaultMinRTO,
		maxRTO:        defaultMaxRTO,
		maxRetransmit: defaultMaxRetransmit,
		newTimer:      realTimerFactory,
		dispatch:      func(fn func()) { fn() },
		inFlight:      make(map[[TransactionIDSize]byte]*ConnectionRequest),
		callbacks:     cb,
	}
}

// initialRTO implements spec 4.1's "initial RTO = max(500ms, current RTT x
// 2 or configured floor)".
func (m *stunRequestManager) initialRTO() time.Duration {
	rto := m.minRTO
	if m.rttEstimate != nil {
		if est := m.rttEstimate(); est > 0 {
			if doubled := est * 2; doubled > rto {
				rto = doubled
			}
		}
	}
	return rto
}

// send serialises req's message, invokes the transport send callback, and
// starts its retransmission timer (spec 4.1's `send(request)`).
func (m *stunRequestManager) Send(req *ConnectionRequest, now time.Time) error {
	req.sentAt = now
	req.attempt = 1
	req.rto = m.initialRTO()

	m.inFlight[req.TransactionID] = req

	if err := m.send(req.Message); err != nil {
		return err
	}

	m.scheduleRetransmit(req)
	return nil
}

func (m *stunRequestManager) scheduleRetransmit(req *ConnectionRequest) {
	req.timer = m.newTimer(req.rto, func() {
		m.dispatch(func() { m.onRetransmitFired(req) })
	})
}

// onRetransmitFired handles one retransmit-timer firing. It must only ever
// run already-posted onto the network sequence via dispatch (spec 5):
// it mutates the unsynchronized inFlight map and calls straight into
// Connection callbacks that touch unsynchronized Connection state.
func (m *stunRequestManager) onRetransmitFired(req *ConnectionRequest) {
	if _, ok := m.inFlight[req.TransactionID]; !ok {
		return // already resolved or cancelled
	}

	if req.attempt >= m.maxRetransmit {
		delete(m.inFlight, req.TransactionID)
		if m.log != nil {
			m.log.Tracef("stun transaction %x exhausted %d attempts, timing out", req.TransactionID, req.attempt)
		}
		if m.callbacks.onTimeout != nil {
			m.callbacks.onTimeout(req, time.Now())
		}
		return
	}

	req.attempt++
	// 1x, 2x, 4x, 8x, 16x RTO schedule capped at maxRTO (spec 4.1).
	interval := req.rto << (req.attempt - 2) //nolint:gosec // bounded by maxRetransmit
	if interval > m.maxRTO || interval <= 0 {
		interval = m.maxRTO
	}

	if err := m.send(req.Message); err != nil {
		if m.log != nil {
			m.log.Warnf("failed to retransmit stun transaction %x: %v", req.TransactionID, err)
		}
	}

	m.scheduleRetransmit2(req, interval)
}

func (m *stunRequestManager) scheduleRetransmit2(req *ConnectionRequest, interval time.Duration) {
	req.timer = m.newTimer(interval, func() {
		m.dispatch(func() { m.onRetransmitFired(req) })
	})
}

// HandleStun attempts to match msg against an in-flight transaction by its
// 96-bit transaction id (spec 4.1: "matched strictly by 96-bit transaction
// id. Out-of-transaction responses are silently ignored"). Returns whether
// the message was consumed.
func (m *stunRequestManager) HandleStun(msg *stun.Message, now time.Time) bool {
	req, ok := m.inFlight[msg.TransactionID]
	if !ok {
		return false
	}
	delete(m.inFlight, msg.TransactionID)
	if req.timer != nil {
		req.timer.Stop()
	}

	switch msg.Type.Class {
	case stun.ClassSuccessResponse:
		if m.callbacks.onSuccess != nil {
			m.callbacks.onSuccess(req, msg, now)
		}
	case stun.ClassErrorResponse:
		if m.callbacks.onError != nil {
			m.callbacks.onError(req, msg, now)
		}
	default:
		// Not a response at all; treat as unmatched (Indications never
		// complete a transaction).
		m.inFlight[msg.TransactionID] = req
		return false
	}
	return true
}

// CancelAll drops all transactions silently (spec 4.1, used by Shutdown).
func (m *stunRequestManager) CancelAll() {
	for id, req := range m.inFlight {
		if req.timer != nil {
			req.timer.Stop()
		}
		delete(m.inFlight, id)
	}
}

// Outstanding reports the number of in-flight transactions (diagnostics).
func (m *stunRequestManager) Outstanding() int {
	return len(m.inFlight)
}
