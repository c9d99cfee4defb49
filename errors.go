// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"errors"
	"fmt"
)

// StunAuthError indicates a MESSAGE-INTEGRITY or USERNAME check failed on
// an inbound STUN message. The message was rejected with a 401 and left
// no other observable effect: no RTT sample, no write-state change.
type StunAuthError struct {
	Err error
}

func (e *StunAuthError) Error() string {
	return fmt.Sprintf("ice: stun auth error: %v", e.Err)
}

func (e *StunAuthError) Unwrap() error { return e.Err }

// Types of StunAuthErrors.
var (
	ErrBadMessageIntegrity = errors.New("message-integrity check failed")
	ErrBadUsername         = errors.New("username does not match local/remote ufrag pair")
)

// RoleConflictError indicates an inbound Binding Request disagreed with
// this Connection's ICE role and could not be resolved by the tie-breaker
// comparison in RFC 5245 7.2.1.1.
type RoleConflictError struct {
	Err error
}

func (e *RoleConflictError) Error() string {
	return fmt.Sprintf("ice: role conflict: %v", e.Err)
}

func (e *RoleConflictError) Unwrap() error { return e.Err }

// Types of RoleConflictErrors.
var (
	ErrRoleConflictRespond487 = errors.New("role conflict, local side keeps its role and responds 487")
	ErrRoleConflictUnresolved = errors.New("role conflict, local side must swap its role")
)

// TransactionTimeoutError indicates a STUN transaction exhausted its
// retransmission schedule (spec 4.1, RFC 5389 7.2.1) without a matching
// response.
type TransactionTimeoutError struct {
	TransactionID [TransactionIDSize]byte
}

func (e *TransactionTimeoutError) Error() string {
	return fmt.Sprintf("ice: stun transaction %x timed out", e.TransactionID)
}

// SendError wraps a transport-level send failure (GetError in spec 6).
type SendError struct {
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("ice: send error: %v", e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// ErrWeakPortGone indicates an operation observed the owning Port handle
// is no longer valid. Per spec 5/9 this is not a failure of the Connection
// itself; callers treat it as a silent no-op.
var ErrWeakPortGone = errors.New("ice: owning port is no longer available")

// Other sentinel errors used across the package.
var (
	ErrConnectionPendingDelete = errors.New("ice: connection is pending delete")
	ErrConnectionPruned        = errors.New("ice: connection is pruned, pings are not sent")
	ErrUnknownCandidateType    = errors.New("ice: unknown candidate type")
	ErrUnknownProtocol         = errors.New("ice: unknown protocol")
	ErrNoPiggybackConsumer     = errors.New("ice: no consumer registered for piggyback payload")
	ErrNoGoogDeltaConsumer     = errors.New("ice: no consumer registered for GOOG_DELTA attribute")
	ErrNotInFlight             = errors.New("ice: no in-flight transaction for this id")
)
