// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import "time"

// WriteState is the coarse writability classification spec 3/4.5 derives
// from recent ping outcomes.
type WriteState int

const (
	// WriteStateInit is the initial state: no response seen yet.
	WriteStateInit WriteState = iota + 1

	// WriteStateWritable means a ping response arrived recently enough.
	WriteStateWritable

	// WriteStateUnreliable means responses are arriving, but slowly or
	// sparsely enough to be in doubt.
	WriteStateUnreliable

	// WriteStateTimeout means the pair should be considered dead for
	// writing purposes.
	WriteStateTimeout
)

func (s WriteState) String() string {
	switch s {
	case WriteStateInit:
		return "init"
	case WriteStateWritable:
		return "writable"
	case WriteStateUnreliable:
		return "unreliable"
	case WriteStateTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// writeStateConfig holds the tunables spec 4.5 names, defaulted from
// constants.go and overridable via Connection's Set* commands (spec 6).
type writeStateConfig struct {
	unwritableTimeout   time.Duration
	unwritableMinChecks int
	inactiveTimeout     time.Duration
	timeoutFailures     int
	connectFailures     int
	connectTimeout      time.Duration
}

func defaultWriteStateConfig() writeStateConfig {
	return writeStateConfig{
		unwritableTimeout:   defaultUnwritableTimeout,
		unwritableMinChecks: defaultUnwritableMinChecks,
		inactiveTimeout:     defaultInactiveTimeout,
		timeoutFailures:     defaultTimeoutFailures,
		connectFailures:     defaultConnectFailures,
		connectTimeout:      defaultConnectTimeout,
	}
}

// writeStateTracker implements the spec 4.5 classification rules, firing a
// caller-supplied callback exactly once per transition.
type writeStateTracker struct {
	cfg     writeStateConfig
	state   WriteState
	onState func(old, new WriteState)
}

func newWriteStateTracker(cfg writeStateConfig, onState func(old, new WriteState)) *writeStateTracker {
	return &writeStateTracker{cfg: cfg, state: WriteStateInit, onState: onState}
}

// recompute is the spec 4.5 decision tree, called from UpdateState and
// after every response/timeout. createdAt is the Connection's creation
// time, used for the WRITE_INIT -> WRITE_TIMEOUT transition.
func (w *writeStateTracker) recompute(now, createdAt, lastResponse time.Time, haveResponse bool, pingsOutstanding int) WriteState {
	next := w.classify(now, createdAt, lastResponse, haveResponse, pingsOutstanding)
	if next != w.state {
		old := w.state
		w.state = next
		if w.onState != nil {
			w.onState(old, next)
		}
	}
	return w.state
}

func (w *writeStateTracker) classify(now, createdAt, lastResponse time.Time, haveResponse bool, pingsOutstanding int) WriteState {
	if !haveResponse {
		sinceCreation := now.Sub(createdAt)
		if pingsOutstanding >= w.cfg.connectFailures && sinceCreation >= w.cfg.connectTimeout {
			return WriteStateTimeout
		}
		return WriteStateInit
	}

	sinceResponse := now.Sub(lastResponse)

	// Open Question resolution (spec 9): WRITE_TIMEOUT dominates
	// WRITE_UNRELIABLE when both conditions hold, so this check runs
	// first regardless of how inactiveTimeout/unwritableTimeout compare.
	if sinceResponse >= w.cfg.inactiveTimeout && pingsOutstanding >= w.cfg.timeoutFailures {
		return WriteStateTimeout
	}

	if sinceResponse >= w.cfg.unwritableTimeout || pingsOutstanding >= w.cfg.unwritableMinChecks {
		return WriteStateUnreliable
	}

	return WriteStateWritable
}

// reset returns the tracker to WRITE_INIT without firing a transition
// event — used by Connection.ForgetLearnedState, which spec 4.9 says must
// NOT emit a state-change.
func (w *writeStateTracker) reset() {
	w.state = WriteStateInit
}

func (w *writeStateTracker) State() WriteState {
	return w.state
}
