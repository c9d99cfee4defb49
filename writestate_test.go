// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWriteStateTracker_InitUntilConnectTimeout(t *testing.T) {
	cfg := defaultWriteStateConfig()
	w := newWriteStateTracker(cfg, nil)

	created := time.Now()

	assert.Equal(t, WriteStateInit, w.classify(created, created, time.Time{}, false, 0))

	late := created.Add(cfg.connectTimeout + time.Second)
	assert.Equal(t, WriteStateTimeout, w.classify(late, created, time.Time{}, false, cfg.connectFailures))

	assert.Equal(t, WriteStateInit, w.classify(late, created, time.Time{}, false, cfg.connectFailures-1))
}

func TestWriteStateTracker_WritableAfterResponse(t *testing.T) {
	cfg := defaultWriteStateConfig()
	w := newWriteStateTracker(cfg, nil)
	created := time.Now()
	resp := created.Add(time.Millisecond)

	got := w.classify(resp.Add(time.Millisecond), created, resp, true, 0)
	assert.Equal(t, WriteStateWritable, got)
}

func TestWriteStateTracker_UnreliableOnManyOutstanding(t *testing.T) {
	cfg := defaultWriteStateConfig()
	w := newWriteStateTracker(cfg, nil)
	created := time.Now()
	resp := created

	got := w.classify(resp, created, resp, true, cfg.unwritableMinChecks)
	assert.Equal(t, WriteStateUnreliable, got)
}

func TestWriteStateTracker_TimeoutDominatesUnreliable(t *testing.T) {
	// Open Question resolution: when both the unwritable and the
	// inactive/timeout conditions hold simultaneously, WRITE_TIMEOUT wins.
	cfg := defaultWriteStateConfig()
	cfg.inactiveTimeout = cfg.unwritableTimeout // force overlap
	w := newWriteStateTracker(cfg, nil)
	created := time.Now()
	resp := created

	now := resp.Add(cfg.unwritableTimeout + time.Second)
	got := w.classify(now, created, resp, true, cfg.timeoutFailures)
	assert.Equal(t, WriteStateTimeout, got)
}

func TestWriteStateTracker_FiresCallbackOnceOnTransition(t *testing.T) {
	cfg := defaultWriteStateConfig()
	var transitions [][2]WriteState
	w := newWriteStateTracker(cfg, func(old, next WriteState) {
		transitions = append(transitions, [2]WriteState{old, next})
	})

	created := time.Now()
	resp := created.Add(time.Millisecond)

	w.recompute(resp, created, time.Time{}, false, 0) // still init, no transition
	w.recompute(resp.Add(time.Millisecond), created, resp, true, 0)
	w.recompute(resp.Add(2*time.Millisecond), created, resp, true, 0) // unchanged, no extra event

	if assert.Len(t, transitions, 1) {
		assert.Equal(t, WriteStateInit, transitions[0][0])
		assert.Equal(t, WriteStateWritable, transitions[0][1])
	}
}

func TestWriteStateTracker_ResetDoesNotFireCallback(t *testing.T) {
	var fired bool
	w := newWriteStateTracker(defaultWriteStateConfig(), func(old, next WriteState) { fired = true })
	w.state = WriteStateWritable

	w.reset()

	assert.Equal(t, WriteStateInit, w.State())
	assert.False(t, fired)
}
