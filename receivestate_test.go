// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReceiveStateTracker_NotReceivingBeforeAnyPacket(t *testing.T) {
	r := newReceiveStateTracker(defaultReceivingTimeout, nil)
	assert.False(t, r.Receiving())
}

func TestReceiveStateTracker_ReceivingWithinTimeout(t *testing.T) {
	r := newReceiveStateTracker(100*time.Millisecond, nil)
	now := time.Now()
	r.seen(now)
	r.recompute(now.Add(50*time.Millisecond), now)
	assert.True(t, r.Receiving())
}

func TestReceiveStateTracker_StopsReceivingAfterTimeout(t *testing.T) {
	r := newReceiveStateTracker(100*time.Millisecond, nil)
	now := time.Now()
	r.seen(now)
	r.recompute(now.Add(200*time.Millisecond), now)
	assert.False(t, r.Receiving())
}

func TestReceiveStateTracker_FiresCallbackOnTransitionOnly(t *testing.T) {
	var events int
	r := newReceiveStateTracker(100*time.Millisecond, func(old, next bool) { events++ })
	now := time.Now()

	r.seen(now)
	assert.Equal(t, 1, events) // false -> true

	r.recompute(now.Add(10*time.Millisecond), now)
	assert.Equal(t, 1, events) // still receiving, no extra event

	r.recompute(now.Add(200*time.Millisecond), now)
	assert.Equal(t, 2, events) // true -> false
}

func TestReceiveStateTracker_ResetDoesNotFireCallback(t *testing.T) {
	var events int
	r := newReceiveStateTracker(100*time.Millisecond, func(old, next bool) { events++ })
	now := time.Now()
	r.seen(now)
	assert.Equal(t, 1, events)

	r.reset(now)
	assert.False(t, r.Receiving())
	assert.Equal(t, 1, events)
}
