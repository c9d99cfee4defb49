// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func idAt(b byte) [TransactionIDSize]byte {
	var id [TransactionIDSize]byte
	id[0] = b
	return id
}

func TestPingHistory_ClearUpToRemovesMatchedAndOlder(t *testing.T) {
	h := newPingHistory(10)
	now := time.Now()

	h.add(idAt(1), now, 0)
	h.add(idAt(2), now, 0)
	h.add(idAt(3), now, 0)

	match, ok := h.clearUpTo(idAt(2))
	assert.True(t, ok)
	assert.Equal(t, idAt(2), match.id)
	assert.Equal(t, 1, h.len()) // only id(3) remains
}

func TestPingHistory_ClearUpToUnknownIDIsNoOp(t *testing.T) {
	h := newPingHistory(10)
	now := time.Now()
	h.add(idAt(1), now, 0)

	_, ok := h.clearUpTo(idAt(99))
	assert.False(t, ok)
	assert.Equal(t, 1, h.len())
}

func TestPingHistory_TrimsToBound(t *testing.T) {
	h := newPingHistory(2)
	now := time.Now()

	h.add(idAt(1), now, 0)
	h.add(idAt(2), now, 0)
	h.add(idAt(3), now, 0)

	assert.Equal(t, 2, h.len())
	_, ok := h.clearUpTo(idAt(1))
	assert.False(t, ok) // id(1) was trimmed out already
}

func TestPingHistory_Reset(t *testing.T) {
	h := newPingHistory(10)
	h.add(idAt(1), time.Now(), 0)
	h.reset()
	assert.Equal(t, 0, h.len())
}
