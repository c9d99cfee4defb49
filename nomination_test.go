// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNominationTracker_AckNominationIsMonotonic(t *testing.T) {
	var n nominationTracker

	assert.True(t, n.AckNomination(1))
	assert.Equal(t, uint32(1), n.AckedNomination())

	assert.True(t, n.AckNomination(2))
	assert.Equal(t, uint32(2), n.AckedNomination())

	// A later, lower value never regresses acked_nomination.
	assert.False(t, n.AckNomination(1))
	assert.Equal(t, uint32(2), n.AckedNomination())
}

func TestNominationTracker_AckZeroIsNoOp(t *testing.T) {
	var n nominationTracker
	assert.False(t, n.AckNomination(0))
	assert.Equal(t, uint32(0), n.AckedNomination())
}

func TestNominationTracker_ObserveRemoteNominationFirstTransitionOnly(t *testing.T) {
	var n nominationTracker

	assert.True(t, n.ObserveRemoteNomination(1))
	assert.False(t, n.ObserveRemoteNomination(2)) // already non-zero, not a "first" transition
	assert.Equal(t, uint32(2), n.RemoteNomination())

	// A later request with a lower nomination does not decrease it.
	assert.False(t, n.ObserveRemoteNomination(1))
	assert.Equal(t, uint32(2), n.RemoteNomination())
}

func TestNominationTracker_Nominated(t *testing.T) {
	var n nominationTracker
	assert.False(t, n.Nominated())

	n.AckNomination(1)
	assert.True(t, n.Nominated())

	var m nominationTracker
	m.ObserveRemoteNomination(1)
	assert.True(t, m.Nominated())
}

func TestNominationTracker_ResetClearsAllFields(t *testing.T) {
	var n nominationTracker
	n.SetNomination(5)
	n.AckNomination(5)
	n.ObserveRemoteNomination(3)

	n.reset()

	assert.Equal(t, uint32(0), n.Nomination())
	assert.Equal(t, uint32(0), n.AckedNomination())
	assert.Equal(t, uint32(0), n.RemoteNomination())
}
