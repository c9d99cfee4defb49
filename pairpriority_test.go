// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidatePairPriority_ControllingUsesLocalAsG(t *testing.T) {
	local := uint32(1000)
	remote := uint32(2000)

	controlling := CandidatePairPriority(local, remote, true)
	controlled := CandidatePairPriority(local, remote, false)

	// Swapping which side is G/D leaves the min/max terms alone but flips
	// the tie bit, so the two results must differ for asymmetric priorities.
	assert.NotEqual(t, controlling, controlled)
}

func TestCandidatePairPriority_SymmetricWhenEqual(t *testing.T) {
	got := CandidatePairPriority(500, 500, true)
	want := (uint64(1)<<32)*500 + 2*500 + 0
	assert.Equal(t, want, got)
}

func TestCandidatePairPriority_TieBitFavorsGreaterG(t *testing.T) {
	higher := CandidatePairPriority(2000, 1000, true) // g=2000 > d=1000
	lower := CandidatePairPriority(1000, 2000, true)  // g=1000 < d=2000
	assert.Greater(t, higher, lower)
}
