// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidate_ComputePriorityUsesTypePreferenceOrdering(t *testing.T) {
	host := &Candidate{Type: CandidateTypeHost, Component: 1}
	srflx := &Candidate{Type: CandidateTypeServerReflexive, Component: 1}
	prflx := &Candidate{Type: CandidateTypePeerReflexive, Component: 1}
	relay := &Candidate{Type: CandidateTypeRelay, Component: 1}

	assert.Greater(t, host.ComputePriority(), prflx.ComputePriority())
	assert.Greater(t, prflx.ComputePriority(), srflx.ComputePriority())
	assert.Greater(t, srflx.ComputePriority(), relay.ComputePriority())
}

func TestCandidate_ComputePriorityHonorsExplicitValue(t *testing.T) {
	c := &Candidate{Type: CandidateTypeHost, Priority: 12345}
	assert.Equal(t, uint32(12345), c.ComputePriority())
}

func TestCandidate_LowerNetworkCostWinsPriority(t *testing.T) {
	cheap := &Candidate{Type: CandidateTypeHost, Component: 1, NetworkCost: 0}
	expensive := &Candidate{Type: CandidateTypeHost, Component: 1, NetworkCost: 500}
	assert.Greater(t, cheap.ComputePriority(), expensive.ComputePriority())
}

func TestPeerReflexivePriority_UsesPeerReflexiveTypePreference(t *testing.T) {
	local := &Candidate{Type: CandidateTypeHost, Component: 1}
	got := peerReflexivePriority(local)

	// type preference 110 shifted into the top byte.
	assert.Equal(t, uint32(110)<<24|local.localPreference()<<8|255, got)
}

func TestRelatedAddress_StringFormatsHostPort(t *testing.T) {
	r := &RelatedAddress{Address: "203.0.113.1", Port: 54321}
	assert.Equal(t, "203.0.113.1:54321", r.String())
}

func TestRelatedAddress_NilIsEmptyString(t *testing.T) {
	var r *RelatedAddress
	assert.Equal(t, "", r.String())
}
