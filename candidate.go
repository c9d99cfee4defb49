// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import "fmt"

// RelatedAddress is the address/port a server-reflexive or relay candidate
// was learned through, mirroring the shape pion/turn's RelayAddress takes
// so a gathering layer can hand one straight through without conversion.
type RelatedAddress struct {
	Address string
	Port    int
}

func (r *RelatedAddress) String() string {
	if r == nil || r.Address == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", r.Address, r.Port)
}

// Candidate is the descriptor for one end of a Connection's directed pair
// (spec 3): a local_candidate or remote_candidate. It is a plain value
// type — this package observes candidates, it does not gather them.
type Candidate struct {
	// Foundation groups candidates RFC 8445 considers equivalent.
	Foundation string

	// Component is the RFC 5245 4.1.2.1 component id used in the PRIORITY
	// formula (256 - component).
	Component uint16

	// NetworkType is the concrete network the candidate was gathered on.
	NetworkType NetworkType

	// Protocol is udp or tcp.
	Protocol Protocol

	// Type is host/srflx/prflx/relay.
	Type CandidateType

	// Address and Port are this candidate's socket address. Address may be
	// an mDNS ".local" name (spec SPEC_FULL ambient stack note); resolve
	// with internal/mcandidate before using it to send.
	Address string
	Port    int

	// RelatedAddress is set for srflx/relay candidates.
	RelatedAddress *RelatedAddress

	// Priority is the RFC 8445 5.1.2 candidate priority. Zero means
	// "compute from Type/Component/local preference" via ComputePriority().
	Priority uint32

	// Ufrag/Password are this candidate's ICE credentials (spec 3).
	Ufrag    string
	Password string

	// Generation increments on an ICE restart.
	Generation uint32

	// NetworkCost is the RFC 8445-adjacent "network cost" hint used to
	// break priority ties between otherwise-equal pairs (e.g. prefer
	// Wi-Fi over cellular). Zero is the cheapest/best network.
	NetworkCost uint16

	// URL is the STUN/TURN server URL this candidate was gathered through,
	// if any (srflx/relay only).
	URL string
}

// typePreference implements the RFC 8445 5.1.2.1 default type preferences.
func (c *Candidate) typePreference() uint32 {
	switch c.Type {
	case CandidateTypeHost:
		return 126
	case CandidateTypePeerReflexive:
		return 110
	case CandidateTypeServerReflexive:
		return 100
	case CandidateTypeRelay:
		return 0
	default:
		return 0
	}
}

// localPreference approximates RFC 8445 5.1.2.2's local preference: lower
// NetworkCost (a better network) yields a higher preference.
func (c *Candidate) localPreference() uint32 {
	const maxCost = 999
	cost := uint32(c.NetworkCost)
	if cost > maxCost {
		cost = maxCost
	}
	return maxCost - cost
}

// ComputePriority returns the RFC 8445 5.1.2.1 candidate priority when
// Priority is unset, matching the formula used for PRIORITY attributes a
// peer-reflexive candidate would be assigned (spec 4.2).
func (c *Candidate) ComputePriority() uint32 {
	if c.Priority != 0 {
		return c.Priority
	}
	component := uint32(c.Component)
	if component == 0 {
		component = 1
	}
	return c.typePreference()<<24 | c.localPreference()<<8 | (256 - component)
}

func (c *Candidate) String() string {
	return fmt.Sprintf("%s:%s/%s/%d/%d", c.Type, c.Protocol, c.Address, c.Port, c.ComputePriority())
}

// peerReflexivePriority implements the PRIORITY math spec 4.2 cites for a
// ping built from the local side of a pair: type_pref<<24 |
// (local_pref<<8) | (256 - component), using the peer-reflexive type
// preference since that's what the candidate would be classified as if
// the remote learned it this way.
func peerReflexivePriority(local *Candidate) uint32 {
	const peerReflexiveTypePreference = 110
	component := uint32(local.Component)
	if component == 0 {
		component = 1
	}
	return peerReflexiveTypePreference<<24 | local.localPreference()<<8 | (256 - component)
}
