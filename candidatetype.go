// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import "fmt"

// CandidateType represents the type of an ICE candidate, RFC 8445 5.1.1.
type CandidateType int

const (
	// CandidateTypeHost is a candidate obtained by binding to a specific
	// port on a local address.
	CandidateTypeHost CandidateType = iota + 1

	// CandidateTypeServerReflexive is a candidate whose address/port is a
	// NAT binding observed through a STUN server.
	CandidateTypeServerReflexive

	// CandidateTypePeerReflexive is a candidate learned solely by
	// observing a peer's STUN source address (spec Glossary).
	CandidateTypePeerReflexive

	// CandidateTypeRelay is a candidate obtained from a TURN relay.
	CandidateTypeRelay
)

const (
	candidateTypeHostStr   = "host"
	candidateTypeSrflxStr  = "srflx"
	candidateTypePrflxStr  = "prflx"
	candidateTypeRelayStr  = "relay"
	candidateTypeUnknown   = "unknown"
)

// NewCandidateType parses the wire string form of a CandidateType.
func NewCandidateType(raw string) (CandidateType, error) {
	switch raw {
	case candidateTypeHostStr:
		return CandidateTypeHost, nil
	case candidateTypeSrflxStr:
		return CandidateTypeServerReflexive, nil
	case candidateTypePrflxStr:
		return CandidateTypePeerReflexive, nil
	case candidateTypeRelayStr:
		return CandidateTypeRelay, nil
	default:
		return CandidateType(Unknown), fmt.Errorf("%w: %s", ErrUnknownCandidateType, raw)
	}
}

func (t CandidateType) String() string {
	switch t {
	case CandidateTypeHost:
		return candidateTypeHostStr
	case CandidateTypeServerReflexive:
		return candidateTypeSrflxStr
	case CandidateTypePeerReflexive:
		return candidateTypePrflxStr
	case CandidateTypeRelay:
		return candidateTypeRelayStr
	default:
		return candidateTypeUnknown
	}
}
