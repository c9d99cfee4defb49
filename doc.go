// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package ice implements the connectivity-check core of an Interactive
// Connectivity Establishment (ICE, RFC 5245/8445) agent: the per-pair
// state machine that drives STUN binding checks between a local candidate
// and a remote candidate, tracks writability and receiving status, and
// supports nomination by a controlling agent.
//
// This package deliberately stops at the boundary of a single directed
// candidate pair. Candidate gathering, SDP handling, pair prioritisation
// and selection, and the DTLS/SRTP media path all live one layer up, in
// the transport channel that owns a Connection.
package ice
