// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"errors"
	"net"

	"github.com/pion/turn/v4"
)

// ErrRelayAddrNotUDP indicates a TURN allocation's relayed transport
// address was not the UDP address this package expects.
var ErrRelayAddrNotUDP = errors.New("ice: relay address is not a udp address")

// NewRelayCandidate allocates a TURN relay transport address through
// client and wraps it as a relay-type Candidate (spec 3's Type ==
// CandidateTypeRelay), mirroring the relay-address shape
// examples/ice-proxy/turn.go's RelayAddressGenerator hands to a TURN
// server, but from the client side: this module observes and pings
// candidates, it does not run a TURN server itself.
func NewRelayCandidate(client *turn.Client, base *Candidate) (*Candidate, error) {
	relayConn, err := client.Allocate()
	if err != nil {
		return nil, err
	}

	relayAddr, ok := relayConn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return nil, ErrRelayAddrNotUDP
	}

	return &Candidate{
		Foundation:     base.Foundation,
		Component:      base.Component,
		NetworkType:    base.NetworkType,
		Protocol:       ProtocolUDP,
		Type:           CandidateTypeRelay,
		Address:        relayAddr.IP.String(),
		Port:           relayAddr.Port,
		RelatedAddress: &RelatedAddress{Address: base.Address, Port: base.Port},
		Ufrag:          base.Ufrag,
		Password:       base.Password,
		Generation:     base.Generation,
		NetworkCost:    base.NetworkCost,
	}, nil
}

// relayLongTermKey derives the TURN long-term credential key for username
// at realm, the same helper examples/ice-proxy/turn.go's AuthHandler uses
// server-side (turn.GenerateAuthKey), used here so a client dialing a TURN
// server with a static username/password can compute the matching key
// without duplicating the HMAC-MD5 recipe.
func relayLongTermKey(username, realm, password string) []byte {
	return turn.GenerateAuthKey(username, realm, password)
}
