// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package mcandidate resolves a candidate's ".local" mDNS hostname to a
// routable address, the step SPEC_FULL's ambient-stack notes call for
// before a Candidate with an mDNS-obscured Address can be dialed. The
// vendored pion/ice agent.go keeps an *mdns.Conn on the Agent for exactly
// this (`mDNSConn *mdns.Conn`); this package pulls that single concern out
// on its own since nothing else in this module gathers candidates.
package mcandidate

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/pion/logging"
	"github.com/pion/mdns/v2"
)

// ErrNotMDNSName is returned by Resolve when addr does not end in ".local".
var ErrNotMDNSName = errors.New("mcandidate: not an mdns name")

// Resolver queries mDNS ".local" candidate names, generalized from the
// single agent-wide *mdns.Conn in the vendored agent.go to a standalone
// helper this module's callers can share across every Connection bound to
// the same Port.
type Resolver struct {
	conn *mdns.Conn
}

// NewResolver opens a multicast mDNS connection for querying ".local"
// names. Callers on platforms without multicast (e.g. restricted
// containers) should treat a non-nil error as "mDNS candidates cannot be
// resolved here" rather than a fatal condition.
func NewResolver(loggerFactory logging.LoggerFactory) (*Resolver, error) {
	addr4, err := net.ResolveUDPAddr("udp4", mdns.DefaultAddressIPv4)
	if err != nil {
		return nil, err
	}
	socket, err := net.ListenUDP("udp4", addr4)
	if err != nil {
		return nil, err
	}
	conn, err := mdns.Server(socket, &mdns.Config{
		LoggerFactory: loggerFactory,
	})
	if err != nil {
		return nil, err
	}
	return &Resolver{conn: conn}, nil
}

// Resolve queries name, which must end in ".local", and returns the
// address it currently maps to.
func (r *Resolver) Resolve(ctx context.Context, name string) (net.Addr, error) {
	if !strings.HasSuffix(name, ".local") {
		return nil, ErrNotMDNSName
	}
	addr, err := r.conn.Query(ctx, name)
	if err != nil {
		return nil, err
	}
	return addr, nil
}

// Close shuts down the underlying mDNS connection.
func (r *Resolver) Close() error {
	return r.conn.Close()
}
