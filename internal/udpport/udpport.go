// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package udpport is a reference ice.Port implementation over a real (or
// virtual-network-simulated) UDP socket, built on github.com/pion/transport
// so the same code works against a vnet.Net in tests and a stdnet.Net in
// production — the split the vendored pion/ice agent.go makes with its
// `net transport.Net` field, generalized here from "one net.Conn per
// candidate inside a big Agent" down to "one UDPPort per local candidate".
package udpport

import (
	"net"
	"strconv"
	"sync"

	"github.com/pion/logging"
	"github.com/pion/transport/v4"
	"github.com/pion/transport/v4/stdnet"

	"github.com/pion/ice"
)

// Reader is the narrow upcall a UDPPort drives on every inbound datagram,
// satisfied by *ice.Connection.OnReadPacket.
type Reader interface {
	OnReadPacket(data []byte, from net.Addr)
}

// UDPPort binds one local UDP socket and demuxes inbound packets to
// whichever Connection is currently registered for the packet's source
// address, implementing ice.Port.
type UDPPort struct {
	net  transport.Net
	conn net.PacketConn
	log  logging.LeveledLogger

	networkType ice.NetworkType

	mu    sync.RWMutex
	conns map[string]Reader

	closeOnce sync.Once
	done      chan struct{}
}

// NewUDPPort opens a UDP socket on laddr using n (pass nil to use the
// host's real network stack via stdnet.NewNet()).
func NewUDPPort(n transport.Net, laddr *net.UDPAddr, log logging.LeveledLogger) (*UDPPort, error) {
	var err error
	if n == nil {
		n, err = stdnet.NewNet()
		if err != nil {
			return nil, err
		}
	}
	conn, err := n.ListenUDP("udp", laddr)
	if err != nil {
		return nil, err
	}

	p := &UDPPort{
		net:         n,
		conn:        conn,
		log:         log,
		networkType: ice.NetworkTypeUDP4,
		conns:       make(map[string]Reader),
		done:        make(chan struct{}),
	}
	if laddr != nil && laddr.IP.To4() == nil {
		p.networkType = ice.NetworkTypeUDP6
	}
	go p.readLoop()
	return p, nil
}

// Register binds remoteAddr's packets to r, so a newly-constructed
// *ice.Connection starts receiving its pair's inbound traffic. remoteAddr
// must be in the same host:port form net.Addr.String() produces (what
// readLoop sees off the wire), not a Candidate's descriptive String() —
// use addrKey to build it from a *ice.Candidate.
func (p *UDPPort) Register(remoteAddr string, r Reader) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conns[remoteAddr] = r
}

// addrKey renders a Candidate's address/port the same way net.Addr.String()
// does, so it can be used as a Register/readLoop demux key.
func addrKey(address string, port int) string {
	return net.JoinHostPort(address, strconv.Itoa(port))
}

// Send implements ice.Port.
func (p *UDPPort) Send(data []byte, dest net.Addr) (int, error) {
	return p.conn.WriteTo(data, dest)
}

// Network implements ice.Port.
func (p *UDPPort) Network() ice.NetworkType {
	return p.networkType
}

// DestroyConnection implements ice.Port, unregistering c's remote address
// so packets from it are no longer demuxed anywhere.
func (p *UDPPort) DestroyConnection(c *ice.Connection) {
	remote := c.RemoteCandidate()
	key := addrKey(remote.Address, remote.Port)
	p.mu.Lock()
	delete(p.conns, key)
	p.mu.Unlock()
}

func (p *UDPPort) readLoop() {
	buf := make([]byte, 1500)
	for {
		select {
		case <-p.done:
			return
		default:
		}
		n, from, err := p.conn.ReadFrom(buf)
		if err != nil {
			if p.log != nil {
				p.log.Debugf("udpport: read error: %v", err)
			}
			return
		}
		p.mu.RLock()
		r, ok := p.conns[from.String()]
		p.mu.RUnlock()
		if !ok {
			continue
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		r.OnReadPacket(data, from)
	}
}

// Close stops the read loop and releases the socket.
func (p *UDPPort) Close() error {
	p.closeOnce.Do(func() { close(p.done) })
	return p.conn.Close()
}
