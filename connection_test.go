// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/pion/stun/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pion/ice/internal/iceattr"
)

// fakePort is a minimal in-memory Port that records every outbound
// message instead of touching a real socket, so tests can inspect and
// answer them directly.
type fakePort struct {
	mu   sync.Mutex
	sent [][]byte
}

func (p *fakePort) Send(data []byte, dest net.Addr) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := append([]byte(nil), data...)
	p.sent = append(p.sent, cp)
	return len(data), nil
}

func (p *fakePort) Network() NetworkType { return NetworkTypeUDP4 }

func (p *fakePort) DestroyConnection(c *Connection) {}

func (p *fakePort) last(t *testing.T) *stun.Message {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.sent)
	raw := p.sent[len(p.sent)-1]
	m := &stun.Message{Raw: append([]byte(nil), raw...)}
	require.NoError(t, m.Decode())
	return m
}

func newTestPair() (*Connection, *fakePort, *Candidate, *Candidate) {
	local := &Candidate{
		Type: CandidateTypeHost, Component: 1, NetworkType: NetworkTypeUDP4, Protocol: ProtocolUDP,
		Address: "10.0.0.1", Port: 5000, Ufrag: "lufrag", Password: "lpwd00000000000000000000000000",
	}
	remote := &Candidate{
		Type: CandidateTypeHost, Component: 1, NetworkType: NetworkTypeUDP4, Protocol: ProtocolUDP,
		Address: "10.0.0.2", Port: 5001, Ufrag: "rufrag", Password: "rpwd00000000000000000000000000",
	}
	port := &fakePort{}
	cfg := DefaultConnectionConfig()
	cfg.Role = RoleControlling
	cfg.LocalTiebreaker = 42
	conn := NewConnection("pair-1", local, remote, port, cfg)
	return conn, port, local, remote
}

func buildSuccessResponse(t *testing.T, req *stun.Message, password string) *stun.Message {
	t.Helper()
	resp, err := stun.Build(
		stun.BindingSuccess,
		fixedTransactionID(req.TransactionID),
		&stun.XORMappedAddress{IP: net.ParseIP("10.0.0.1"), Port: 5000},
		stun.NewShortTermIntegrity(password),
		stun.Fingerprint,
	)
	require.NoError(t, err)
	return resp
}

func TestConnection_PingSendsBindingRequestWithUseCandidate(t *testing.T) {
	conn, port, _, _ := newTestPair()
	defer conn.Shutdown()

	require.NoError(t, conn.Ping(time.Now(), nil))

	m := port.last(t)
	assert.Equal(t, stun.BindingRequest, m.Type)
	assert.True(t, m.Contains(stun.AttrUseCandidate))
	assert.True(t, m.Contains(iceattr.AttrICEControlling))
}

func TestConnection_FirstPingBringUpMarksWritableAndReceiving(t *testing.T) {
	conn, port, _, remote := newTestPair()
	defer conn.Shutdown()

	var stateChanges []StateChangeReason
	conn.Subscribe(ConnectionEventHandler{
		OnStateChange: func(c *Connection, reason StateChangeReason) {
			stateChanges = append(stateChanges, reason)
		},
	})

	require.NoError(t, conn.Ping(time.Now(), nil))
	req := port.last(t)

	resp := buildSuccessResponse(t, req, remote.Password)
	conn.OnReadPacket(resp.Raw, &net.UDPAddr{IP: net.ParseIP(remote.Address), Port: remote.Port})

	assert.Equal(t, WriteStateWritable, conn.WriteState())
	assert.True(t, conn.Receiving())
	assert.True(t, conn.Connected())
	assert.Contains(t, stateChanges, ReasonWriteState)
	assert.Contains(t, stateChanges, ReasonReceiveState)

	// spec 8 scenario 1: rtt_samples == 1 after the first response arrives.
	assert.Equal(t, 1, conn.RTTSamples())
	assert.Greater(t, conn.RTT(), time.Duration(0))
	assert.Equal(t, conn.RTT(), conn.CurrentRoundTripTime())
	assert.Equal(t, conn.RTT(), conn.TotalRoundTripTime())
}

func TestConnection_WriteTimeoutWhenNoResponseArrives(t *testing.T) {
	conn, _, _, _ := newTestPair()
	defer conn.Shutdown()

	conn.write.cfg.connectFailures = 1
	conn.write.cfg.connectTimeout = 0

	require.NoError(t, conn.Ping(time.Now(), nil))
	conn.UpdateState(time.Now())

	assert.Equal(t, WriteStateTimeout, conn.WriteState())
}

func TestConnection_RegularNominationAcksOnSuccess(t *testing.T) {
	conn, port, _, remote := newTestPair()
	defer conn.Shutdown()

	var nominated bool
	conn.Subscribe(ConnectionEventHandler{OnNominated: func(c *Connection) { nominated = true }})

	conn.SetNomination(1)
	require.NoError(t, conn.Ping(time.Now(), nil))
	req := port.last(t)

	resp := buildSuccessResponse(t, req, remote.Password)
	conn.OnReadPacket(resp.Raw, &net.UDPAddr{IP: net.ParseIP(remote.Address), Port: remote.Port})

	assert.True(t, nominated)
	assert.Equal(t, uint32(1), conn.nom.AckedNomination())
	assert.True(t, conn.Nominated())
}

func TestConnection_InboundUseCandidateObservesRemoteNomination(t *testing.T) {
	conn, _, local, remote := newTestPair()
	defer conn.Shutdown()
	conn.cfg.Role = RoleControlled

	var nominated bool
	conn.Subscribe(ConnectionEventHandler{OnNominated: func(c *Connection) { nominated = true }})

	req, err := stun.Build(
		stun.TransactionID,
		stun.BindingRequest,
		stun.NewUsername(local.Ufrag+":"+remote.Ufrag),
		iceattr.Flag{Type: iceattr.AttrUseCandidate},
		stun.NewShortTermIntegrity(local.Password),
		stun.Fingerprint,
	)
	require.NoError(t, err)

	conn.OnReadPacket(req.Raw, &net.UDPAddr{IP: net.ParseIP(remote.Address), Port: remote.Port})

	assert.True(t, nominated)
	assert.Equal(t, uint32(1), conn.nom.RemoteNomination())
}

func TestConnection_PruneStopsNewPings(t *testing.T) {
	conn, _, _, _ := newTestPair()
	defer conn.Shutdown()

	conn.Prune()
	assert.ErrorIs(t, conn.Ping(time.Now(), nil), ErrConnectionPruned)
}

func TestConnection_DestroyFiresDestroyedEventOnce(t *testing.T) {
	conn, _, _, _ := newTestPair()

	var destroyedCount int
	conn.Subscribe(ConnectionEventHandler{OnDestroyed: func(c *Connection) { destroyedCount++ }})

	conn.Destroy()
	assert.Equal(t, 1, destroyedCount)
}

func TestConnection_ShutdownAndDestroyAreIdempotentAndMutuallyExclusive(t *testing.T) {
	conn, _, _, _ := newTestPair()

	var destroyedCount int
	conn.Subscribe(ConnectionEventHandler{OnDestroyed: func(c *Connection) { destroyedCount++ }})

	assert.True(t, conn.Shutdown())
	assert.False(t, conn.Shutdown())
	assert.False(t, conn.Destroy())
	assert.Equal(t, 1, destroyedCount)

	// A Connection torn down by Shutdown must still accept later command
	// calls without hanging (spec 4.9/5).
	assert.ErrorIs(t, conn.Ping(time.Now(), nil), ErrConnectionPendingDelete)
}

func TestConnection_ForgetLearnedStateResetsWithoutNomination(t *testing.T) {
	conn, port, _, remote := newTestPair()
	defer conn.Shutdown()

	conn.SetNomination(1)
	require.NoError(t, conn.Ping(time.Now(), nil))
	req := port.last(t)
	resp := buildSuccessResponse(t, req, remote.Password)
	conn.OnReadPacket(resp.Raw, &net.UDPAddr{IP: net.ParseIP(remote.Address), Port: remote.Port})
	require.True(t, conn.Connected())

	conn.ForgetLearnedState()

	assert.Equal(t, WriteStateInit, conn.WriteState())
	assert.False(t, conn.Receiving())
	assert.False(t, conn.Connected())
	// Nomination is deliberately NOT reset by ForgetLearnedState.
	assert.True(t, conn.Nominated())
}
