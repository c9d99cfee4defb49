// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/pion/logging"
	"github.com/pion/randutil"
	"github.com/pion/stun/v3"

	"github.com/pion/ice/internal/iceattr"
	"github.com/pion/ice/internal/stunx"
)

// connTask is one closure posted onto a Connection's task channel,
// mirroring the vendored pion/ice Agent's task{fn, done} pair.
type connTask struct {
	fn   func()
	done chan struct{}
}

// Connection is one directed candidate pair's connectivity-check state: a
// local candidate, a remote candidate, and everything RFC 8445 connectivity
// checks accumulate about that pair (spec 3). All of its exported commands
// are safe to call from any goroutine; they post onto an internal task
// channel drained by a single worker goroutine ("the network sequence",
// spec 5), generalized from the teacher's single Agent-wide
// chanTask/taskLoop in agent.go down to one per Connection.
type Connection struct {
	id  string
	log logging.LeveledLogger

	port *PortHandle

	local  *Candidate
	remote *Candidate

	cfg ConnectionConfig

	chanTask     chan connTask
	stopCh       chan struct{}
	closeOnce    func()
	teardownOnce sync.Once

	createdAt time.Time

	connected bool
	pruned    bool
	selected  bool

	write   *writeStateTracker
	receive *receiveStateTracker
	nom     *nominationTracker

	requests *stunRequestManager
	history  *pingHistory
	rtt      rttEstimator

	sendRate *rateTracker
	recvRate *rateTracker

	goog piggybackGoogState

	lastResponseReceived time.Time
	haveResponse         bool
	lastDataReceived      time.Time
	lastRequestReceived   time.Time
	lastPingIDReceived    [TransactionIDSize]byte
	haveLastPingID        bool

	lastSendErr error

	events eventPublisher
}

// piggybackGoogState bundles the GOOG_PING elision state with the
// DTLS-piggyback hooks, since both ride along on the same outbound/inbound
// message without the core caring about their contents.
type piggybackGoogState struct {
	elision  googPingElision
	piggyback *PiggybackHooks
}

// NewConnection constructs a Connection for the directed pair (local,
// remote), bound to port, and starts its network-sequence worker
// goroutine. Callers own calling Shutdown/Destroy to stop it.
func NewConnection(id string, local, remote *Candidate, port Port, cfg ConnectionConfig) *Connection {
	if cfg.LoggerFactory == nil {
		cfg.LoggerFactory = logging.NewDefaultLoggerFactory()
	}
	log := cfg.LoggerFactory.NewLogger("ice")

	c := &Connection{
		id:        id,
		log:       log,
		port:      NewPortHandle(port),
		local:     local,
		remote:    remote,
		cfg:       cfg,
		chanTask:  make(chan connTask),
		createdAt: time.Now(),
		history:   newPingHistory(cfg.MaxPingsSinceLastResponse),
		sendRate:  newRateTracker(time.Second),
		recvRate:  newRateTracker(time.Second),
		goog:      piggybackGoogState{piggyback: cfg.Piggyback},
	}

	c.write = newWriteStateTracker(cfg.writeStateConfig(), func(old, next WriteState) {
		c.events.EmitStateChange(c, ReasonWriteState)
		if next == WriteStateWritable && old != WriteStateWritable {
			c.events.EmitReadyToSend(c)
		}
	})
	c.receive = newReceiveStateTracker(cfg.ReceivingTimeout, func(old, next bool) {
		c.events.EmitStateChange(c, ReasonReceiveState)
	})
	c.nom = &nominationTracker{}

	c.requests = newStunRequestManager(log, c.sendMessage, stunRequestManagerCallbacks{
		onSuccess: c.onStunSuccess,
		onError:   c.onStunError,
		onTimeout: c.onStunTimeout,
	})
	c.requests.rttEstimate = func() time.Duration { return c.rtt.estimate }
	// Retransmit timers fire on their own goroutine (realTimerFactory is
	// time.AfterFunc); route their fallout through the network sequence
	// before it touches inFlight or any Connection state (spec 5).
	c.requests.dispatch = c.run

	c.stopCh = make(chan struct{})
	c.closeOnce = func() { close(c.stopCh) }
	go c.taskLoop(c.stopCh)

	return c
}

// Subscribe registers h's non-nil callback fields (spec 6 "Events").
func (c *Connection) Subscribe(h ConnectionEventHandler) {
	c.events.Subscribe(h)
}

// run posts fn onto the network sequence and blocks until it has executed,
// mirroring Agent.run in the vendored agent.go. Safe to call from any
// goroutine except the worker goroutine itself: from there (inside another
// run closure or an event callback) the worker cannot drain chanTask while
// it is busy with the caller, so the call deadlocks. Once
// the Connection has been torn down (Shutdown/Destroy), taskLoop has
// exited and nothing drains chanTask any more; run then returns false
// without invoking fn rather than blocking forever (spec 4.9/5: external
// calls arriving after pending_delete must not hang). Callers that need to
// report a "pending delete" condition to their own caller check the
// returned bool; queries that are happy to report the last-known state
// may ignore it.
func (c *Connection) run(fn func()) bool {
	done := make(chan struct{})
	select {
	case c.chanTask <- connTask{fn: fn, done: done}:
	case <-c.stopCh:
		return false
	}
	<-done
	return true
}

func (c *Connection) taskLoop(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case t := <-c.chanTask:
			t.fn()
			close(t.done)
		}
	}
}

func (c *Connection) sendMessage(m *stun.Message) error {
	port, ok := c.port.Get()
	if !ok {
		return ErrWeakPortGone
	}
	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", c.remote.Address, c.remote.Port))
	if err != nil {
		return err
	}
	n, err := port.Send(m.Raw, addr)
	if err != nil {
		c.lastSendErr = &SendError{Err: err}
		return c.lastSendErr
	}
	c.sendRate.add(time.Now(), n)
	return nil
}

// BuildPingRequest constructs the next outbound Binding Request (or, when
// elision applies, a compact GOOG_PING) for this pair, per spec 4.2/4.3.
// delta is an optional GOOG_DELTA byte-string payload (spec 4.2); pass nil
// when the caller has nothing to attach. It reads Connection state plus
// now, and records the ping in the ping history and the GOOG_PING elision
// cache.
func (c *Connection) BuildPingRequest(now time.Time, delta []byte) (*ConnectionRequest, error) {
	useCandidate := c.cfg.UseCandidateAttr && c.cfg.Role == RoleControlling
	nomination := c.nom.Nomination()

	setters := []stun.Setter{
		stun.TransactionID,
		stun.BindingRequest,
		stun.NewUsername(c.remote.Ufrag + ":" + c.local.Ufrag),
		iceattr.Uint32Attr{Type: iceattr.AttrPriority, Value: peerReflexivePriority(c.local)},
	}
	if c.cfg.Role == RoleControlling {
		setters = append(setters, iceattr.Uint64Attr{Type: iceattr.AttrICEControlling, Value: c.cfg.LocalTiebreaker})
	} else {
		setters = append(setters, iceattr.Uint64Attr{Type: iceattr.AttrICEControlled, Value: c.cfg.LocalTiebreaker})
	}
	if useCandidate {
		setters = append(setters, iceattr.Flag{Type: iceattr.AttrUseCandidate})
	}
	if nomination != 0 && c.cfg.SupportsRenomination {
		setters = append(setters, iceattr.Uint32Attr{Type: iceattr.AttrNomination, Value: nomination})
	}
	if len(delta) > 0 {
		setters = append(setters, iceattr.BytesAttr{Type: iceattr.AttrGoogDelta, Value: delta})
	}

	m, err := stun.Build(setters...)
	if err != nil {
		return nil, err
	}
	if err := applyPiggyback(c.goog.piggyback, m); err != nil {
		return nil, err
	}
	// The attributes after the 20-byte header and before MESSAGE-INTEGRITY
	// do not depend on the random transaction id; they are what GOOG_PING
	// elision compares between consecutive pings.
	const stunHeaderSize = 20
	body := append([]byte(nil), m.Raw[stunHeaderSize:]...)
	if err := stun.NewShortTermIntegrity(c.remote.Password).AddTo(m); err != nil {
		return nil, err
	}
	if err := stun.Fingerprint.AddTo(m); err != nil {
		return nil, err
	}

	req := &ConnectionRequest{
		TransactionID: m.TransactionID,
		Message:       m,
		UseCandidate:  useCandidate,
		Nomination:    nomination,
	}

	if c.goog.elision.canElide(body) {
		googReq, err := buildGoogPingRequest(c.remote.Ufrag+":"+c.local.Ufrag, c.remote.Password)
		if err != nil {
			return nil, err
		}
		req.Message = googReq
		req.TransactionID = googReq.TransactionID
		req.IsGoogPing = true
	} else {
		c.goog.elision.rememberFullBinding(body)
	}

	c.history.add(req.TransactionID, now, nomination)
	return req, nil
}

// Ping builds and sends the next Binding Request for this pair (spec
// 4.2/4.3), safe to call from any goroutine. now is the caller's clock
// reading (so timed test scenarios can drive it deterministically); delta
// is an optional GOOG_DELTA payload to attach (spec 6's `Ping(now, delta?)`).
func (c *Connection) Ping(now time.Time, delta []byte) error {
	var sendErr error
	if ran := c.run(func() {
		if c.pruned {
			sendErr = ErrConnectionPruned
			return
		}
		req, err := c.BuildPingRequest(now, delta)
		if err != nil {
			sendErr = err
			return
		}
		sendErr = c.requests.Send(req, now)
	}); !ran {
		return ErrConnectionPendingDelete
	}
	return sendErr
}

// UpdateState recomputes write/receive state against now, the periodic
// tick spec 4.5/4.6 describe ("evaluated ... on every ping outcome and
// periodically"), driven by the caller's clock per spec 6's
// `UpdateState(now)`.
func (c *Connection) UpdateState(now time.Time) {
	c.run(func() {
		c.write.recompute(now, c.createdAt, c.lastResponseReceived, c.haveResponse, c.history.len())
		c.receive.recompute(now, c.lastReceivedAny())
	})
}

func (c *Connection) lastReceivedAny() time.Time {
	last := c.lastDataReceived
	if c.lastRequestReceived.After(last) {
		last = c.lastRequestReceived
	}
	if c.lastResponseReceived.After(last) {
		last = c.lastResponseReceived
	}
	return last
}

// OnReadPacket is the owning Port's upcall for any inbound datagram
// demuxed to this Connection (spec 2's "owning Port" relationship). from
// is the packet's actual source address, used for the RFC 5245 7.2.1.3
// peer-reflexive discovery check. Non-STUN data only updates receive-state
// and the receive rate; STUN messages are dispatched to handleStunMessage.
func (c *Connection) OnReadPacket(data []byte, from net.Addr) {
	c.run(func() {
		now := time.Now()
		c.recvRate.add(now, len(data))
		if stun.IsMessage(data) {
			m := &stun.Message{Raw: append([]byte(nil), data...)}
			if err := m.Decode(); err != nil {
				c.log.Debugf("ice: failed to decode stun message: %v", err)
				return
			}
			c.handleStunMessage(m, from, now)
			return
		}
		c.lastDataReceived = now
		c.receive.seen(now)
	})
}

func (c *Connection) handleStunMessage(m *stun.Message, from net.Addr, now time.Time) {
	switch {
	case m.Type.Class == stun.ClassRequest && (m.Type.Method == stun.MethodBinding || m.Type == iceattr.GoogPingRequest):
		c.handleInboundRequest(m, from, now)
	default:
		if c.requests.HandleStun(m, now) {
			return
		}
		c.log.Tracef("ice: unmatched stun message %x, class %v", m.TransactionID, m.Type.Class)
	}
}

// onStunSuccess is the StunRequestManager success callback (spec 4.4).
func (c *Connection) onStunSuccess(req *ConnectionRequest, msg *stun.Message, now time.Time) {
	if err := stun.MessageIntegrity([]byte(c.remote.Password)).Check(msg); err != nil {
		c.log.Warnf("ice: bad message-integrity on response %x: %v", req.TransactionID, err)
		return
	}

	c.lastResponseReceived = now
	c.haveResponse = true
	c.receive.seen(now)

	matched, ok := c.history.clearUpTo(req.TransactionID)
	if ok {
		sample := now.Sub(matched.sentAt)
		c.rtt.update(sample)
		if matched.nomination != 0 {
			if c.nom.AckNomination(matched.nomination) {
				c.events.EmitNominated(c)
			}
		}
	}
	// Any successful response empties pings_since_last_response.
	c.history.reset()

	if req.IsGoogPing {
		c.goog.elision.observeGoogPingSuccess()
	}

	if ack, ok := iceattr.GetUint64(msg, iceattr.AttrGoogDeltaAck); ok && c.cfg.GoogDeltaAckConsumer != nil {
		c.cfg.GoogDeltaAckConsumer.ConsumeGoogDeltaAck(ack)
	}

	c.MaybeUpdateLocalCandidate(msg)
	consumePiggyback(c.goog.piggyback, msg, req)

	c.write.recompute(now, c.createdAt, c.lastResponseReceived, c.haveResponse, c.history.len())
}

// onStunError handles an ErrorResponse, including the RFC 5245 7.2.1.1
// role-conflict 487 reply (spec 4.4/4.7).
func (c *Connection) onStunError(req *ConnectionRequest, msg *stun.Message, now time.Time) {
	var ec stun.ErrorCodeAttribute
	if err := ec.GetFrom(msg); err == nil && ec.Code == stun.CodeRoleConflict {
		c.cfg.Role = swapRole(c.cfg.Role)
		c.log.Debugf("ice: role conflict on %x, switching to %s", req.TransactionID, c.cfg.Role)
		return
	}
	c.log.Debugf("ice: stun error response %x: %v", req.TransactionID, ec.Code)
}

func (c *Connection) onStunTimeout(req *ConnectionRequest, now time.Time) {
	c.write.recompute(now, c.createdAt, c.lastResponseReceived, c.haveResponse, c.history.len())
}

// MaybeUpdateLocalCandidate inspects a success response's XOR-MAPPED-ADDRESS
// and, when it names an address/port this Connection had not yet observed
// for its local candidate, promotes the local candidate to a peer-reflexive
// one and fires a candidate-updated state change (spec 4.4).
func (c *Connection) MaybeUpdateLocalCandidate(msg *stun.Message) {
	var xorAddr stun.XORMappedAddress
	if err := xorAddr.GetFrom(msg); err != nil {
		return
	}
	if xorAddr.IP.String() == c.local.Address && xorAddr.Port == c.local.Port {
		return
	}
	c.local.Address = xorAddr.IP.String()
	c.local.Port = xorAddr.Port
	c.local.Type = CandidateTypePeerReflexive
	c.events.EmitStateChange(c, ReasonCandidateUpdated)
}

// MaybeUpdatePeerReflexiveCandidate promotes the remote candidate to
// peer-reflexive when an inbound request arrives from an address/port that
// does not match the remote candidate this pair was built with (spec 4.7,
// RFC 5245 7.2.1.3).
func (c *Connection) MaybeUpdatePeerReflexiveCandidate(from net.Addr, priority uint32) {
	host, portStr, err := net.SplitHostPort(from.String())
	if err != nil {
		return
	}
	port := 0
	fmt.Sscanf(portStr, "%d", &port)
	if host == c.remote.Address && port == c.remote.Port {
		return
	}
	c.remote.Address = host
	c.remote.Port = port
	c.remote.Type = CandidateTypePeerReflexive
	c.remote.Priority = priority
	c.events.EmitStateChange(c, ReasonCandidateUpdated)
}

// handleInboundRequest implements spec 4.7: authenticate, detect role
// conflict, observe USE-CANDIDATE/NOMINATION, answer with a success (or
// error) response.
func (c *Connection) handleInboundRequest(m *stun.Message, from net.Addr, now time.Time) {
	c.lastRequestReceived = now
	c.receive.seen(now)

	if err := stunx.AssertUsername(m, c.local.Ufrag+":"+c.remote.Ufrag); err != nil {
		c.sendErrorResponse(m, stun.CodeUnauthorized, "bad username")
		return
	}
	if err := stun.MessageIntegrity([]byte(c.local.Password)).Check(m); err != nil {
		c.sendErrorResponse(m, stun.CodeUnauthorized, "bad message-integrity")
		return
	}

	if conflict := c.detectRoleConflict(m); conflict != nil {
		if conflict == ErrRoleConflictRespond487 {
			c.sendErrorResponse(m, stun.CodeRoleConflict, "role conflict")
			return
		}
		c.cfg.Role = swapRole(c.cfg.Role)
	}

	priority, _ := iceattr.GetUint32(m, iceattr.AttrPriority)
	c.MaybeUpdatePeerReflexiveCandidate(from, priority)

	if m.Type == iceattr.GoogPingRequest {
		c.goog.elision.observeRemoteGoogPingRequest()
	}

	if m.Contains(iceattr.AttrUseCandidate) {
		nomination, _ := iceattr.GetUint32(m, iceattr.AttrNomination)
		if nomination == 0 {
			nomination = 1
		}
		if c.nom.ObserveRemoteNomination(nomination) {
			c.events.EmitNominated(c)
		}
	}

	// Symmetric half of spec 4.7's GOOG_DELTA handling lives in
	// onStunSuccess: GOOG_DELTA_ACK only ever arrives on a response, never
	// an inbound request.
	if delta, ok := iceattr.GetBytes(m, iceattr.AttrGoogDelta); ok && c.cfg.GoogDeltaConsumer != nil {
		ack := c.cfg.GoogDeltaConsumer.ConsumeGoogDelta(delta)
		c.sendSuccessResponseWithDeltaAck(m, ack)
		consumePiggyback(c.goog.piggyback, m, nil)
		return
	}

	consumePiggyback(c.goog.piggyback, m, nil)
	c.sendSuccessResponse(m)
}

// detectRoleConflict implements RFC 5245 7.2.1.1's tie-breaker comparison.
// Returns ErrRoleConflictRespond487 if this side should reject with 487,
// a non-nil sentinel (not necessarily that one) if this side should swap
// roles instead, or nil if there is no conflict.
func (c *Connection) detectRoleConflict(m *stun.Message) error {
	if controlling, ok := iceattr.GetUint64(m, iceattr.AttrICEControlling); ok {
		if c.cfg.Role == RoleControlling {
			if c.cfg.LocalTiebreaker >= controlling {
				return ErrRoleConflictRespond487
			}
			return ErrRoleConflictUnresolved
		}
	}
	if controlled, ok := iceattr.GetUint64(m, iceattr.AttrICEControlled); ok {
		if c.cfg.Role == RoleControlled {
			if c.cfg.LocalTiebreaker < controlled {
				return ErrRoleConflictRespond487
			}
			return ErrRoleConflictUnresolved
		}
	}
	return nil
}

func swapRole(r Role) Role {
	if r == RoleControlling {
		return RoleControlled
	}
	return RoleControlling
}

// successResponseType picks BindingSuccess or, when the request being
// answered was a GOOG_PING, iceattr.GoogPingSuccess (spec 4.7: "if the
// incoming request was a GOOG_PING, send GOOG_PING_RESPONSE") — a strict
// peer checks the response method against the request method, so the two
// compact-ping messages must share GOOG_PING's method, not Binding's.
func successResponseType(reqType stun.MessageType) stun.MessageType {
	if reqType == iceattr.GoogPingRequest {
		return iceattr.GoogPingSuccess
	}
	return stun.BindingSuccess
}

func errorResponseType(reqType stun.MessageType) stun.MessageType {
	if reqType == iceattr.GoogPingRequest {
		return iceattr.GoogPingError
	}
	return stun.BindingError
}

func (c *Connection) sendSuccessResponse(m *stun.Message) {
	out, err := stun.Build(m, successResponseType(m.Type),
		&stun.XORMappedAddress{IP: net.ParseIP(c.remote.Address), Port: c.remote.Port},
		stun.NewShortTermIntegrity(c.local.Password),
		stun.Fingerprint,
	)
	if err != nil {
		c.log.Warnf("ice: failed to build success response: %v", err)
		return
	}
	if err := c.sendMessage(out); err != nil {
		c.log.Warnf("ice: failed to send success response: %v", err)
	}
}

func (c *Connection) sendSuccessResponseWithDeltaAck(m *stun.Message, ack uint64) {
	out, err := stun.Build(m, successResponseType(m.Type),
		&stun.XORMappedAddress{IP: net.ParseIP(c.remote.Address), Port: c.remote.Port},
		iceattr.Uint64Attr{Type: iceattr.AttrGoogDeltaAck, Value: ack},
		stun.NewShortTermIntegrity(c.local.Password),
		stun.Fingerprint,
	)
	if err != nil {
		c.log.Warnf("ice: failed to build delta-ack response: %v", err)
		return
	}
	if err := c.sendMessage(out); err != nil {
		c.log.Warnf("ice: failed to send delta-ack response: %v", err)
	}
}

func (c *Connection) sendErrorResponse(m *stun.Message, code stun.ErrorCode, reason string) {
	out, err := stun.Build(m, errorResponseType(m.Type),
		&stun.ErrorCodeAttribute{Code: code, Reason: []byte(reason)},
		stun.Fingerprint,
	)
	if err != nil {
		c.log.Warnf("ice: failed to build error response: %v", err)
		return
	}
	if sendErr := c.sendMessage(out); sendErr != nil {
		c.log.Warnf("ice: failed to send error response: %v", sendErr)
	}
}

// Prune stops new pings from being sent on this pair without tearing it
// down (spec 4.9: a pruned pair may still answer inbound requests).
func (c *Connection) Prune() {
	c.run(func() {
		c.pruned = true
	})
}

// FailAndPrune forces WRITE_TIMEOUT and prunes the pair in one step, used
// when a channel has decided this pair can never succeed (spec 4.9).
func (c *Connection) FailAndPrune() {
	c.run(func() {
		c.pruned = true
		old := c.write.State()
		c.write.state = WriteStateTimeout
		if old != WriteStateTimeout {
			c.events.EmitStateChange(c, ReasonWriteState)
		}
	})
}

// ForgetLearnedState resets write-state, receive-state, RTT, and ping
// history as if the pair were newly created, without touching nomination
// (spec 4.9: nomination survives because renomination would otherwise be
// forgotten on every candidate change) and without firing events for any
// of these resets (spec 4.9's explicit "does not emit a state-change").
func (c *Connection) ForgetLearnedState() {
	c.run(func() {
		c.write.reset()
		c.receive.reset(time.Now())
		c.rtt.reset()
		c.history.reset()
		c.goog.elision.reset()
		c.haveResponse = false
		c.lastResponseReceived = time.Time{}
	})
}

// teardown is the shared, exactly-once body behind Shutdown and Destroy
// (spec 4.9: "Shutdown() is idempotent — on first call ... returns true;
// subsequent calls return false"). notifyPort distinguishes the two: only
// Destroy tells the owning Port to forget this Connection. Whichever of
// Shutdown/Destroy is called first decides notifyPort for the only
// teardown that will ever run; a later call of the other just observes
// didRun == false, per spec 4.9's "Destroy() calls Shutdown then arranges
// deallocation via the owning Port."
func (c *Connection) teardown(notifyPort bool) bool {
	didRun := false
	c.teardownOnce.Do(func() {
		didRun = true
		var port Port
		c.run(func() {
			c.requests.CancelAll()
			if notifyPort {
				port, _ = c.port.Get()
			}
			c.port.Invalidate()
			c.events.EmitDestroyed(c)
		})
		// Notify the Port off the worker goroutine and before it stops, so
		// a Port that queries c (e.g. RemoteCandidate) does not deadlock.
		if port != nil {
			port.DestroyConnection(c)
		}
		c.closeOnce()
	})
	return didRun
}

// Shutdown cancels in-flight transactions, releases the port handle, and
// publishes destroyed, without notifying the owning Port (spec 4.9: a
// graceful, local-only teardown, as opposed to Destroy's Port-visible
// one). Returns false if the Connection was already shut down or
// destroyed, in which case it is a no-op.
func (c *Connection) Shutdown() bool {
	return c.teardown(false)
}

// Destroy tears the Connection down for good: cancels in-flight
// transactions, notifies the owning Port so it stops demuxing to this
// Connection, releases the port handle, fires destroyed at most once, and
// stops the worker goroutine (spec 4.9/8's "destroy is idempotent and
// fires the destroyed event exactly once"). Returns false if the
// Connection was already shut down or destroyed.
func (c *Connection) Destroy() bool {
	return c.teardown(true)
}

// --- Set* configuration commands (spec 6), callable from any goroutine ---

func (c *Connection) SetReceivingTimeout(d time.Duration) {
	c.run(func() {
		c.cfg.ReceivingTimeout = d
		c.receive.timeout = d
	})
}

func (c *Connection) SetUnwritableTimeout(d time.Duration) {
	c.run(func() { c.write.cfg.unwritableTimeout = d })
}

func (c *Connection) SetInactiveTimeout(d time.Duration) {
	c.run(func() { c.write.cfg.inactiveTimeout = d })
}

func (c *Connection) SetUseCandidateAttr(v bool) {
	c.run(func() { c.cfg.UseCandidateAttr = v })
}

func (c *Connection) SetNomination(value uint32) {
	c.run(func() { c.nom.SetNomination(value) })
}

// SetIceFieldTrials toggles experimental behaviors a caller may want to
// gate without a full config rebuild (spec 6): currently only whether
// renomination's NOMINATION attribute is attached to outbound pings.
func (c *Connection) SetIceFieldTrials(supportsRenomination bool) {
	c.run(func() { c.cfg.SupportsRenomination = supportsRenomination })
}

// --- Read-only accessors (spec 6) ---
//
// Every one of these reads fields that are "touched only on the network
// sequence" (spec 3's closing invariant), so each posts through run()
// exactly like a command does rather than reading c's fields directly off
// whatever goroutine the caller happens to be on (spec 5: "implementations
// that receive external calls from other threads MUST post a task" — that
// applies to queries as much as commands). id never changes after
// construction, so it is safe to read directly (Nominated, below, is the
// other direct read).

func (c *Connection) ID() string { return c.id }

// LocalCandidate returns a snapshot of the local candidate descriptor.
// Callers get a copy, not the live pointer, since the underlying Candidate
// is mutated in place (MaybeUpdateLocalCandidate) on the network sequence.
func (c *Connection) LocalCandidate() Candidate {
	var v Candidate
	c.run(func() { v = *c.local })
	return v
}

// RemoteCandidate returns a snapshot of the remote candidate descriptor,
// same rationale as LocalCandidate.
func (c *Connection) RemoteCandidate() Candidate {
	var v Candidate
	c.run(func() { v = *c.remote })
	return v
}

func (c *Connection) WriteState() WriteState {
	var v WriteState
	c.run(func() { v = c.write.State() })
	return v
}

func (c *Connection) Writable() bool {
	var v bool
	c.run(func() { v = c.write.State() == WriteStateWritable })
	return v
}

func (c *Connection) Receiving() bool {
	var v bool
	c.run(func() { v = c.receive.Receiving() })
	return v
}

func (c *Connection) Connected() bool {
	var v bool
	c.run(func() { v = c.haveResponse })
	return v
}

func (c *Connection) Pruned() bool {
	var v bool
	c.run(func() { v = c.pruned })
	return v
}

// Nominated does not need to post a task: nominationTracker's fields are
// already atomicUint32-backed (spec 5's concurrency note on Set*-style
// cross-goroutine writers), so a direct read is safe.
func (c *Connection) Nominated() bool { return c.nom.Nominated() }

func (c *Connection) PingsOutstanding() int {
	var v int
	c.run(func() { v = c.history.len() })
	return v
}

func (c *Connection) RTT() time.Duration {
	var v time.Duration
	c.run(func() { v = c.rtt.estimate })
	return v
}

// RTTSamples reports rtt_samples (spec 3/6): the count of responses this
// pair's RttEstimator has folded in.
func (c *Connection) RTTSamples() int {
	var v int
	c.run(func() { v = c.rtt.samples })
	return v
}

// TotalRoundTripTime reports total_round_trip_time (spec 3): the sum of
// every RTT sample ever observed on this pair.
func (c *Connection) TotalRoundTripTime() time.Duration {
	var v time.Duration
	c.run(func() { v = c.rtt.total })
	return v
}

// CurrentRoundTripTime reports current_round_trip_time (spec 3): the most
// recent raw RTT sample, unsmoothed.
func (c *Connection) CurrentRoundTripTime() time.Duration {
	var v time.Duration
	c.run(func() { v = c.rtt.current })
	return v
}

func (c *Connection) GetError() error {
	var v error
	c.run(func() { v = c.lastSendErr })
	return v
}

// Priority returns the RFC 5245 5.7.2 pair priority for this pair given
// the current role (spec 4.12/6).
func (c *Connection) Priority() uint64 {
	var v uint64
	c.run(func() {
		v = CandidatePairPriority(c.local.ComputePriority(), c.remote.ComputePriority(), c.cfg.Role == RoleControlling)
	})
	return v
}

func (c *Connection) TotalBytesSent(now time.Time) int {
	var v int
	c.run(func() { v = c.sendRate.TotalBytes(now) })
	return v
}

func (c *Connection) TotalBytesReceived(now time.Time) int {
	var v int
	c.run(func() { v = c.recvRate.TotalBytes(now) })
	return v
}

// newFoundation generates a random candidate foundation string, using the
// same dependency the teacher's candidate construction uses
// (randutil.GenerateCryptoRandomString in icecandidate.go), kept here for
// callers (tests, cmd/icecheck) building a *Candidate from scratch rather
// than learning one from a gatherer.
func newFoundation() (string, error) {
	return randutil.GenerateCryptoRandomString(32, "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
}
