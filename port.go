// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import "net"

// Port is the narrow downward interface a Connection calls into (spec 6
// "Downward interface consumed from the owning Port"). A real
// implementation owns a UDP or TCP socket and fans packets out to whatever
// Connections are bound to it; this package only needs to send through it
// and ask it to release resources at teardown.
//
// Per spec 9's "weak port reference" design note, a Connection never holds
// a Port directly — it holds a PortHandle, which may become invalid if the
// owning Port is destroyed first. Every method that reaches for the Port
// checks PortHandle.Valid() and treats false as ErrWeakPortGone, a silent
// no-op rather than a panic.
type Port interface {
	// Send transmits data to dest. A negative-length write or any
	// transport error is spec 7's SendError.
	Send(data []byte, dest net.Addr) (int, error)

	// Network identifies the underlying network (spec 6 "network()").
	Network() NetworkType

	// DestroyConnection notifies the Port that c is gone so it can stop
	// demuxing packets to it (spec 6's finalisation hook).
	DestroyConnection(c *Connection)
}

// PortHandle is a weak reference to a Port: it may outlive the Port it
// points at in misordered-teardown scenarios (spec 9), so every access
// goes through Valid()/Get() rather than a bare pointer.
type PortHandle struct {
	port  Port
	valid atomicBool
}

// NewPortHandle wraps port in a handle that starts valid.
func NewPortHandle(port Port) *PortHandle {
	h := &PortHandle{port: port}
	h.valid.set(true)
	return h
}

// Valid reports whether the underlying Port is still usable.
func (h *PortHandle) Valid() bool {
	return h != nil && h.valid.get()
}

// Get returns the underlying Port and true, or (nil, false) if the handle
// has been invalidated.
func (h *PortHandle) Get() (Port, bool) {
	if !h.Valid() {
		return nil, false
	}
	return h.port, true
}

// Invalidate marks the handle as pointing at a gone Port. Idempotent.
func (h *PortHandle) Invalidate() {
	if h == nil {
		return
	}
	h.valid.set(false)
	h.port = nil
}
