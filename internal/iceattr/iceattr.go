// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package iceattr implements the STUN attributes spec 6 lists beyond the
// RFC 5389 core set: RFC 8445's ICE-CONTROLLING/ICE-CONTROLLED/PRIORITY/
// USE-CANDIDATE, the ICE re-nomination draft's NOMINATION, and the
// proprietary GOOG_PING/GOOG_DELTA family. pion/stun/v3 supplies the wire
// codec and the generic Message.Add/Get/Contains primitive (spec 1's "STUN
// wire codec... assumed available as a primitive"); this package only adds
// the typed Setter/Getter wrappers pion/stun's own attribute types
// (XORMappedAddress, Username, ...) use, generalized to attributes that
// package doesn't know about.
package iceattr

import (
	"encoding/binary"

	"github.com/pion/stun/v3"
)

// Attribute numbers. The RFC 8445 ones match the IANA STUN registry; the
// GOOG_ numbers match the values Chromium's ICE stack (and, downstream,
// pion/ice) use for these proprietary extensions.
const (
	AttrICEControlled  stun.AttrType = 0x8029
	AttrICEControlling stun.AttrType = 0x802A
	AttrPriority       stun.AttrType = 0x0024
	AttrUseCandidate   stun.AttrType = 0x0025
	AttrNomination     stun.AttrType = 0xC001

	AttrGoogDelta    stun.AttrType = 0xC057
	AttrGoogDeltaAck stun.AttrType = 0xC058
	AttrGoogMiscInfo stun.AttrType = 0xC059
)

// GoogPingRequest/GoogPingSuccess/GoogPingError are the
// proprietary compact-ping STUN method+class pairs spec 6 names (spec
// 4.2's GOOG_PING_REQUEST/RESPONSE).
var (
	GoogPingRequest  = stun.NewType(stun.MethodBinding+0x200, stun.ClassRequest)
	GoogPingSuccess  = stun.NewType(stun.MethodBinding+0x200, stun.ClassSuccessResponse)
	GoogPingError    = stun.NewType(stun.MethodBinding+0x200, stun.ClassErrorResponse)
)

// Uint64Attr is a Setter/Getter for a raw 64-bit attribute value, used for
// ICE-CONTROLLING/ICE-CONTROLLED (tiebreaker) and GOOG_DELTA_ACK.
type Uint64Attr struct {
	Type  stun.AttrType
	Value uint64
}

// AddTo implements stun.Setter.
func (a Uint64Attr) AddTo(m *stun.Message) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], a.Value)
	m.Add(a.Type, b[:])
	return nil
}

// GetUint64 parses a Uint64Attr of the given type from m.
func GetUint64(m *stun.Message, t stun.AttrType) (uint64, bool) {
	v, err := m.Get(t)
	if err != nil || len(v) < 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(v), true
}

// Uint32Attr is a Setter for a raw 32-bit attribute, used for PRIORITY and
// NOMINATION.
type Uint32Attr struct {
	Type  stun.AttrType
	Value uint32
}

// AddTo implements stun.Setter.
func (a Uint32Attr) AddTo(m *stun.Message) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], a.Value)
	m.Add(a.Type, b[:])
	return nil
}

// GetUint32 parses a Uint32Attr of the given type from m.
func GetUint32(m *stun.Message, t stun.AttrType) (uint32, bool) {
	v, err := m.Get(t)
	if err != nil || len(v) < 4 {
		return 0, false
	}
	return binary.BigEndian.Uint32(v), true
}

// Flag is a zero-length attribute whose mere presence is the signal, used
// for USE-CANDIDATE.
type Flag struct {
	Type stun.AttrType
}

// AddTo implements stun.Setter.
func (f Flag) AddTo(m *stun.Message) error {
	m.Add(f.Type, nil)
	return nil
}

// BytesAttr is a Setter/Getter for an opaque byte string, used for
// GOOG_DELTA and the DTLS piggyback payload.
type BytesAttr struct {
	Type  stun.AttrType
	Value []byte
}

// AddTo implements stun.Setter.
func (a BytesAttr) AddTo(m *stun.Message) error {
	m.Add(a.Type, a.Value)
	return nil
}

// GetBytes returns the raw value of attribute t in m, if present.
func GetBytes(m *stun.Message, t stun.AttrType) ([]byte, bool) {
	v, err := m.Get(t)
	if err != nil {
		return nil, false
	}
	return v, true
}
