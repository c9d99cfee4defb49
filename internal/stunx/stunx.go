// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package stunx holds small STUN-message assertions the Connection core
// needs that github.com/pion/stun/v3 doesn't provide directly, mirroring
// the internal stunx helper the vendored pion/ice agent.go calls
// (stunx.AssertUsername) — kept internal rather than imported from a
// third-party module because it is exactly that: a local assertion, not a
// reusable library (see DESIGN.md's standard-library-only justification).
package stunx

import (
	"errors"

	"github.com/pion/stun/v3"
)

// ErrMismatchedUsername is returned by AssertUsername when the USERNAME
// attribute does not equal expected.
var ErrMismatchedUsername = errors.New("stunx: username mismatch")

// AssertUsername checks that m's USERNAME attribute equals expected
// exactly (spec 4.7: "USERNAME's remote-ufrag does not match").
func AssertUsername(m *stun.Message, expected string) error {
	var username stun.Username
	if err := username.GetFrom(m); err != nil {
		return err
	}
	if string(username) != expected {
		return ErrMismatchedUsername
	}
	return nil
}
