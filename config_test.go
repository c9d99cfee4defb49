// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConnectionConfig_MatchesDocumentedDefaults(t *testing.T) {
	cfg := DefaultConnectionConfig()

	assert.Equal(t, defaultReceivingTimeout, cfg.ReceivingTimeout)
	assert.Equal(t, defaultUnwritableTimeout, cfg.UnwritableTimeout)
	assert.Equal(t, defaultUnwritableMinChecks, cfg.UnwritableMinChecks)
	assert.Equal(t, defaultInactiveTimeout, cfg.InactiveTimeout)
	assert.Equal(t, defaultTimeoutFailures, cfg.TimeoutFailures)
	assert.Equal(t, defaultConnectFailures, cfg.ConnectFailures)
	assert.Equal(t, defaultConnectTimeout, cfg.ConnectTimeout)
	assert.Equal(t, defaultMaxPingsSinceLastResponse, cfg.MaxPingsSinceLastResponse)
	assert.True(t, cfg.UseCandidateAttr)
	assert.NotNil(t, cfg.LoggerFactory)
}

func TestConnectionConfig_WriteStateConfigMapping(t *testing.T) {
	cfg := DefaultConnectionConfig()
	cfg.UnwritableTimeout = 1
	cfg.UnwritableMinChecks = 2
	cfg.InactiveTimeout = 3
	cfg.TimeoutFailures = 4
	cfg.ConnectFailures = 5
	cfg.ConnectTimeout = 6

	wsc := cfg.writeStateConfig()
	assert.EqualValues(t, 1, wsc.unwritableTimeout)
	assert.Equal(t, 2, wsc.unwritableMinChecks)
	assert.EqualValues(t, 3, wsc.inactiveTimeout)
	assert.Equal(t, 4, wsc.timeoutFailures)
	assert.Equal(t, 5, wsc.connectFailures)
	assert.EqualValues(t, 6, wsc.connectTimeout)
}

func TestPiggybackAttributes_Append(t *testing.T) {
	var a PiggybackAttributes
	a.Append([]byte{1, 2})
	a.Append([]byte{3})
	assert.Equal(t, []byte{1, 2, 3}, a.payload)
}
