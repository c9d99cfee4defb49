// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRttEstimator_FirstSampleSnaps(t *testing.T) {
	var r rttEstimator
	got := r.update(50 * time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, got)
	assert.False(t, r.converged())
}

func TestRttEstimator_SubsequentSamplesEMA(t *testing.T) {
	var r rttEstimator
	r.update(80 * time.Millisecond)
	got := r.update(0) // a fast sample should pull the estimate down, not snap to it
	assert.Less(t, got, 80*time.Millisecond)
	assert.Greater(t, got, time.Duration(0))
}

func TestRttEstimator_ConvergesAfterFourSamples(t *testing.T) {
	var r rttEstimator
	for i := 0; i < 3; i++ {
		r.update(40 * time.Millisecond)
		assert.False(t, r.converged())
	}
	r.update(40 * time.Millisecond)
	assert.True(t, r.converged())
}

func TestRttEstimator_Reset(t *testing.T) {
	var r rttEstimator
	r.update(40 * time.Millisecond)
	r.reset()
	assert.Equal(t, time.Duration(0), r.estimate)
	assert.False(t, r.converged())
}
