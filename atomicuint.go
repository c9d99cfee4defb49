// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ice

import "sync/atomic"

// atomicUint32 backs the nomination/acked_nomination/remote_nomination
// fields (spec 3), which must stay monotonic even though SetNomination
// style commands may be invoked off the network sequence (spec 5).
type atomicUint32 struct {
	v uint32
}

func (a *atomicUint32) load() uint32 {
	return atomic.LoadUint32(&a.v)
}

func (a *atomicUint32) store(value uint32) {
	atomic.StoreUint32(&a.v, value)
}

// storeIfGreater stores value only if it exceeds the current value,
// returning whether the store happened. Used to keep remote_nomination
// monotonically non-decreasing (spec 3 invariant) without a lock.
func (a *atomicUint32) storeIfGreater(value uint32) bool {
	for {
		cur := atomic.LoadUint32(&a.v)
		if value <= cur {
			return false
		}
		if atomic.CompareAndSwapUint32(&a.v, cur, value) {
			return true
		}
	}
}
