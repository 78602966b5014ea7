// SPDX-FileCopyrightText: 2024 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ctrpump

// CounterStrategy advances a 16-byte counter in place. It is invoked exactly
// once per completed block, never at a chunk boundary with no blocks left, so
// the last counter value of a chunk persists unmutated until the next chunk's
// first block begins.
//
// Implementations must be deterministic and must not depend on engine state.
type CounterStrategy interface {
	Advance(counter []byte)
}

// CounterFunc adapts a plain function to the CounterStrategy interface.
type CounterFunc func(counter []byte)

// Advance calls f(counter).
func (f CounterFunc) Advance(counter []byte) { f(counter) }

// IncrementBigEndian is the stock counter strategy: it treats the counter as
// a big-endian integer and increments it by one, wrapping around at the top.
var IncrementBigEndian CounterStrategy = CounterFunc(incrementBigEndian)

// incrementBigEndian increments a big-endian integer of arbitrary size.
func incrementBigEndian(counter []byte) {
	for i := len(counter) - 1; i >= 0; i-- {
		counter[i]++
		if counter[i] != 0 {
			break
		}
	}
}
