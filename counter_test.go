// SPDX-FileCopyrightText: 2024 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ctrpump

import (
	"bytes"
	"testing"
)

func TestIncrementBigEndian(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   []byte
		want []byte
	}{
		{
			"zero",
			[]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			[]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		},
		{
			"carry",
			[]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01, 0xff},
			[]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x02, 0x00},
		},
		{
			"carry chain",
			[]byte{0, 0, 0, 0, 0, 0, 0, 0, 0x12, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
			[]byte{0, 0, 0, 0, 0, 0, 0, 0, 0x13, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			"wraparound",
			bytes.Repeat([]byte{0xff}, 16),
			bytes.Repeat([]byte{0x00}, 16),
		},
	} {
		got := append([]byte(nil), tc.in...)
		IncrementBigEndian.Advance(got)
		if !bytes.Equal(got, tc.want) {
			t.Errorf("%s: got %x, want %x", tc.name, got, tc.want)
		}
	}
}

func TestCounterFunc(t *testing.T) {
	calls := 0
	var strategy CounterStrategy = CounterFunc(func(counter []byte) {
		calls++
		counter[0] = 0x42
	})

	counter := make([]byte, BlockSize)
	strategy.Advance(counter)

	if calls != 1 || counter[0] != 0x42 {
		t.Fatalf("adapter did not invoke the wrapped function (calls=%d, counter[0]=%#x)", calls, counter[0])
	}
}
