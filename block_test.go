// SPDX-FileCopyrightText: 2024 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ctrpump

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestPackBlockWordOrder(t *testing.T) {
	buf := []byte{
		0x00, 0x01, 0x02, 0x03,
		0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b,
		0x0c, 0x0d, 0x0e, 0x0f,
	}

	b := packBlock(buf)

	// The engine's word-serial interface runs last buffer word first, each
	// word byte-swapped relative to the buffer's little-endian view.
	for i := 0; i < blockWords; i++ {
		if want := binary.BigEndian.Uint32(buf[4*(blockWords-1-i):]); b[i] != want {
			t.Errorf("word %d = %#08x, want %#08x", i, b[i], want)
		}
	}
}

func TestBlockRoundTrip(t *testing.T) {
	buf := []byte{
		0xde, 0xad, 0xbe, 0xef,
		0x01, 0x23, 0x45, 0x67,
		0x89, 0xab, 0xcd, 0xef,
		0xff, 0x00, 0xff, 0x00,
	}

	got := make([]byte, BlockSize)
	unpackBlock(packBlock(buf), got)

	if !bytes.Equal(got, buf) {
		t.Fatalf("round trip got %x, want %x", got, buf)
	}
}
