// SPDX-FileCopyrightText: 2024 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ctrpump

import (
	"encoding/binary"
	"math/bits"
)

const (
	// BlockSize is the engine block size in bytes.
	BlockSize = 16

	blockWords = BlockSize / 4
)

// Block is one 128-bit engine block, held as four 32-bit words in the
// engine's native word order. The engine's word-serial interface runs in the
// opposite word order to the data buffers and each word is byte-swapped on
// the way across, so Block values are only meaningful on the engine side of
// the boundary; packBlock/unpackBlock convert at every crossing.
type Block [blockWords]uint32

// packBlock converts the first 16 bytes of buf into engine word order.
func packBlock(buf []byte) Block {
	var b Block
	for i := 0; i < blockWords; i++ {
		w := binary.LittleEndian.Uint32(buf[4*(blockWords-1-i):])
		b[i] = bits.ReverseBytes32(w)
	}
	return b
}

// unpackBlock converts b from engine word order into the first 16 bytes of buf.
func unpackBlock(b Block, buf []byte) {
	for i := 0; i < blockWords; i++ {
		binary.LittleEndian.PutUint32(buf[4*(blockWords-1-i):], bits.ReverseBytes32(b[i]))
	}
}
