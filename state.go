// SPDX-FileCopyrightText: 2024 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ctrpump

// streamState describes the in-flight chunk. Fields follow a single-writer
// handoff: SubmitChunk writes them before priming the engine, then the
// completion handler owns them exclusively until it reports the chunk
// finished. The finished flag itself lives on the Session as an atomic,
// because it is the one field read from the caller's side mid-chunk.
type streamState struct {
	// totalBlocks is the block count of the current chunk; blockIndex
	// counts handler firings and ends one past totalBlocks, which is the
	// sentinel the handler tests to pick the terminal branch.
	totalBlocks int
	blockIndex  int

	input  []byte
	output []byte

	// Cursors equal blockIndex*BlockSize for every data-block firing.
	inCursor  int
	outCursor int

	// counter is caller-owned backing storage, mutated in place once per
	// data block and never on the terminal firing.
	counter []byte
}

func (st *streamState) reset(input, output []byte, blockCount int, counter []byte) {
	st.totalBlocks = blockCount
	st.blockIndex = 0
	st.input = input
	st.output = output
	st.inCursor = 0
	st.outCursor = 0
	st.counter = counter
}
