// SPDX-FileCopyrightText: 2024 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package ctrpump streams fixed-size blocks through an asynchronous
// block-transform engine in counter (CTR) mode. A session arms the engine
// with a key once; each chunk of blocks is then submitted non-blocking and
// drained block-by-block by a completion handler that overlaps engine
// computation with counter advancement and buffer bookkeeping. The caller
// polls Finished to learn when a chunk is done.
package ctrpump

import (
	"io"
	"sync/atomic"

	"github.com/pion/logging"
	"github.com/pion/transport/v3/utils/xor"
)

// Session is one key's worth of CTR pumping across any number of chunks
// sharing one evolving counter.
//
// Exactly two actors touch a Session: the caller (SubmitChunk, Finished) and
// the completion service goroutine started by NewSession. While a chunk is in
// flight the input, output and counter buffers belong to the pipeline;
// Finished is the only safe probe until it reports true.
type Session struct {
	engine   BlockEngine
	strategy CounterStrategy
	log      logging.LeveledLogger

	state    streamState
	finished atomic.Bool

	// Keystream scratch, handler-owned. Kept on the session so the hot
	// path does not allocate.
	ks [BlockSize]byte

	done chan struct{}
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLoggerFactory routes session logging through f instead of the default
// pion logger factory.
func WithLoggerFactory(f logging.LoggerFactory) SessionOption {
	return func(s *Session) {
		s.log = f.NewLogger("ctrpump")
	}
}

// NewSession arms engine with a 128-bit key and starts the completion
// service. The engine is armed exactly once: any pending completion is
// cleared, the completion event source is enabled, and the key is loaded.
// The counter strategy is fixed for the lifetime of the session.
func NewSession(engine BlockEngine, key []byte, strategy CounterStrategy, opts ...SessionOption) (*Session, error) {
	if engine == nil {
		return nil, errNilEngine
	}
	if strategy == nil {
		return nil, errNilStrategy
	}
	if len(key) != BlockSize {
		return nil, errBadKeySize
	}

	s := &Session{
		engine:   engine,
		strategy: strategy,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.NewDefaultLoggerFactory().NewLogger("ctrpump")
	}

	engine.AckCompletion()
	engine.EnableCompletionEvent()
	engine.LoadKey(packBlock(key))

	go s.serve()

	s.log.Debug("session armed, completion events enabled")

	return s, nil
}

// SubmitChunk hands one chunk of blockCount 16-byte blocks to the pipeline
// and returns immediately; completion is reported through Finished. The
// output buffer may alias the input buffer. The counter is mutated in place,
// once per block; pass the same backing slice on every call to keep one
// counter evolving across the whole session.
//
// The previous chunk must have finished before the next is submitted, and
// input, output and counter must not be touched until Finished reports true.
// Argument errors are returned synchronously and leave the session state
// untouched.
func (s *Session) SubmitChunk(input, output []byte, blockCount int, counter []byte) error {
	if s == nil || s.engine == nil {
		return ErrSessionNotInitialized
	}
	if blockCount < 1 {
		return errZeroBlockCount
	}
	if len(counter) != BlockSize {
		return errBadCounterSize
	}
	if len(input) < blockCount*BlockSize {
		return errShortInputBuffer
	}
	if len(output) < blockCount*BlockSize {
		return errShortOutputBuffer
	}

	s.state.reset(input, output, blockCount, counter)
	s.finished.Store(false)

	// Prime the engine with the current counter value. Everything from
	// here on happens in the completion handler.
	s.engine.Submit(packBlock(counter))

	return nil
}

// Finished reports whether the current chunk has been fully processed. It is
// a pure read, safe to call concurrently with the completion handler, and
// false before the first chunk is submitted.
func (s *Session) Finished() bool {
	return s.finished.Load()
}

// Close disables the engine's completion event source and waits for the
// completion service to stop. Closing while a chunk is in flight leaves the
// chunk at an undefined position; there is no finer-grained cancellation.
// Close does not release the engine itself.
func (s *Session) Close() error {
	s.engine.DisableCompletionEvent()
	<-s.done
	return nil
}

func (s *Session) serve() {
	for range s.engine.Completions() {
		s.handleCompletion()
	}
	close(s.done)
}

// handleCompletion services one engine completion. Step order is the
// correctness-critical part: the counter is advanced before this block's
// keystream is consumed so the engine can be re-primed with the next counter
// value while the output block is produced, and blockIndex is incremented on
// every firing so the one after the last data block lands in the terminal
// branch.
func (s *Session) handleCompletion() {
	st := &s.state
	s.engine.AckCompletion()

	if st.blockIndex < st.totalBlocks {
		// Only advance while blocks remain. The next SubmitChunk
		// resubmits this counter value, so advancing on the terminal
		// firing would skip a keystream block across the chunk
		// boundary.
		s.strategy.Advance(st.counter)

		// CTR combine: output = keystream XOR input, where the engine
		// output is the keystream for the previously submitted
		// counter value.
		unpackBlock(s.engine.TakeOutput(), s.ks[:])
		xor.XorBytes(
			st.output[st.outCursor:st.outCursor+BlockSize],
			st.input[st.inCursor:st.inCursor+BlockSize],
			s.ks[:],
		)
		st.inCursor += BlockSize
		st.outCursor += BlockSize

		s.engine.Submit(packBlock(st.counter))
		st.blockIndex++
		return
	}

	// Terminal firing. The finished store is the handoff point after which
	// the caller may write stream state again, so it must be the handler's
	// last shared-state write.
	st.blockIndex++
	s.finished.Store(true)
}

var _ io.Closer = (*Session)(nil)
