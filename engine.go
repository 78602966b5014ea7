// SPDX-FileCopyrightText: 2024 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ctrpump

// BlockEngine is a block-transform device: given a 128-bit input block it
// asynchronously produces a 128-bit output block and signals completion via
// an event. The pump consumes it; Device is the in-package implementation.
//
// The hardware model is one event at a time: at most one submission is in
// flight, and its completion must be delivered (and acknowledged) before the
// next Submit. Event delivery must happen-after the Submit that caused it;
// delivering on an unbuffered-or-one-slot channel satisfies this.
type BlockEngine interface {
	// LoadKey arms the engine with a 128-bit key, in engine word order.
	// Called once per session, before the first Submit.
	LoadKey(key Block)

	// Submit hands the engine one input block and starts the transform.
	// It must not block; the result is announced on Completions.
	Submit(block Block)

	// TakeOutput reads the transform output for the most recent completed
	// submission. Valid only between that completion event and the next
	// Submit.
	TakeOutput() Block

	// AckCompletion clears the engine's pending completion condition.
	AckCompletion()

	// EnableCompletionEvent starts completion delivery on the Completions
	// channel. DisableCompletionEvent stops delivery and closes the
	// channel; the engine cannot be re-enabled afterwards.
	EnableCompletionEvent()
	DisableCompletionEvent()

	// Completions is the engine's completion event source.
	Completions() <-chan struct{}
}
