// SPDX-FileCopyrightText: 2024 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ctrpump

import (
	"crypto/aes"
	"crypto/cipher"
	"io"
	"sync"
	"sync/atomic"

	"github.com/pion/logging"
)

// blockTransform is the raw AES-128 single-block primitive behind a Device:
// either the software cipher or the cryptodev hardware offload.
type blockTransform interface {
	EncryptBlock(dst, src []byte) error
	Close() error
}

type softwareTransform struct {
	block cipher.Block
}

func (t *softwareTransform) EncryptBlock(dst, src []byte) error {
	t.block.Encrypt(dst, src)
	return nil
}

func (t *softwareTransform) Close() error { return nil }

// Device implements BlockEngine over a single-block AES-128 transform. It
// models the hardware contract: one submission in flight, one completion
// pending at a time, delivered on a one-slot channel once the event source
// is enabled.
//
// A Device serves a single session; once its event source is disabled it
// cannot be re-enabled. Close releases the underlying transform.
type Device struct {
	log         logging.LeveledLogger
	tryHardware bool

	mu        sync.Mutex
	transform blockTransform
	out       Block
	pending   bool
	enabled   bool
	events    chan struct{}
	closed    atomic.Bool
}

// LoadKey opens the block transform for the given key, preferring hardware
// offload when the device was built with it.
func (d *Device) LoadKey(key Block) {
	var k [BlockSize]byte
	unpackBlock(key, k[:])

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.transform != nil {
		_ = d.transform.Close()
	}
	d.transform = d.openTransform(k[:])
}

// Submit runs the transform on block and latches the completion condition.
// The event is delivered only while the event source is enabled.
func (d *Device) Submit(block Block) {
	var in, out [BlockSize]byte
	unpackBlock(block, in[:])

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.transform == nil {
		return
	}
	if err := d.transform.EncryptBlock(out[:], in[:]); err != nil {
		d.log.Errorf("block transform failed: %v", err)
		return
	}
	d.out = packBlock(out[:])
	d.pending = true

	if d.enabled {
		select {
		case d.events <- struct{}{}:
		default:
		}
	}
}

// TakeOutput returns the transform output of the most recent completed
// submission.
func (d *Device) TakeOutput() Block {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.out
}

// AckCompletion clears the latched completion condition.
func (d *Device) AckCompletion() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = false
}

// EnableCompletionEvent starts completion delivery. A completion latched
// before enabling fires immediately, so clear stale state with AckCompletion
// first.
func (d *Device) EnableCompletionEvent() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.enabled || d.closed.Load() {
		return
	}
	d.enabled = true
	if d.pending {
		select {
		case d.events <- struct{}{}:
		default:
		}
	}
}

// DisableCompletionEvent stops completion delivery and closes the event
// channel. The device cannot be re-enabled afterwards.
func (d *Device) DisableCompletionEvent() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.enabled {
		d.enabled = false
		close(d.events)
	}
}

// Completions is the device's completion event source.
func (d *Device) Completions() <-chan struct{} {
	return d.events
}

// Close releases the underlying transform. It is safe to call Close multiple
// times.
func (d *Device) Close() error {
	if d.closed.Swap(true) {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.enabled {
		d.enabled = false
		close(d.events)
	}
	if d.transform != nil {
		err := d.transform.Close()
		d.transform = nil
		return err
	}
	return nil
}

func newSoftwareTransform(key []byte) *softwareTransform {
	block, err := aes.NewCipher(key)
	if err != nil {
		// Unreachable: Block keys are always 16 bytes.
		panic(err)
	}
	return &softwareTransform{block: block}
}

var (
	_ BlockEngine = (*Device)(nil)
	_ io.Closer   = (*Device)(nil)
)
