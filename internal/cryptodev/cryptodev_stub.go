// SPDX-FileCopyrightText: 2024 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

//go:build !linux || !arm

// Package cryptodev provides hardware-accelerated single-block AES.
// This stub file is used on platforms without hardware crypto support.
package cryptodev

import "errors"

// ErrNotAvailable is returned when hardware crypto is not available.
var ErrNotAvailable = errors.New("cryptodev: hardware crypto not available on this platform")

// Available returns true if hardware crypto is available.
// Always returns false on non-ARM Linux platforms.
func Available() bool {
	return false
}

// Stats returns hardware crypto usage statistics.
type Stats struct {
	SessionsCreated uint64
	SessionsClosed  uint64
	OpsPerformed    uint64
	OpsErrors       uint64
	HasRockchipECB  bool
}

// GetStats returns current hardware crypto statistics.
// Returns zero values on non-ARM Linux platforms.
func GetStats() Stats {
	return Stats{}
}

// BlockCipher provides hardware-accelerated raw AES block encryption.
type BlockCipher struct{}

// NewBlockCipher creates a hardware AES block cipher.
// Always returns ErrNotAvailable on non-ARM Linux platforms.
func NewBlockCipher(key []byte) (*BlockCipher, error) {
	return nil, ErrNotAvailable
}

// EncryptBlock encrypts one 16-byte block from src into dst.
func (c *BlockCipher) EncryptBlock(dst, src []byte) error {
	return ErrNotAvailable
}

// Close releases the hardware session.
func (c *BlockCipher) Close() error {
	return nil
}
