// SPDX-FileCopyrightText: 2024 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

//go:build linux && arm

// Package cryptodev provides hardware-accelerated single-block AES via Linux
// cryptodev (/dev/crypto) for ARM platforms with hardware crypto engines.
//
// This package automatically detects available hardware acceleration:
//   - Rockchip crypto engine (RV1106, RK3288, RK3399, RK3588, etc.)
//   - Standard cryptodev implementations
//
// Falls back gracefully if hardware is unavailable.
package cryptodev

import (
	"bufio"
	"errors"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"
)

// ErrNotAvailable is returned when hardware crypto is not available.
var ErrNotAvailable = errors.New("cryptodev: hardware crypto not available")

// Cipher IDs for cryptodev.
// Standard IDs are from cryptodev-linux; Rockchip extends these with vendor-specific IDs.
const (
	// Standard cryptodev cipher IDs
	cryptoAESECB = 23 // Standard AES-ECB

	// Rockchip-specific cipher IDs (starting at 150)
	cryptoRKAESECB = 173 // Rockchip AES-ECB
)

// Standard cryptodev ioctl commands for 32-bit ARM.
const (
	ciocgsession = 0xc01c6366 // Create session
	ciocfsession = 0x40046367 // Free session
	cioccrypt    = 0xc0286364 // Perform crypto operation
)

// Operation types.
const (
	copEncrypt = 0
	copDecrypt = 1
)

// Hardware detection state.
var (
	detectOnce       sync.Once
	hasRockchipECB   bool
	hasStandardECB   bool
	hardwareDetected bool

	cryptodev     *os.File
	cryptodevOnce sync.Once
	cryptodevErr  error

	// Statistics for monitoring
	sessionsCreated atomic.Uint64
	sessionsClosed  atomic.Uint64
	opsPerformed    atomic.Uint64
	opsErrors       atomic.Uint64
)

// sessionOp is the structure for creating a crypto session.
// Must match struct session_op in cryptodev.h exactly.
type sessionOp struct {
	cipher    uint32
	mac       uint32
	keylen    uint32
	key       unsafe.Pointer
	mackeylen uint32
	mackey    unsafe.Pointer
	ses       uint32
}

// cryptOp is the structure for cipher/hash operations.
// Must match struct crypt_op in cryptodev.h exactly.
type cryptOp struct {
	ses   uint32
	op    uint16
	flags uint16
	len   uint32
	src   unsafe.Pointer
	dst   unsafe.Pointer
	mac   unsafe.Pointer
	iv    unsafe.Pointer
}

// detectHardware probes /proc/crypto to determine available hardware acceleration.
func detectHardware() {
	detectOnce.Do(func() {
		file, err := os.Open("/proc/crypto")
		if err != nil {
			return
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		var currentName, currentDriver string

		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if strings.HasPrefix(line, "name") {
				parts := strings.SplitN(line, ":", 2)
				if len(parts) == 2 {
					currentName = strings.TrimSpace(parts[1])
				}
			} else if strings.HasPrefix(line, "driver") {
				parts := strings.SplitN(line, ":", 2)
				if len(parts) == 2 {
					currentDriver = strings.TrimSpace(parts[1])
				}

				// Check for hardware-accelerated algorithms
				isRockchip := strings.HasSuffix(currentDriver, "-rk")

				if currentName == "ecb(aes)" {
					if isRockchip {
						hasRockchipECB = true
					}
					hasStandardECB = true
				}
			}
		}

		hardwareDetected = hasRockchipECB || hasStandardECB
	})
}

func getCryptodev() (*os.File, error) {
	cryptodevOnce.Do(func() {
		cryptodev, cryptodevErr = os.OpenFile("/dev/crypto", os.O_RDWR|syscall.O_CLOEXEC, 0)
	})
	return cryptodev, cryptodevErr
}

func ioctl(fd uintptr, op uintptr, data unsafe.Pointer) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, op, uintptr(data))
	if errno != 0 {
		return errno
	}
	return nil
}

// Available returns true if hardware crypto is available on this system.
// This performs a one-time detection by probing /proc/crypto.
func Available() bool {
	detectHardware()
	if !hardwareDetected {
		return false
	}
	_, err := getCryptodev()
	return err == nil
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
func GetStats() Stats {
	detectHardware()
	return Stats{
		SessionsCreated: sessionsCreated.Load(),
		SessionsClosed:  sessionsClosed.Load(),
		OpsPerformed:    opsPerformed.Load(),
		OpsErrors:       opsErrors.Load(),
		HasRockchipECB:  hasRockchipECB,
	}
}

// BlockCipher provides hardware-accelerated raw AES block encryption (one
// 16-byte block per operation, ECB with a single block). It is safe for
// concurrent use.
type BlockCipher struct {
	fd      uintptr
	session uint32
	closed  atomic.Bool
	mu      sync.Mutex
}

// NewBlockCipher creates a hardware AES block cipher for the given key.
// Returns ErrNotAvailable if hardware crypto is not available.
// The caller must call Close() when done to release hardware resources.
func NewBlockCipher(key []byte) (*BlockCipher, error) {
	if !Available() {
		return nil, ErrNotAvailable
	}

	handle, err := getCryptodev()
	if err != nil {
		return nil, err
	}
	fd := handle.Fd()

	// Determine which cipher ID to use
	cipherID := uint32(cryptoAESECB)
	if hasRockchipECB {
		cipherID = cryptoRKAESECB
	}

	// Keep key alive during session creation
	keyCopy := make([]byte, len(key))
	copy(keyCopy, key)

	sess := &sessionOp{
		cipher: cipherID,
		keylen: uint32(len(keyCopy)),
		key:    unsafe.Pointer(&keyCopy[0]),
	}

	if err := ioctl(fd, ciocgsession, unsafe.Pointer(sess)); err != nil {
		// Try fallback to standard ID if Rockchip failed
		if cipherID == cryptoRKAESECB && hasStandardECB {
			sess.cipher = cryptoAESECB
			if err2 := ioctl(fd, ciocgsession, unsafe.Pointer(sess)); err2 != nil {
				return nil, err2
			}
		} else {
			return nil, err
		}
	}

	sessionsCreated.Add(1)

	c := &BlockCipher{
		fd:      fd,
		session: sess.ses,
	}

	// Set finalizer as safety net for leaked sessions
	runtime.SetFinalizer(c, func(c *BlockCipher) {
		if !c.closed.Load() {
			_ = c.Close()
		}
	})

	return c, nil
}

// EncryptBlock encrypts one 16-byte block from src into dst.
// dst and src may be the same slice (in-place operation).
func (c *BlockCipher) EncryptBlock(dst, src []byte) error {
	if len(src) != 16 || len(dst) < 16 {
		return errors.New("cryptodev: block must be 16 bytes")
	}
	if c.closed.Load() {
		return errors.New("cryptodev: cipher closed")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring lock
	if c.closed.Load() {
		return errors.New("cryptodev: cipher closed")
	}

	op := &cryptOp{
		ses: c.session,
		op:  copEncrypt,
		len: 16,
		src: unsafe.Pointer(&src[0]),
		dst: unsafe.Pointer(&dst[0]),
	}

	err := ioctl(c.fd, cioccrypt, unsafe.Pointer(op))

	// Keep slices alive until ioctl completes
	runtime.KeepAlive(src)
	runtime.KeepAlive(dst)

	if err != nil {
		opsErrors.Add(1)
		return err
	}

	opsPerformed.Add(1)
	return nil
}

// Close releases the hardware session.
// It is safe to call Close multiple times.
func (c *BlockCipher) Close() error {
	if c.closed.Swap(true) {
		return nil // Already closed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	runtime.SetFinalizer(c, nil)

	if c.session != 0 {
		err := ioctl(c.fd, ciocfsession, unsafe.Pointer(&c.session))
		c.session = 0
		sessionsClosed.Add(1)
		return err
	}
	return nil
}
