// SPDX-FileCopyrightText: 2024 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ctrpump

import (
	"github.com/pion/logging"

	"github.com/pennycoders/ctrpump/internal/cryptodev"
)

// DeviceOption configures a Device.
type DeviceOption func(*Device)

// WithSoftwareTransform forces the software AES transform even when hardware
// offload is available.
func WithSoftwareTransform() DeviceOption {
	return func(d *Device) {
		d.tryHardware = false
	}
}

// WithDeviceLoggerFactory routes device logging through f instead of the
// default pion logger factory.
func WithDeviceLoggerFactory(f logging.LoggerFactory) DeviceOption {
	return func(d *Device) {
		d.log = f.NewLogger("ctrpump")
	}
}

// NewDevice returns a block engine backed by the Linux cryptodev AES offload
// when the platform provides it, falling back to the software transform.
//
// On platforms with a hardware crypto engine (e.g. ARM Linux with a Rockchip
// crypto block) the offload can significantly reduce CPU usage for bulk
// transfers.
func NewDevice(opts ...DeviceOption) *Device {
	d := &Device{
		tryHardware: true,
		events:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = logging.NewDefaultLoggerFactory().NewLogger("ctrpump")
	}
	return d
}

// openTransform picks the block transform for a freshly loaded key,
// attempting hardware first and falling back to software. Called with the
// device mutex held.
func (d *Device) openTransform(key []byte) blockTransform {
	if d.tryHardware && cryptodev.Available() {
		hw, err := cryptodev.NewBlockCipher(key)
		if err == nil {
			d.log.Info("using hardware AES block transform")
			return hw
		}
		d.log.Warnf("hardware AES transform failed, falling back to software: %v", err)
	}

	d.log.Debug("using software AES block transform")
	return newSoftwareTransform(key)
}
