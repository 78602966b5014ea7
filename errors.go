// SPDX-FileCopyrightText: 2024 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ctrpump

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the class of all argument errors surfaced by
	// SubmitChunk and NewSession. Test with errors.Is.
	ErrInvalidArgument = errors.New("ctrpump: invalid argument")

	// ErrSessionNotInitialized is returned when a chunk is submitted
	// before a session exists.
	ErrSessionNotInitialized = errors.New("ctrpump: session not initialized")

	errNilEngine         = fmt.Errorf("%w: nil block engine", ErrInvalidArgument)
	errNilStrategy       = fmt.Errorf("%w: nil counter strategy", ErrInvalidArgument)
	errBadKeySize        = fmt.Errorf("%w: key must be %d bytes", ErrInvalidArgument, BlockSize)
	errBadCounterSize    = fmt.Errorf("%w: counter must be %d bytes", ErrInvalidArgument, BlockSize)
	errZeroBlockCount    = fmt.Errorf("%w: block count must be at least one", ErrInvalidArgument)
	errShortInputBuffer  = fmt.Errorf("%w: input shorter than block count", ErrInvalidArgument)
	errShortOutputBuffer = fmt.Errorf("%w: output shorter than block count", ErrInvalidArgument)
)
