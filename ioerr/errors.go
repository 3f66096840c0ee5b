// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ioerr collects the sentinel errors shared by every package in this
// module. Keeping them in one leaf package lets channel, framing, connect
// and sslchannel all compare against the same values with errors.Is, without
// import cycles.
package ioerr

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrBufferUnderflow is raised by buf helpers when the requested size
	// exceeds the remaining bytes in the source buffer.
	ErrBufferUnderflow = errors.New("nio: buffer underflow")

	// ErrBufferOverflow is raised when a write would exceed a buffer's limit.
	ErrBufferOverflow = errors.New("nio: buffer overflow")

	// ErrClosed is returned by operations attempted on a closed channel or a
	// channel whose relevant direction has been shut down.
	ErrClosed = errors.New("nio: closed")

	// ErrCancelled is the terminal-state error observed via Future.Get when a
	// future was cancelled before completing.
	ErrCancelled = errors.New("nio: cancelled")

	// ErrReadTimeout is returned by the blocking adapter when a read's
	// deadline expires before data becomes available.
	ErrReadTimeout = errors.New("nio: read timeout")

	// ErrWriteTimeout is the write-side counterpart of ErrReadTimeout.
	ErrWriteTimeout = errors.New("nio: write timeout")

	// ErrUnsupportedOption is returned when an option map or setter is asked
	// to honor an option it does not recognize or cannot apply.
	ErrUnsupportedOption = errors.New("nio: unsupported option")

	// ErrOversizedMessage is returned by the length-framed writer when a
	// message exceeds the configured outbound maximum.
	ErrOversizedMessage = errors.New("nio: oversized message")

	// ErrFramingError is surfaced to a framing reader's message handler when
	// the wire-format length prefix exceeds the configured inbound maximum
	// or is otherwise malformed.
	ErrFramingError = errors.New("nio: framing error")

	// ErrInterrupted marks a runtime interruption observed by an
	// interruptible wait, distinct from a timeout or a cancellation.
	ErrInterrupted = errors.New("nio: interrupted")

	// ErrIO is the generic wrapped-cause marker for io-failure. No package
	// in this module wraps errors with it; underlying I/O errors are passed
	// through unchanged, so errors.Is(err, ErrIO) holds only for errors a
	// caller has wrapped with ErrIO itself.
	ErrIO = errors.New("nio: io failure")
)

// Unsupported wraps ErrUnsupportedOption with the offending option name, so
// callers get both a stable sentinel (via errors.Is) and a useful message.
func Unsupported(name string) error {
	return pkgerrors.Wrap(ErrUnsupportedOption, fmt.Sprintf("option %q", name))
}
