// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package blocking implements a blocking-channel adapter: it wraps a
// non-blocking stream channel and exposes blocking Read/Write/Flush/
// Shutdown with independent, atomically-mutable read/write timeouts.
// The retry-on-not-ready loop is grounded on framer.framer's readOnce/
// writeOnce (internal.go), generalized from that loop's fixed retry-delay
// policy to a deadline-bounded AwaitReadable/AwaitWritable wait per attempt.
package blocking

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"code.hybscloud.com/nio/channel"
	"code.hybscloud.com/nio/ioerr"
)

// stream is the subset of channel capabilities BlockingByteChannel needs.
type stream interface {
	channel.ReadableByte
	channel.WritableByte
	channel.SuspendableRead
	channel.SuspendableWrite
}

// ByteChannel adapts a non-blocking stream channel to blocking semantics.
// A zero ReadTimeout/WriteTimeout means "wait indefinitely". Sub-
// millisecond positive durations are clamped up to 1ms, matching a
// millisecond-normalized timeout contract.
type ByteChannel struct {
	ch stream

	readTimeout  atomic.Int64 // nanoseconds; 0 means indefinite
	writeTimeout atomic.Int64
}

// New wraps ch for blocking use. Timeouts start at 0 (indefinite).
func New(ch stream) *ByteChannel {
	return &ByteChannel{ch: ch}
}

// SetReadTimeout atomically updates the read deadline used by the next Read
// call; in-flight calls are unaffected — it takes effect on the next
// blocking call.
func (b *ByteChannel) SetReadTimeout(d time.Duration) {
	b.readTimeout.Store(int64(normalize(d)))
}

// SetWriteTimeout is SetReadTimeout's write-side counterpart, also governing
// Flush and Shutdown.
func (b *ByteChannel) SetWriteTimeout(d time.Duration) {
	b.writeTimeout.Store(int64(normalize(d)))
}

// normalize clamps a positive sub-millisecond duration up to 1ms and leaves
// zero/negative values (meaning "indefinite") untouched.
func normalize(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	if d < time.Millisecond {
		return time.Millisecond
	}
	return d.Truncate(time.Millisecond)
}

// Read blocks until at least one byte has been read, the peer half-closes
// (returning io.EOF-style n=0 passed through as (0, nil) is not used here;
// end-of-input is reported as (0, io.EOF)), or the read deadline expires
// with ioerr.ErrReadTimeout.
func (b *ByteChannel) Read(p []byte) (int, error) {
	deadline := deadlineFrom(time.Duration(b.readTimeout.Load()))
	for {
		n, err := b.ch.Read(p)
		if err != nil {
			return n, err
		}
		if n == -1 {
			return 0, errEOF
		}
		if n > 0 {
			return n, nil
		}
		if err := b.awaitReadable(deadline); err != nil {
			return 0, err
		}
	}
}

// Write blocks until all of p has been written or the write deadline
// expires with ioerr.ErrWriteTimeout.
func (b *ByteChannel) Write(p []byte) (int, error) {
	deadline := deadlineFrom(time.Duration(b.writeTimeout.Load()))
	total := 0
	for total < len(p) {
		n, err := b.ch.Write(p[total:])
		if err != nil {
			return total, err
		}
		total += n
		if total >= len(p) {
			break
		}
		if err := b.awaitWritable(deadline); err != nil {
			return total, err
		}
	}
	return total, nil
}

// Flush loops Flush on the underlying channel interleaved with
// AwaitWritable until fully flushed or the write deadline expires.
func (b *ByteChannel) Flush() error {
	deadline := deadlineFrom(time.Duration(b.writeTimeout.Load()))
	for {
		done, err := b.ch.Flush()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if err := b.awaitWritable(deadline); err != nil {
			return err
		}
	}
}

// Shutdown half-closes the write direction, blocking until complete or the
// write deadline expires.
func (b *ByteChannel) Shutdown() error {
	deadline := deadlineFrom(time.Duration(b.writeTimeout.Load()))
	for {
		done, err := b.ch.ShutdownWrites()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if err := b.awaitWritable(deadline); err != nil {
			return err
		}
	}
}

func (b *ByteChannel) awaitReadable(deadline time.Time) error {
	return b.await(deadline, b.ch.AwaitReadable, ioerr.ErrReadTimeout)
}

func (b *ByteChannel) awaitWritable(deadline time.Time) error {
	return b.await(deadline, b.ch.AwaitWritable, ioerr.ErrWriteTimeout)
}

func (b *ByteChannel) await(deadline time.Time, fn func(context.Context) error, timeoutErr error) error {
	ctx := context.Background()
	var cancel context.CancelFunc
	if !deadline.IsZero() {
		ctx, cancel = context.WithDeadline(ctx, deadline)
		defer cancel()
	}
	err := fn(ctx)
	if err == context.DeadlineExceeded {
		return timeoutErr
	}
	return err
}

func deadlineFrom(timeout time.Duration) time.Time {
	if timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(timeout)
}

// errEOF is returned by Read at end-of-input. It is io.EOF itself so
// callers using errors.Is(err, io.EOF) keep working.
var errEOF = io.EOF
