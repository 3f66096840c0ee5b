// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iolog

import (
	"io"
	"os"

	"github.com/joeycumines/logiface"
)

// Logger is the facade every package in this module logs through. It is
// intentionally tiny: the only thing the core cares about (§5/§7) is that a
// swallowed error still reaches a log sink with enough context to diagnose
// it, not the full structured-logging surface.
type Logger interface {
	// Warn logs a recoverable condition (an executor rejection, a listener
	// panic) along with the component name and the error that was swallowed.
	Warn(component string, err error, fields ...Field)
}

// Field is a single structured key/value pair attached to a log line.
type Field struct {
	Key string
	Val any
}

// F constructs a Field; a small helper to keep call sites terse.
func F(key string, val any) Field { return Field{Key: key, Val: val} }

// logifaceLogger adapts a *logiface.Logger[*textEvent] to Logger.
type logifaceLogger struct {
	l *logiface.Logger[*textEvent]
}

// New returns a Logger that writes one text line per call to w.
func New(w io.Writer) Logger {
	backend := newTextBackend(w)
	l := logiface.New[*textEvent](logiface.WithOptions[*textEvent](
		logiface.WithEventFactory[*textEvent](logiface.NewEventFactoryFunc(backend.NewEvent)),
		logiface.WithWriter[*textEvent](logiface.NewWriterFunc(backend.Write)),
		logiface.WithEventReleaser[*textEvent](logiface.NewEventReleaserFunc(backend.ReleaseEvent)),
	))
	return &logifaceLogger{l: l}
}

// Default logs to os.Stderr. It is the logger used when none is configured
// explicitly, following an "optional, swappable instrumentation" stance:
// eventloop.getGlobalLogger falls back to a no-op rather than requiring
// setup.
var Default Logger = New(os.Stderr)

func (d *logifaceLogger) Warn(component string, err error, fields ...Field) {
	b := d.l.Warning().Str("component", component)
	if err != nil {
		b = b.Err(err)
	}
	for _, f := range fields {
		b = b.Field(f.Key, f.Val)
	}
	b.Log("swallowed error")
}

// Discard drops every log call. Used by tests that want deterministic output
// with no log noise.
var Discard Logger = discardLogger{}

type discardLogger struct{}

func (discardLogger) Warn(string, error, ...Field) {}
