// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package iolog is the minimal structured-logging facade used by safe-close
// and listener-invoke paths elsewhere in this module (§5/§7: errors on those
// paths are logged and swallowed, never propagated to the selector).
//
// It backs github.com/joeycumines/logiface rather than reimplementing a
// logging framework: logiface supplies the Level/Builder/Logger machinery,
// and this package only supplies a small Event implementation that renders
// fields as line-oriented text, in the same spirit as
// joeycumines-go-utilpkg/logiface/stumpy's JSON Event but considerably
// smaller, since this module only ever logs a handful of fixed shapes
// (component, error, channel direction).
package iolog

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/joeycumines/logiface"
)

// textEvent renders a single log line as "level component=... msg key=val ...".
type textEvent struct {
	logiface.UnimplementedEvent

	lvl logiface.Level
	buf bytes.Buffer
}

func (e *textEvent) Level() logiface.Level { return e.lvl }

func (e *textEvent) AddField(key string, val any) {
	fmt.Fprintf(&e.buf, " %s=%v", key, val)
}

func (e *textEvent) AddMessage(msg string) bool {
	fmt.Fprintf(&e.buf, " msg=%q", msg)
	return true
}

func (e *textEvent) AddError(err error) bool {
	fmt.Fprintf(&e.buf, " err=%q", err.Error())
	return true
}

func (e *textEvent) AddString(key string, val string) bool {
	fmt.Fprintf(&e.buf, " %s=%s", key, val)
	return true
}

// textBackend implements logiface.EventFactory, logiface.Writer and
// logiface.EventReleaser for textEvent, writing finished lines to an
// io.Writer under a mutex (multiple channels/selectors may log concurrently).
type textBackend struct {
	mu  sync.Mutex
	out io.Writer
	pool sync.Pool
}

func newTextBackend(out io.Writer) *textBackend {
	b := &textBackend{out: out}
	b.pool.New = func() any { return new(textEvent) }
	return b
}

func (b *textBackend) NewEvent(level logiface.Level) *textEvent {
	e := b.pool.Get().(*textEvent)
	e.lvl = level
	e.buf.Reset()
	e.buf.WriteString(level.String())
	return e
}

func (b *textBackend) Write(e *textEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e.buf.WriteByte('\n')
	_, err := b.out.Write(e.buf.Bytes())
	return err
}

func (b *textBackend) ReleaseEvent(e *textEvent) {
	b.pool.Put(e)
}
