// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package listener implements the listener/setter plumbing: an
// atomic single-slot setter, a delegating setter that retargets a listener
// written for one channel type onto a different upstream channel type, an
// executor-wrapped listener that submits dispatch to a provided executor,
// and a safe invoker that never lets a listener panic escape into a
// selector loop.
package listener

import "sync/atomic"

// Listener receives channel readiness/completion events. T is the concrete
// channel type the listener is written against.
type Listener[T any] interface {
	HandleEvent(channel T)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc[T any] func(channel T)

func (fn ListenerFunc[T]) HandleEvent(channel T) { fn(channel) }

// Setter exposes a single atomic slot holding the current listener for a
// channel, or nil. It is safe for concurrent Set and Get from any
// goroutine; a Get always observes either a fully-set listener or nil,
// never a torn value, since the slot is backed by atomic.Pointer.
type Setter[T any] struct {
	slot atomic.Pointer[Listener[T]]
}

// Set installs l as the current listener, replacing any previous one. A nil
// l clears the slot.
func (s *Setter[T]) Set(l Listener[T]) {
	if l == nil {
		s.slot.Store(nil)
		return
	}
	s.slot.Store(&l)
}

// Get returns the currently installed listener, or nil.
func (s *Setter[T]) Get() Listener[T] {
	p := s.slot.Load()
	if p == nil {
		return nil
	}
	return *p
}
