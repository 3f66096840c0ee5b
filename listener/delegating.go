// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listener

// DelegatingSetter lets a Listener[T] be attached to an upstream Setter[U]
// that emits a different channel type U, substituting a fixed "real
// channel" of type T on every dispatch. The translation from U
// to T happens each time the upstream fires, not when Set is called, so
// Set is cheap and the upstream's own listener slot only ever holds one
// wrapper, installed once at construction.
type DelegatingSetter[U, T any] struct {
	upstream *Setter[U]
	real     T
	target   Setter[T]
}

// NewDelegatingSetter wires a wrapper listener into upstream that, on every
// upstream event, dispatches to whatever listener is currently installed on
// the returned DelegatingSetter, passing real in place of the upstream's own
// channel value.
func NewDelegatingSetter[U, T any](upstream *Setter[U], real T) *DelegatingSetter[U, T] {
	d := &DelegatingSetter[U, T]{upstream: upstream, real: real}
	upstream.Set(ListenerFunc[U](func(_ U) {
		if l := d.target.Get(); l != nil {
			l.HandleEvent(d.real)
		}
	}))
	return d
}

// Set installs l as the listener that sees translated events.
func (d *DelegatingSetter[U, T]) Set(l Listener[T]) { d.target.Set(l) }

// Get returns the currently installed translated-side listener.
func (d *DelegatingSetter[U, T]) Get() Listener[T] { return d.target.Get() }
