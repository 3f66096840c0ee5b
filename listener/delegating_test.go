// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listener

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelegatingSetterSubstitutesRealChannel(t *testing.T) {
	var upstream Setter[string]
	d := NewDelegatingSetter[string, int](&upstream, 42)

	var got int
	d.Set(ListenerFunc[int](func(c int) { got = c }))

	upstream.Get().HandleEvent("upstream value ignored")
	assert.Equal(t, 42, got)
}

func TestDelegatingSetterTranslationIsPerDispatch(t *testing.T) {
	var upstream Setter[string]
	d := NewDelegatingSetter[string, int](&upstream, 1)

	var calls int
	d.Set(ListenerFunc[int](func(int) { calls++ }))
	upstream.Get().HandleEvent("a")
	upstream.Get().HandleEvent("b")
	assert.Equal(t, 2, calls)
}

func TestDelegatingSetterNoDispatchWhenTargetUnset(t *testing.T) {
	var upstream Setter[string]
	NewDelegatingSetter[string, int](&upstream, 1)
	assert.NotPanics(t, func() { upstream.Get().HandleEvent("x") })
}
