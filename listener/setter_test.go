// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listener

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetterGetReturnsNilInitially(t *testing.T) {
	var s Setter[int]
	assert.Nil(t, s.Get())
}

func TestSetterSetAndGet(t *testing.T) {
	var s Setter[int]
	var got int
	s.Set(ListenerFunc[int](func(c int) { got = c }))
	s.Get().HandleEvent(7)
	assert.Equal(t, 7, got)
}

func TestSetterSetNilClears(t *testing.T) {
	var s Setter[int]
	s.Set(ListenerFunc[int](func(int) {}))
	s.Set(nil)
	assert.Nil(t, s.Get())
}

func TestSetterConcurrentSetNeverObservesTornValue(t *testing.T) {
	var s Setter[int]
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Set(ListenerFunc[int](func(int) {}))
			_ = s.Get()
		}()
	}
	wg.Wait()
}
