// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package listener

import "code.hybscloud.com/nio/iolog"

// Invoke dispatches l to channel, recovering any panic the listener raises
// and logging it via log rather than letting it propagate into the
// selector loop. It reports whether the dispatch completed without
// panicking.
func Invoke[T any](log iolog.Logger, l Listener[T], channel T) (ok bool) {
	if l == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err, isErr := r.(error)
			if !isErr {
				err = panicValue{r}
			}
			log.Warn("listener", err)
		}
	}()
	l.HandleEvent(channel)
	return true
}

type panicValue struct{ v any }

func (p panicValue) Error() string { return "listener panicked: " + errString(p.v) }

func errString(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "non-error panic value"
}
