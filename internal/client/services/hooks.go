package services

import "sync"

// changeHook fans a "state changed" signal out to registered listeners.
// Listeners run synchronously on the goroutine that made the change, after
// the component has released its own lock.
type changeHook struct {
	mu  sync.Mutex
	fns []func()
}

// OnChange registers fn to be called after every state change.
func (h *changeHook) OnChange(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fns = append(h.fns, fn)
}

func (h *changeHook) fire() {
	h.mu.Lock()
	fns := make([]func(), len(h.fns))
	copy(fns, h.fns)
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
