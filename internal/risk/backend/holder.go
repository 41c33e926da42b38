package backend

import (
	"sync/atomic"
	"time"
)

// Holder owns the active backend. Swap replaces the whole snapshot at once.
type Holder struct {
	cur   atomic.Pointer[Loaded]
	clock func() time.Time
}

func NewHolder() *Holder {
	return &Holder{clock: time.Now}
}

// Swap installs m. An attributor is picked up when m also explains its predictions.
func (h *Holder) Swap(m Model, source string) {
	if m == nil {
		h.cur.Store(nil)
		return
	}

	l := &Loaded{Model: m, Source: source, LoadedAt: h.clock().UTC()}
	if a, ok := m.(Attributor); ok {
		l.Attributor = a
	}
	h.cur.Store(l)
}

// Current returns the active snapshot or ErrModelUnavailable when nothing is loaded.
func (h *Holder) Current() (*Loaded, error) {
	l := h.cur.Load()
	if l == nil {
		return nil, ErrModelUnavailable
	}
	return l, nil
}
