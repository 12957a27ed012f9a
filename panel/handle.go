package panel

import "sync"

// Handle caches the one panel a host process shows. The host owns the Handle
// and decides when to drop the panel, e.g. when its dock is closed.
type Handle struct {
	mu    sync.Mutex
	panel *Panel
}

// GetOrCreate returns the cached panel, building it with factory on first use.
// A factory error leaves the handle empty.
func (h *Handle) GetOrCreate(factory func() (*Panel, error)) (*Panel, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panel != nil {
		return h.panel, nil
	}
	p, err := factory()
	if err != nil {
		return nil, err
	}
	h.panel = p
	return p, nil
}

// Reset drops the cached panel so the next GetOrCreate builds a fresh one.
func (h *Handle) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.panel = nil
}
