package window

import (
	"sync"

	"stockadvisors/internal/logger"
)

// Manager owns the window registry. It is constructed once at startup and
// handed to the tray controller and the command endpoints; there is no global
// state.
type Manager struct {
	mu      sync.RWMutex
	windows map[string]Window
}

func NewManager() *Manager {
	return &Manager{windows: make(map[string]Window)}
}

func (m *Manager) Register(w Window) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows[w.Label()] = w
}

func (m *Manager) Get(label string) (Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.windows[label]
	return w, ok
}

// ShowAndFocus makes the labeled window visible and focused. A missing window
// is a silent no-op; show/focus failures are ignored and continue.
func (m *Manager) ShowAndFocus(label string) {
	w, ok := m.Get(label)
	if !ok {
		return
	}
	if err := w.Show(); err != nil {
		// best-effort: ignore and continue
		logger.Window.Debug().Err(err).Str("label", label).Msg("show failed")
	}
	if err := w.Focus(); err != nil {
		// best-effort: ignore and continue
		logger.Window.Debug().Err(err).Str("label", label).Msg("focus failed")
	}
}

// HandleCloseRequested applies the lifecycle policy to a close request:
// hide the window and suppress the close. The window is never destroyed this
// way; only the Quit menu action ends the process. Always reports the close
// as prevented, even when the window is gone or the hide fails.
func (m *Manager) HandleCloseRequested(label string) (prevented bool) {
	w, ok := m.Get(label)
	if !ok {
		return true
	}
	if err := w.Hide(); err != nil {
		// best-effort: ignore and continue
		logger.Window.Debug().Err(err).Str("label", label).Msg("hide failed")
	}
	return true
}
