package window

import "sync"

// OpenFunc opens a URL with the platform's default handler.
type OpenFunc func(target string) error

// BrowserWindow backs the main window with the user's browser/webview: Show
// (re)opens the frontend URL, which also focuses it. The shell cannot close a
// browser tab, so Hide only records the window as hidden.
type BrowserWindow struct {
	label string
	url   string
	open  OpenFunc

	mu      sync.Mutex
	visible bool
}

func NewBrowserWindow(label, url string, open OpenFunc) *BrowserWindow {
	return &BrowserWindow{label: label, url: url, open: open}
}

func (w *BrowserWindow) Label() string { return w.label }

func (w *BrowserWindow) Show() error {
	w.mu.Lock()
	w.visible = true
	w.mu.Unlock()
	if w.open == nil {
		return nil
	}
	return w.open(w.url)
}

// Focus is covered by Show for a browser-backed window: opening an already
// open URL raises the tab.
func (w *BrowserWindow) Focus() error { return nil }

func (w *BrowserWindow) Hide() error {
	w.mu.Lock()
	w.visible = false
	w.mu.Unlock()
	return nil
}

func (w *BrowserWindow) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}
