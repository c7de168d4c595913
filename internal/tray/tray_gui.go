//go:build windows

package tray

import (
	"sync"

	"stockadvisors/internal/logger"

	"github.com/energye/systray"
)

// systrayHost maps menu item IDs to live systray items so the controller can
// rewrite toggle labels.
type systrayHost struct {
	mu    sync.Mutex
	items map[string]*systray.MenuItem
}

func newSystrayHost() *systrayHost {
	return &systrayHost{items: make(map[string]*systray.MenuItem)}
}

func (h *systrayHost) bind(id string, item *systray.MenuItem) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items[id] = item
}

func (h *systrayHost) SetLabel(id, label string) error {
	h.mu.Lock()
	item := h.items[id]
	h.mu.Unlock()
	if item == nil {
		return nil
	}
	item.SetTitle(label)
	return nil
}

// Run builds the tray icon and menu and blocks until the process exits.
// attach hands the live menu surface to the caller so the controller can be
// constructed with it before any item is activated.
func Run(attach func(Host) *Controller) {
	host := newSystrayHost()

	systray.Run(func() {
		systray.SetIcon(generateIcon())
		systray.SetTitle(Tooltip)
		systray.SetTooltip(Tooltip)

		ctrl := attach(host)

		// Left click shows the main window; the menu opens on right click only.
		systray.SetOnClick(func(menu systray.IMenu) {
			ctrl.Dispatch(ItemShowWindow)
		})
		systray.SetOnRClick(func(menu systray.IMenu) {
			menu.ShowMenu()
		})

		for _, entry := range ctrl.Menu() {
			if entry.Separator {
				systray.AddSeparator()
				continue
			}
			item := systray.AddMenuItem(entry.Label, entry.Tooltip)
			host.bind(entry.ID, item)
			id := entry.ID
			item.Click(func() {
				ctrl.Dispatch(id)
			})
		}

		logger.Tray.Info().Msg("tray menu ready")
	}, func() {
		logger.Tray.Info().Msg("tray exited")
	})
}

// HasGUI returns true on Windows.
func HasGUI() bool {
	return true
}
