// Package tray owns the tray menu: a fixed set of items, the two monitor
// toggles, and dispatch of menu activations to the rest of the shell.
package tray

import (
	"sync"

	"stockadvisors/internal/bridge"
	"stockadvisors/internal/logger"
	"stockadvisors/internal/window"
)

// Menu item identifiers. They double as the action names of emitted events.
const (
	ItemShowWindow      = "show_window"
	ItemRunAnalysis     = "run_analysis"
	ItemPositionMonitor = "position_monitor"
	ItemNewsMonitor     = "news_monitor"
	ItemQuit            = "quit"
)

const Tooltip = "Stock Advisors"

// ToggleState is held explicitly; the label is rendered from it and never
// parsed back.
type ToggleState int

const (
	Off ToggleState = iota
	On
)

func (s ToggleState) String() string {
	if s == On {
		return "ON"
	}
	return "OFF"
}

type toggle struct {
	name  string
	state ToggleState
}

func (t *toggle) flip() {
	if t.state == On {
		t.state = Off
	} else {
		t.state = On
	}
}

func (t *toggle) label() string {
	return t.name + ": " + t.state.String()
}

// MenuItem describes one entry of the fixed tray menu.
type MenuItem struct {
	ID        string
	Label     string
	Tooltip   string
	Separator bool
}

// Host is the menu surface boundary: the systray adapter rewrites item
// labels through it. Write failures are best-effort and discarded.
type Host interface {
	SetLabel(id, label string) error
}

// NopHost is used when no tray surface exists (headless, tests).
type NopHost struct{}

func (NopHost) SetLabel(string, string) error { return nil }

// Controller dispatches menu activations. It is constructed once at startup
// with explicitly owned references; all toggle state lives here.
type Controller struct {
	host    Host
	windows *window.Manager
	emitter bridge.Emitter
	exit    func(code int)

	mu      sync.Mutex
	toggles map[string]*toggle
}

func NewController(host Host, windows *window.Manager, emitter bridge.Emitter, exit func(int)) *Controller {
	if host == nil {
		host = NopHost{}
	}
	return &Controller{
		host:    host,
		windows: windows,
		emitter: emitter,
		exit:    exit,
		toggles: map[string]*toggle{
			ItemPositionMonitor: {name: "Position Monitor", state: On},
			ItemNewsMonitor:     {name: "News Monitor", state: On},
		},
	}
}

// Menu returns the fixed menu in display order with current labels.
func (c *Controller) Menu() []MenuItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return []MenuItem{
		{ID: ItemShowWindow, Label: "Show Window", Tooltip: "Show the main window"},
		{ID: ItemRunAnalysis, Label: "Run Analysis...", Tooltip: "Ask the frontend to run an analysis"},
		{Separator: true},
		{ID: ItemPositionMonitor, Label: c.toggles[ItemPositionMonitor].label()},
		{ID: ItemNewsMonitor, Label: c.toggles[ItemNewsMonitor].label()},
		{Separator: true},
		{ID: ItemQuit, Label: "Quit", Tooltip: "Quit Stock Advisors"},
	}
}

// Label returns the current label of a menu item, or "" for unknown IDs.
func (c *Controller) Label(id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.toggles[id]; ok {
		return t.label()
	}
	for _, item := range c.staticItems() {
		if item.ID == id {
			return item.Label
		}
	}
	return ""
}

func (c *Controller) staticItems() []MenuItem {
	return []MenuItem{
		{ID: ItemShowWindow, Label: "Show Window"},
		{ID: ItemRunAnalysis, Label: "Run Analysis..."},
		{ID: ItemQuit, Label: "Quit"},
	}
}

// State returns the current state of a toggle item.
func (c *Controller) State(id string) (ToggleState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.toggles[id]
	if !ok {
		return Off, false
	}
	return t.state, true
}

// Dispatch handles one menu activation. Unknown IDs are silently ignored.
func (c *Controller) Dispatch(id string) {
	switch id {
	case ItemShowWindow:
		c.windows.ShowAndFocus(window.MainLabel)

	case ItemRunAnalysis:
		// stateless; value stays null
		if err := c.emitter.Emit(bridge.EventTray, bridge.Payload{Action: ItemRunAnalysis}); err != nil {
			// fire-and-forget: ignore and continue
			logger.Tray.Debug().Err(err).Msg("emit failed")
		}

	case ItemPositionMonitor, ItemNewsMonitor:
		c.activateToggle(id)

	case ItemQuit:
		logger.Tray.Info().Msg("quit requested from tray menu")
		c.exit(0)

	default:
		logger.Tray.Debug().Str("id", id).Msg("unknown menu item ignored")
	}
}

// activateToggle flips the state, rewrites the label on the menu surface and
// emits exactly one event whose value is the new desired on/off state.
func (c *Controller) activateToggle(id string) {
	c.mu.Lock()
	t := c.toggles[id]
	t.flip()
	nowOn := t.state == On
	label := t.label()
	c.mu.Unlock()

	if err := c.host.SetLabel(id, label); err != nil {
		// best-effort: ignore and continue
		logger.Tray.Debug().Err(err).Str("id", id).Msg("label update failed")
	}
	if err := c.emitter.Emit(bridge.EventTray, bridge.Payload{Action: id, Value: bridge.Bool(nowOn)}); err != nil {
		// fire-and-forget: ignore and continue
		logger.Tray.Debug().Err(err).Str("id", id).Msg("emit failed")
	}
}
