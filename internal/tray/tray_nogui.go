//go:build !windows

package tray

// Run constructs the controller without a tray surface. On Linux/headless
// systems the shell runs in the foreground terminal; the frontend can still
// drive everything over the command endpoints.
func Run(attach func(Host) *Controller) {
	attach(NopHost{})
}

// HasGUI returns false on Linux/headless.
func HasGUI() bool {
	return false
}
