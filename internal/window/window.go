// Package window models the shell's view of the windowing host: lookup by
// label, best-effort show/focus/hide, and the close-to-hide lifecycle policy.
// Window creation and rendering belong to the host, not to this package.
package window

// MainLabel is the well-known identifier of the singleton main window.
const MainLabel = "main"

// Window is the host boundary for a single window. All operations are
// best-effort; callers in the shell discard the returned errors.
type Window interface {
	Label() string
	Show() error
	Focus() error
	Hide() error
	Visible() bool
}
