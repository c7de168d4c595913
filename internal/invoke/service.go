// Package invoke implements the frontend-callable command endpoints.
package invoke

import (
	"fmt"

	"stockadvisors/internal/version"
	"stockadvisors/internal/window"
)

// Service holds the references the commands need. All commands are
// synchronous and effectively instantaneous.
type Service struct {
	windows *window.Manager
}

func NewService(windows *window.Manager) *Service {
	return &Service{windows: windows}
}

// Greet echoes the name verbatim into the fixed template. No validation.
func (s *Service) Greet(name string) string {
	return fmt.Sprintf("Hello, %s! Welcome to Stock Advisors.", name)
}

// AppVersion returns the build-time application version.
func (s *Service) AppVersion() string {
	return version.Version
}

// ShowMainWindow shows and focuses the main window. A missing window is a
// silent no-op; this is a best-effort contract, not an error condition.
func (s *Service) ShowMainWindow() {
	s.windows.ShowAndFocus(window.MainLabel)
}
