// Package opener hands URLs to the platform's default handler on behalf of
// the frontend and the browser-backed main window.
package opener

import (
	"fmt"
	"net/url"

	"github.com/skratchdot/open-golang/open"
)

var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

type Opener struct {
	openFn func(string) error
}

func New() *Opener {
	return &Opener{openFn: open.Run}
}

// NewWithFunc injects the launch function for tests.
func NewWithFunc(fn func(string) error) *Opener {
	return &Opener{openFn: fn}
}

// OpenURL validates the target scheme and launches it.
func (o *Opener) OpenURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}
	if !allowedSchemes[u.Scheme] {
		return fmt.Errorf("scheme %q not allowed", u.Scheme)
	}
	return o.openFn(raw)
}
