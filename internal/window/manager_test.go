package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	label    string
	visible  bool
	shows    int
	focuses  int
	hides    int
	showErr  error
	focusErr error
	hideErr  error
}

func (w *fakeWindow) Label() string { return w.label }
func (w *fakeWindow) Show() error {
	w.shows++
	if w.showErr != nil {
		return w.showErr
	}
	w.visible = true
	return nil
}
func (w *fakeWindow) Focus() error {
	w.focuses++
	return w.focusErr
}
func (w *fakeWindow) Hide() error {
	w.hides++
	if w.hideErr != nil {
		return w.hideErr
	}
	w.visible = false
	return nil
}
func (w *fakeWindow) Visible() bool { return w.visible }

func TestShowAndFocus(t *testing.T) {
	m := NewManager()
	win := &fakeWindow{label: MainLabel}
	m.Register(win)

	m.ShowAndFocus(MainLabel)

	assert.Equal(t, 1, win.shows)
	assert.Equal(t, 1, win.focuses)
	assert.True(t, win.visible)
}

func TestShowAndFocusMissingWindow(t *testing.T) {
	m := NewManager()

	// No window registered: silent no-op.
	m.ShowAndFocus(MainLabel)
}

func TestShowAndFocusErrorsIgnored(t *testing.T) {
	m := NewManager()
	win := &fakeWindow{label: MainLabel, showErr: assert.AnError, focusErr: assert.AnError}
	m.Register(win)

	m.ShowAndFocus(MainLabel)

	// Both calls attempted despite errors.
	assert.Equal(t, 1, win.shows)
	assert.Equal(t, 1, win.focuses)
}

func TestCloseRequestedHidesNotDestroys(t *testing.T) {
	m := NewManager()
	win := &fakeWindow{label: MainLabel, visible: true}
	m.Register(win)

	prevented := m.HandleCloseRequested(MainLabel)

	assert.True(t, prevented)
	assert.Equal(t, 1, win.hides)
	assert.False(t, win.visible)

	// The window is still registered and can be shown again.
	_, ok := m.Get(MainLabel)
	require.True(t, ok)
	m.ShowAndFocus(MainLabel)
	assert.True(t, win.visible)
}

func TestCloseRequestedMissingWindowStillPrevented(t *testing.T) {
	m := NewManager()
	assert.True(t, m.HandleCloseRequested("gone"))
}

func TestCloseRequestedHideErrorStillPrevented(t *testing.T) {
	m := NewManager()
	win := &fakeWindow{label: MainLabel, visible: true, hideErr: assert.AnError}
	m.Register(win)

	assert.True(t, m.HandleCloseRequested(MainLabel))
}

func TestBrowserWindow(t *testing.T) {
	var opened []string
	w := NewBrowserWindow(MainLabel, "http://127.0.0.1:17890", func(target string) error {
		opened = append(opened, target)
		return nil
	})

	assert.Equal(t, MainLabel, w.Label())
	assert.False(t, w.Visible())

	require.NoError(t, w.Show())
	assert.True(t, w.Visible())
	assert.Equal(t, []string{"http://127.0.0.1:17890"}, opened)

	require.NoError(t, w.Focus())
	require.NoError(t, w.Hide())
	assert.False(t, w.Visible())

	// Show after hide reopens the URL.
	require.NoError(t, w.Show())
	assert.Len(t, opened, 2)
}

func TestBrowserWindowNilOpener(t *testing.T) {
	w := NewBrowserWindow(MainLabel, "http://127.0.0.1:17890", nil)
	require.NoError(t, w.Show())
	assert.True(t, w.Visible())
}
