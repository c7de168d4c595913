package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stockadvisors/internal/fsplugin"
	"stockadvisors/internal/invoke"
	"stockadvisors/internal/notify"
	"stockadvisors/internal/opener"
	"stockadvisors/internal/store"
	"stockadvisors/internal/testutil"
	"stockadvisors/internal/version"
	"stockadvisors/internal/web"
	"stockadvisors/internal/window"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, h http.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, web.Response) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	r := httptest.NewRequest(method, target, reader)
	r.RemoteAddr = "127.0.0.1:51234"
	w := httptest.NewRecorder()
	h(w, r)

	var resp web.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func dataMap(t *testing.T, resp web.Response) map[string]interface{} {
	t.Helper()
	m, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data is not an object: %v", resp.Data)
	return m
}

// ---------------------------------------------------------------------------
// Command endpoints
// ---------------------------------------------------------------------------

func TestGreetEndpoint(t *testing.T) {
	h := NewInvokeHandler(invoke.NewService(window.NewManager()))

	w, resp := doJSON(t, h.Greet, http.MethodPost, "/api/v1/commands/greet", `{"name":"Alice"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)
	assert.Equal(t, "Hello, Alice! Welcome to Stock Advisors.", dataMap(t, resp)["greeting"])
}

func TestGreetEndpointEmptyName(t *testing.T) {
	h := NewInvokeHandler(invoke.NewService(window.NewManager()))

	w, resp := doJSON(t, h.Greet, http.MethodPost, "/api/v1/commands/greet", `{}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello, ! Welcome to Stock Advisors.", dataMap(t, resp)["greeting"])
}

func TestGreetEndpointBadBody(t *testing.T) {
	h := NewInvokeHandler(invoke.NewService(window.NewManager()))

	w, resp := doJSON(t, h.Greet, http.MethodPost, "/api/v1/commands/greet", `{broken`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_BODY", resp.ErrorCode)
}

func TestAppVersionEndpoint(t *testing.T) {
	h := NewInvokeHandler(invoke.NewService(window.NewManager()))

	w, resp := doJSON(t, h.AppVersion, http.MethodGet, "/api/v1/commands/app-version", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, version.Version, dataMap(t, resp)["version"])
}

func TestShowMainWindowEndpoint(t *testing.T) {
	m := window.NewManager()
	var opened int
	m.Register(window.NewBrowserWindow(window.MainLabel, "http://127.0.0.1:17890", func(string) error {
		opened++
		return nil
	}))
	h := NewInvokeHandler(invoke.NewService(m))

	w, resp := doJSON(t, h.ShowMainWindow, http.MethodPost, "/api/v1/commands/show-main-window", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, opened)
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

func TestSessionIssuedToLoopback(t *testing.T) {
	cfg := testutil.TestConfig(t)
	h := NewSessionHandler(cfg.Auth.SessionSecret, cfg.SessionExpireDuration())

	w, resp := doJSON(t, h.Create, http.MethodPost, "/api/v1/session", `{"client":"spa"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, resp)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	claims, err := web.ValidateSessionToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "spa", claims.Client)
}

func TestSessionRejectedForRemoteClient(t *testing.T) {
	h := NewSessionHandler("test-secret", time.Hour)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/session", strings.NewReader("{}"))
	r.RemoteAddr = "203.0.113.9:40000"
	w := httptest.NewRecorder()
	h.Create(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var resp web.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "AUTH_NOT_LOOPBACK", resp.ErrorCode)
}

func TestSessionEmptyBodyOK(t *testing.T) {
	h := NewSessionHandler("test-secret", time.Hour)

	w, resp := doJSON(t, h.Create, http.MethodPost, "/api/v1/session", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
}

// ---------------------------------------------------------------------------
// Window lifecycle
// ---------------------------------------------------------------------------

func TestCloseRequestPrevented(t *testing.T) {
	m := window.NewManager()
	win := window.NewBrowserWindow(window.MainLabel, "http://127.0.0.1:17890", nil)
	require.NoError(t, win.Show())
	m.Register(win)
	h := NewWindowHandler(m)

	w, resp := doJSON(t, h.CloseRequested, http.MethodPost, "/api/v1/window/close-request", "")
	assert.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, resp)
	assert.Equal(t, true, data["prevented"])
	assert.Equal(t, window.MainLabel, data["label"])
	assert.False(t, win.Visible())
}

func TestCloseRequestUnknownLabelStillPrevented(t *testing.T) {
	h := NewWindowHandler(window.NewManager())

	w, resp := doJSON(t, h.CloseRequested, http.MethodPost, "/api/v1/window/close-request", `{"label":"settings"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, resp)
	assert.Equal(t, true, data["prevented"])
	assert.Equal(t, "settings", data["label"])
}

// ---------------------------------------------------------------------------
// Store plugin
// ---------------------------------------------------------------------------

func TestStoreEndpoints(t *testing.T) {
	testutil.SetupTestDB(t)
	h := NewStoreHandler(store.NewRepo())

	w, _ := doJSON(t, h.Set, http.MethodPut, "/api/v1/store", `{"key":"theme","value":"dark"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := doJSON(t, h.Get, http.MethodGet, "/api/v1/store?key=theme", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dark", dataMap(t, resp)["value"])

	w, resp = doJSON(t, h.Keys, http.MethodGet, "/api/v1/store/keys", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{"theme"}, dataMap(t, resp)["keys"])

	w, _ = doJSON(t, h.Delete, http.MethodDelete, "/api/v1/store?key=theme", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = doJSON(t, h.Get, http.MethodGet, "/api/v1/store?key=theme", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "STORE_NOT_FOUND", resp.ErrorCode)
}

func TestStoreMissingKeyParam(t *testing.T) {
	testutil.SetupTestDB(t)
	h := NewStoreHandler(store.NewRepo())

	w, resp := doJSON(t, h.Get, http.MethodGet, "/api/v1/store", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "STORE_KEY_MISSING", resp.ErrorCode)

	w, resp = doJSON(t, h.Set, http.MethodPut, "/api/v1/store", `{"value":"dark"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "STORE_KEY_MISSING", resp.ErrorCode)
}

// ---------------------------------------------------------------------------
// Filesystem plugin
// ---------------------------------------------------------------------------

func TestFSEndpoints(t *testing.T) {
	h := NewFSHandler(fsplugin.NewMem())

	w, _ := doJSON(t, h.Write, http.MethodPost, "/api/v1/fs/write", `{"path":"notes/today.md","content":"buy low"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := doJSON(t, h.Read, http.MethodPost, "/api/v1/fs/read", `{"path":"notes/today.md"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "buy low", dataMap(t, resp)["content"])

	w, resp = doJSON(t, h.List, http.MethodGet, "/api/v1/fs/list?dir=notes", "")
	assert.Equal(t, http.StatusOK, w.Code)
	entries, _ := dataMap(t, resp)["entries"].([]interface{})
	require.Len(t, entries, 1)

	w, _ = doJSON(t, h.Remove, http.MethodDelete, "/api/v1/fs?path=notes%2Ftoday.md", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFSScopeEscapeRejected(t *testing.T) {
	h := NewFSHandler(fsplugin.NewMem())

	w, resp := doJSON(t, h.Read, http.MethodPost, "/api/v1/fs/read", `{"path":"../../etc/passwd"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FS_OUT_OF_SCOPE", resp.ErrorCode)
}

// ---------------------------------------------------------------------------
// Notification / opener plugins
// ---------------------------------------------------------------------------

func TestNotifyWithoutChannels(t *testing.T) {
	h := NewNotifyHandler(notify.NewManager())

	w, resp := doJSON(t, h.Send, http.MethodPost, "/api/v1/notify", `{"title":"hi","message":"there"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "NOTIFY_DISABLED", resp.ErrorCode)
}

func TestOpenEndpoint(t *testing.T) {
	var opened []string
	h := NewOpenHandler(opener.NewWithFunc(func(target string) error {
		opened = append(opened, target)
		return nil
	}))

	w, resp := doJSON(t, h.Open, http.MethodPost, "/api/v1/open", `{"url":"https://example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"https://example.com"}, opened)

	w, resp = doJSON(t, h.Open, http.MethodPost, "/api/v1/open", `{"url":"file:///etc/passwd"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "OPEN_INVALID_TARGET", resp.ErrorCode)
	assert.Len(t, opened, 1)
}

func TestHealthEndpoint(t *testing.T) {
	w, resp := doJSON(t, Health, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, resp)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, version.Version, data["version"])
}
