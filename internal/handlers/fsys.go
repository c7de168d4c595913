package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"stockadvisors/internal/fsplugin"
	"stockadvisors/internal/web"
)

// FSHandler exposes the scoped filesystem to the frontend.
type FSHandler struct {
	fs *fsplugin.FS
}

func NewFSHandler(fs *fsplugin.FS) *FSHandler {
	return &FSHandler{fs: fs}
}

// Read handles POST /api/v1/fs/read
func (h *FSHandler) Read(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.FailErr(w, r, web.ErrInvalidBody)
		return
	}
	if req.Path == "" {
		web.FailErr(w, r, web.ErrFSPathMissing)
		return
	}
	data, err := h.fs.ReadFile(req.Path)
	if errors.Is(err, fsplugin.ErrOutOfScope) {
		web.FailErr(w, r, web.ErrFSOutOfScope)
		return
	}
	if err != nil {
		web.FailErr(w, r, web.ErrFSReadFail)
		return
	}
	web.OK(w, r, map[string]string{"path": req.Path, "content": string(data)})
}

// Write handles POST /api/v1/fs/write
func (h *FSHandler) Write(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path    string `json:"path"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.FailErr(w, r, web.ErrInvalidBody)
		return
	}
	if req.Path == "" {
		web.FailErr(w, r, web.ErrFSPathMissing)
		return
	}
	if err := h.fs.WriteFile(req.Path, []byte(req.Content)); err != nil {
		if errors.Is(err, fsplugin.ErrOutOfScope) {
			web.FailErr(w, r, web.ErrFSOutOfScope)
			return
		}
		web.FailErr(w, r, web.ErrFSWriteFail)
		return
	}
	web.OK(w, r, nil)
}

// List handles GET /api/v1/fs/list?dir=...
func (h *FSHandler) List(w http.ResponseWriter, r *http.Request) {
	dir := r.URL.Query().Get("dir")
	entries, err := h.fs.List(dir)
	if errors.Is(err, fsplugin.ErrOutOfScope) {
		web.FailErr(w, r, web.ErrFSOutOfScope)
		return
	}
	if err != nil {
		web.FailErr(w, r, web.ErrFSReadFail)
		return
	}
	web.OK(w, r, map[string]interface{}{"dir": dir, "entries": entries})
}

// Remove handles DELETE /api/v1/fs?path=...
func (h *FSHandler) Remove(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		web.FailErr(w, r, web.ErrFSPathMissing)
		return
	}
	if err := h.fs.Remove(path); err != nil {
		if errors.Is(err, fsplugin.ErrOutOfScope) {
			web.FailErr(w, r, web.ErrFSOutOfScope)
			return
		}
		web.FailErr(w, r, web.ErrFSWriteFail)
		return
	}
	web.OK(w, r, nil)
}
