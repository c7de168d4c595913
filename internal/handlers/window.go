package handlers

import (
	"encoding/json"
	"net/http"

	"stockadvisors/internal/web"
	"stockadvisors/internal/window"
)

// WindowHandler applies the window lifecycle policy to frontend requests.
type WindowHandler struct {
	windows *window.Manager
}

func NewWindowHandler(windows *window.Manager) *WindowHandler {
	return &WindowHandler{windows: windows}
}

// CloseRequested handles POST /api/v1/window/close-request. The close is
// always prevented and the window hidden; quitting happens through the tray.
func (h *WindowHandler) CloseRequested(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label string `json:"label"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Label == "" {
		req.Label = window.MainLabel
	}

	prevented := h.windows.HandleCloseRequested(req.Label)
	web.OK(w, r, map[string]interface{}{
		"label":     req.Label,
		"prevented": prevented,
	})
}
