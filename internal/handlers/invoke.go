// Package handlers exposes the command endpoints and plugin surfaces over
// the local HTTP API.
package handlers

import (
	"encoding/json"
	"net/http"

	"stockadvisors/internal/invoke"
	"stockadvisors/internal/web"
)

// InvokeHandler routes frontend command calls to the invoke service.
type InvokeHandler struct {
	svc *invoke.Service
}

func NewInvokeHandler(svc *invoke.Service) *InvokeHandler {
	return &InvokeHandler{svc: svc}
}

// Greet handles POST /api/v1/commands/greet
func (h *InvokeHandler) Greet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.FailErr(w, r, web.ErrInvalidBody)
		return
	}
	web.OK(w, r, map[string]string{"greeting": h.svc.Greet(req.Name)})
}

// AppVersion handles GET /api/v1/commands/app-version
func (h *InvokeHandler) AppVersion(w http.ResponseWriter, r *http.Request) {
	web.OK(w, r, map[string]string{"version": h.svc.AppVersion()})
}

// ShowMainWindow handles POST /api/v1/commands/show-main-window
func (h *InvokeHandler) ShowMainWindow(w http.ResponseWriter, r *http.Request) {
	h.svc.ShowMainWindow()
	web.OK(w, r, nil)
}
