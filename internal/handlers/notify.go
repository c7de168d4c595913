package handlers

import (
	"encoding/json"
	"net/http"

	"stockadvisors/internal/notify"
	"stockadvisors/internal/web"
)

// NotifyHandler lets the frontend push notifications through the configured
// channels.
type NotifyHandler struct {
	mgr *notify.Manager
}

func NewNotifyHandler(mgr *notify.Manager) *NotifyHandler {
	return &NotifyHandler{mgr: mgr}
}

// Send handles POST /api/v1/notify
func (h *NotifyHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.FailErr(w, r, web.ErrInvalidBody)
		return
	}
	if !h.mgr.HasChannels() {
		web.FailErr(w, r, web.ErrNotifyDisabled)
		return
	}
	if err := h.mgr.Send(r.Context(), req.Title, req.Message); err != nil {
		web.FailErr(w, r, web.ErrNotifySendFail, err.Error())
		return
	}
	web.OK(w, r, map[string]interface{}{"channels": h.mgr.ChannelNames()})
}
