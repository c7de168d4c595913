package handlers

import (
	"encoding/json"
	"net/http"

	"stockadvisors/internal/opener"
	"stockadvisors/internal/web"
)

// OpenHandler opens external URLs with the platform's default handler.
type OpenHandler struct {
	op *opener.Opener
}

func NewOpenHandler(op *opener.Opener) *OpenHandler {
	return &OpenHandler{op: op}
}

// Open handles POST /api/v1/open
func (h *OpenHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.FailErr(w, r, web.ErrInvalidBody)
		return
	}
	if req.URL == "" {
		web.FailErr(w, r, web.ErrOpenTarget)
		return
	}
	if err := h.op.OpenURL(req.URL); err != nil {
		web.FailErr(w, r, web.ErrOpenTarget, err.Error())
		return
	}
	web.OK(w, r, nil)
}
