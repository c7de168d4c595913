package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"stockadvisors/internal/logger"
	"stockadvisors/internal/web"
)

// SessionHandler issues session tokens to local frontends.
type SessionHandler struct {
	secret string
	expire time.Duration
}

func NewSessionHandler(secret string, expire time.Duration) *SessionHandler {
	return &SessionHandler{secret: secret, expire: expire}
}

// Create handles POST /api/v1/session. Tokens are only issued to loopback
// clients; there is no password because the trust boundary is the machine.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !web.IsLoopback(r) {
		logger.WS.Warn().Str("ip", web.ClientIP(r)).Msg("session request from non-loopback address")
		web.FailErr(w, r, web.ErrNotLoopback)
		return
	}

	var req struct {
		Client string `json:"client"`
	}
	// Body is optional; an empty client is fine.
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Client == "" {
		req.Client = "frontend"
	}

	token, expiresAt, err := web.GenerateSessionToken(req.Client, h.secret, h.expire)
	if err != nil {
		web.FailErr(w, r, web.ErrSessionIssue)
		return
	}

	web.OK(w, r, map[string]interface{}{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}
