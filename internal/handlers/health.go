package handlers

import (
	"net/http"

	"stockadvisors/internal/version"
	"stockadvisors/internal/web"
)

// Health handles GET /api/v1/health. Unauthenticated; the frontend polls it
// to detect that the shell is up before requesting a session.
func Health(w http.ResponseWriter, r *http.Request) {
	web.OK(w, r, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}
