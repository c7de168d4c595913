package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"stockadvisors/internal/store"
	"stockadvisors/internal/web"
)

// StoreHandler exposes the persisted key-value store to the frontend.
type StoreHandler struct {
	repo *store.Repo
}

func NewStoreHandler(repo *store.Repo) *StoreHandler {
	return &StoreHandler{repo: repo}
}

// Get handles GET /api/v1/store?key=...
func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		web.FailErr(w, r, web.ErrStoreKeyMissing)
		return
	}
	value, err := h.repo.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		web.FailErr(w, r, web.ErrStoreNotFound)
		return
	}
	if err != nil {
		web.FailErr(w, r, web.ErrStoreQueryFail)
		return
	}
	web.OK(w, r, map[string]string{"key": key, "value": value})
}

// Set handles PUT /api/v1/store
func (h *StoreHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.FailErr(w, r, web.ErrInvalidBody)
		return
	}
	if req.Key == "" {
		web.FailErr(w, r, web.ErrStoreKeyMissing)
		return
	}
	if err := h.repo.Set(req.Key, req.Value); err != nil {
		web.FailErr(w, r, web.ErrStoreWriteFail)
		return
	}
	web.OK(w, r, nil)
}

// Delete handles DELETE /api/v1/store?key=...
func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		web.FailErr(w, r, web.ErrStoreKeyMissing)
		return
	}
	if err := h.repo.Delete(key); err != nil {
		web.FailErr(w, r, web.ErrStoreWriteFail)
		return
	}
	web.OK(w, r, nil)
}

// Keys handles GET /api/v1/store/keys
func (h *StoreHandler) Keys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.repo.Keys()
	if err != nil {
		web.FailErr(w, r, web.ErrStoreQueryFail)
		return
	}
	web.OK(w, r, map[string]interface{}{"keys": keys})
}
