// Package bridge is the one-way notification channel from the native shell to
// the rendered frontend. Emission is fire-and-forget: every caller in the
// shell discards the returned error.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"stockadvisors/internal/logger"
)

// EventTray is the channel the frontend listens on for tray activity.
const EventTray = "tray-event"

// Payload carries a named action and an optional boolean. A nil Value
// marshals to JSON null. For toggle actions the boolean is the new desired
// on/off state, not the previous one.
type Payload struct {
	Action string `json:"action"`
	Value  *bool  `json:"value"`
}

// Bool returns a pointer for use as a Payload value.
func Bool(v bool) *bool { return &v }

// Emitter sends one event to the frontend.
type Emitter interface {
	Emit(event string, payload Payload) error
}

// Hub is the delivery backend. *web.WSHub satisfies it.
type Hub interface {
	Broadcast(channel string, event string, data interface{})
}

var ErrNoHub = errors.New("bridge: no hub attached")

type Bridge struct {
	hub Hub
}

func New(hub Hub) *Bridge {
	return &Bridge{hub: hub}
}

// Emit broadcasts the payload on the hub channel named by event. A frontend
// that is not connected is not an error; delivery is not acknowledged.
func (b *Bridge) Emit(event string, payload Payload) error {
	if b.hub == nil {
		return ErrNoHub
	}
	if _, err := json.Marshal(payload); err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	b.hub.Broadcast(event, event, payload)
	logger.Bridge.Debug().Str("event", event).Str("action", payload.Action).Msg("event emitted")
	return nil
}
