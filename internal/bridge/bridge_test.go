package bridge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHub struct {
	channel string
	event   string
	data    interface{}
	calls   int
}

func (h *fakeHub) Broadcast(channel string, event string, data interface{}) {
	h.channel = channel
	h.event = event
	h.data = data
	h.calls++
}

func TestEmitBroadcastsOnEventChannel(t *testing.T) {
	hub := &fakeHub{}
	b := New(hub)

	err := b.Emit(EventTray, Payload{Action: "run_analysis"})
	require.NoError(t, err)

	assert.Equal(t, 1, hub.calls)
	assert.Equal(t, EventTray, hub.channel)
	assert.Equal(t, EventTray, hub.event)

	payload, ok := hub.data.(Payload)
	require.True(t, ok)
	assert.Equal(t, "run_analysis", payload.Action)
	assert.Nil(t, payload.Value)
}

func TestEmitWithoutHub(t *testing.T) {
	b := New(nil)

	err := b.Emit(EventTray, Payload{Action: "quit"})
	assert.ErrorIs(t, err, ErrNoHub)
}

func TestPayloadJSON(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		want    string
	}{
		{"null value", Payload{Action: "run_analysis"}, `{"action":"run_analysis","value":null}`},
		{"true value", Payload{Action: "position_monitor", Value: Bool(true)}, `{"action":"position_monitor","value":true}`},
		{"false value", Payload{Action: "news_monitor", Value: Bool(false)}, `{"action":"news_monitor","value":false}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.payload)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}
