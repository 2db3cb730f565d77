package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe(t *testing.T) {
	_, app := newTestApp(t)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			name: "success",
			body: map[string]any{
				"endpoint": "https://push.example.com/send/abc",
				"keys":     map[string]string{"p256dh": "key", "auth": "auth"},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing endpoint",
			body:       map[string]any{"keys": map[string]string{"p256dh": "key", "auth": "auth"}},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, http.MethodPost, "/subscribe", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestUnsubscribe(t *testing.T) {
	_, app := newTestApp(t)

	endpoint := "https://push.example.com/send/abc"
	resp, _ := doJSON(t, app, http.MethodPost, "/subscribe", map[string]any{
		"endpoint": endpoint,
		"keys":     map[string]string{"p256dh": "key", "auth": "auth"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/subscribe", map[string]any{"endpoint": endpoint})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// second removal: the registration is gone
	resp, _ = doJSON(t, app, http.MethodDelete, "/subscribe", map[string]any{"endpoint": endpoint})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
