package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordActivity(t *testing.T) {
	_, app := newTestApp(t)

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{"success", map[string]string{"userId": "u1", "viewedStoryId": "s1"}, http.StatusOK},
		{"missing user", map[string]string{"viewedStoryId": "s1"}, http.StatusBadRequest},
		{"missing story", map[string]string{"userId": "u1"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, http.MethodPost, "/api/userActivity", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestRecommendFlow(t *testing.T) {
	_, app := newTestApp(t)

	// no history yet: empty array, never an error
	req := httptest.NewRequest(http.MethodGet, "/api/recommend/u1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Empty(t, list)

	// seed a genre neighborhood through the API
	respU, user := doJSON(t, app, http.MethodPost, "/api/users", map[string]string{"name": "Ada"})
	require.Equal(t, http.StatusCreated, respU.StatusCode)
	adaID := user["id"].(string)

	mkStory := func(title, genre string) string {
		r, body := doJSON(t, app, http.MethodPost, "/api/stories", map[string]string{
			"title": title, "body": "b", "authorId": adaID, "genre": genre,
		})
		require.Equal(t, http.StatusCreated, r.StatusCode)
		return body["id"].(string)
	}
	viewedID := mkStory("Viewed", "Fantasy")
	mkStory("Fantasy One", "Fantasy")
	mkStory("Fantasy Two", "Fantasy")
	mkStory("Spooky", "Horror")

	r, _ := doJSON(t, app, http.MethodPost, "/api/userActivity", map[string]string{
		"userId": "u1", "viewedStoryId": viewedID,
	})
	require.Equal(t, http.StatusOK, r.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/recommend/u1", nil)
	resp2, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	raw, err = io.ReadAll(resp2.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &list))

	require.Len(t, list, 2)
	for _, story := range list {
		assert.Equal(t, "Fantasy", story["genre"])
		assert.NotEqual(t, viewedID, story["id"])
	}
}
