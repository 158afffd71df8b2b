package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Post_SendsJSONBody(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	resp, err := c.Post(context.Background(), "/checkins", map[string]any{"mood_level": 4})
	require.NoError(t, err)

	assert.Equal(t, "/checkins", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"mood_level":4}`, string(gotBody))
	assert.JSONEq(t, `{"ok":true}`, string(resp))
}

func TestHTTPClient_Get_ReturnsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1,2,3]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	resp, err := c.Get(context.Background(), "/entries")
	require.NoError(t, err)

	var got []int
	require.NoError(t, json.Unmarshal(resp, &got))
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestHTTPClient_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)

	_, err := c.Post(context.Background(), "/checkins", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
