package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blog-gateway/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.RemoteConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func TestGetDropsEmptyQueryParams(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{}`))
	})

	var out map[string]interface{}
	err := client.Get(context.Background(), "/blogs", Query{
		"page":     "1",
		"category": "",
		"search":   "",
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "page=1", gotQuery, "empty params must never reach the backend")
}

func TestDecodeUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"id":"1","title":"Hello"}}`))
	})

	var out struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, client.Get(context.Background(), "/blogs/1", nil, &out))
	assert.Equal(t, "1", out.ID)
	assert.Equal(t, "Hello", out.Title)
}

func TestDecodeAcceptsBareEntity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"1","title":"Hello"}`))
	})

	var out struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, client.Get(context.Background(), "/blogs/1", nil, &out))
	assert.Equal(t, "Hello", out.Title)
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "message field",
			status:  http.StatusNotFound,
			body:    `{"message":"blog not found"}`,
			wantMsg: "blog not found",
		},
		{
			name:    "error string field",
			status:  http.StatusBadRequest,
			body:    `{"error":"invalid payload"}`,
			wantMsg: "invalid payload",
		},
		{
			name:    "nested error message",
			status:  http.StatusConflict,
			body:    `{"error":{"message":"slug already exists"}}`,
			wantMsg: "slug already exists",
		},
		{
			name:    "non-JSON body falls back to status",
			status:  http.StatusInternalServerError,
			body:    `<html>oops</html>`,
			wantMsg: "HTTP error! status: 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := client.Get(context.Background(), "/blogs/x", nil, nil)
			require.Error(t, err)

			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tt.status, reqErr.StatusCode)
			assert.Equal(t, tt.wantMsg, reqErr.Message)
		})
	}
}

func TestIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"gone"}`))
	})

	err := client.Get(context.Background(), "/blogs/x", nil, nil)
	assert.True(t, IsNotFound(err))

	assert.False(t, IsNotFound(nil))
}

func TestPostSendsJSONBody(t *testing.T) {
	var gotContentType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"success":true,"data":{"id":"new"}}`))
	})

	var out struct {
		ID string `json:"id"`
	}
	err := client.Post(context.Background(), "/blogs", map[string]string{"title": "T"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "new", out.ID)
}
