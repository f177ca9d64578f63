package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gaurav-prasanna/pagebrief/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_Success(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><p>ok</p></body></html>"))
	}))
	defer srv.Close()

	res, err := New().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.HTML, "<p>ok</p>")
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestFetch_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		kind   core.Kind
	}{
		{http.StatusUnauthorized, core.AccessDenied},
		{http.StatusForbidden, core.AccessDenied},
		{http.StatusNotFound, core.NotFound},
		{http.StatusInternalServerError, core.FetchFailed},
		{http.StatusTooManyRequests, core.FetchFailed},
	}
	for _, tt := range tests {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(tt.status)
		}))

		_, err := New().Fetch(context.Background(), srv.URL)
		srv.Close()

		require.Error(t, err)
		var pe *core.Error
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, tt.kind, pe.Kind, "status %d", tt.status)
		assert.Equal(t, tt.status, pe.Status)
		assert.Equal(t, 1, calls, "no retries expected for status %d", tt.status)
	}
}

func TestFetch_InvalidURLSkipsNetwork(t *testing.T) {
	_, err := New().Fetch(context.Background(), "not a url")
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.InvalidInput))
}

func TestFetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listens any more

	_, err := New().Fetch(context.Background(), url)
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.NetworkError))
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	_, err := New(WithTimeout(50*time.Millisecond)).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.NetworkError))
}

func TestFetch_BodyCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 1000)))
	}))
	defer srv.Close()

	res, err := New(WithMaxBodyBytes(100)).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, res.HTML, 100)
}
