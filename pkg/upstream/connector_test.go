package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConnector(t *testing.T, handler http.HandlerFunc) (*Connector, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c := New(Config{
		BaseURL:    srv.URL + "/api.php",
		UserAgent:  "bifrost-test",
		Timeout:    2 * time.Second,
		CacheTTL:   time.Minute,
		MaxRetries: 3,
	})
	return c, &calls
}

func TestConnector_FetchDecodesJSON(t *testing.T) {
	c, calls := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ask", r.URL.Query().Get("action"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Write([]byte(`{"query":{"results":{}}}`))
	})

	body, err := c.Fetch(context.Background(), Params{}.Set("query", "[[Category:Psychoactive substance]]"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":{"results":{}}}`, string(body))
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestConnector_CachesByURL(t *testing.T) {
	c, calls := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	})

	params := Params{}.Set("page", "LSD")
	_, err := c.Fetch(context.Background(), params)
	require.NoError(t, err)
	_, err = c.Fetch(context.Background(), params)
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls), "second fetch of same params must hit the cache")
}

func TestConnector_RetriesThenSucceeds(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(Config{
		BaseURL:    srv.URL,
		UserAgent:  "bifrost-test",
		Timeout:    2 * time.Second,
		CacheTTL:   time.Minute,
		MaxRetries: 3,
	})

	start := time.Now()
	body, err := c.Fetch(context.Background(), Params{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.EqualValues(t, 3, atomic.LoadInt32(&attempts))
	assert.GreaterOrEqual(t, time.Since(start), 3*time.Second-100*time.Millisecond)
}

func TestConnector_FailsAfterExhaustingRetries(t *testing.T) {
	c, calls := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Fetch(context.Background(), Params{})
	assert.Error(t, err)
	assert.EqualValues(t, 4, atomic.LoadInt32(calls), "initial attempt + 3 retries")
}
