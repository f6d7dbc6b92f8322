package httpx

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDownloadClient_Defaults(t *testing.T) {
	c, err := NewDownloadClient(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.Timeout)

	tr, ok := c.Transport.(*Transport)
	require.True(t, ok, "got %T", c.Transport)
	assert.Equal(t, 0, tr.RetryMax)
}

func TestNewDownloadClient_InvalidProxy(t *testing.T) {
	_, err := NewDownloadClient(Options{ProxyURL: "http://[::1"})
	assert.Error(t, err)
}

func TestTransport_SetsUserAgent(t *testing.T) {
	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.UserAgent())
	}))
	defer srv.Close()

	c, err := NewDownloadClient(Options{Timeout: 5 * time.Second})
	require.NoError(t, err)
	resp, err := c.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Contains(t, got.Load().(string), "Mozilla/5.0")

	fixed, err := NewDownloadClient(Options{UserAgent: "netfix-test/1.0"})
	require.NoError(t, err)
	resp, err = fixed.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "netfix-test/1.0", got.Load())
}

func TestTransport_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c, err := NewDownloadClient(Options{RetryMax: 2})
	require.NoError(t, err)
	resp, err := c.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, hits.Load())
}

func TestTransport_NoRetryByDefault(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := NewDownloadClient(Options{})
	require.NoError(t, err)
	resp, err := c.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.EqualValues(t, 1, hits.Load())
}
