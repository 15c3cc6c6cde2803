package monitor

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeSuccess(t *testing.T) {
	paths := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
	}))
	defer srv.Close()

	p := NewHTTPProber(srv.Client())
	rtt, err := p.Probe(srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "/api/ping", <-paths)
	assert.Greater(t, rtt, time.Duration(0))
}

func TestProbeTrimsTrailingSlash(t *testing.T) {
	paths := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
	}))
	defer srv.Close()

	p := NewHTTPProber(srv.Client())
	_, err := p.Probe(srv.URL + "/")

	require.NoError(t, err)
	assert.Equal(t, "/api/ping", <-paths)
}

func TestProbeRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "try later", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewHTTPProber(srv.Client())
	_, err := p.Probe(srv.URL)

	assert.Error(t, err)
}

func TestProbeTimesOut(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	p := NewHTTPProber(&http.Client{Timeout: 50 * time.Millisecond})
	_, err := p.Probe(srv.URL)

	assert.Error(t, err)
}

func TestProbeMeasuresFullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		time.Sleep(60 * time.Millisecond)
		w.Write([]byte("pong"))
	}))
	defer srv.Close()

	p := NewHTTPProber(srv.Client())
	rtt, err := p.Probe(srv.URL)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, rtt, 60*time.Millisecond)
}

func TestProbeUnreachableTarget(t *testing.T) {
	p := NewHTTPProber(&http.Client{Timeout: time.Second})
	_, err := p.Probe("http://127.0.0.1:0")

	assert.Error(t, err)
}
