package main

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/quic-go/quic-go/http3"
)

// newProbeClient builds the HTTP client all probes share. Connections are
// kept alive between cycles, so from the second probe of a region on the
// measurement usually covers the request without the handshake.
func newProbeClient(protocol string, timeout time.Duration) (*http.Client, error) {
	switch strings.ToLower(protocol) {
	case "http1", "h1":
		return newHTTP1Client(timeout), nil
	case "http2", "h2":
		return newHTTP2Client(timeout), nil
	case "http3", "h3":
		return newHTTP3Client(timeout), nil
	}

	return nil, fmt.Errorf("unsupported probe protocol %q", protocol)
}

func newHTTP1Client(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext: dialer.DialContext,
		TLSClientConfig: &tls.Config{
			// no ALPN negotiation into h2
			NextProtos: []string{"http/1.1"},
		},
		ForceAttemptHTTP2:   false,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

func newHTTP2Client(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext: dialer.DialContext,
		TLSClientConfig: &tls.Config{
			NextProtos: []string{"h2"},
		},
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

func newHTTP3Client(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &http3.Transport{
			TLSClientConfig: &tls.Config{},
		},
		Timeout: timeout,
	}
}
