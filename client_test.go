package main

import (
	"testing"
	"time"
)

func TestNewProbeClient(t *testing.T) {
	tests := []struct {
		name     string
		protocol string
		wantErr  bool
	}{
		{name: "http1", protocol: "http1"},
		{name: "http1 short form", protocol: "h1"},
		{name: "http2", protocol: "http2"},
		{name: "http2 short form", protocol: "h2"},
		{name: "http3", protocol: "http3"},
		{name: "http3 short form", protocol: "h3"},
		{name: "mixed case", protocol: "HTTP1"},
		{name: "unknown", protocol: "gopher", wantErr: true},
		{name: "empty", protocol: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := newProbeClient(tt.protocol, 5*time.Second)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.Timeout != 5*time.Second {
				t.Errorf("expected client timeout to be 5s, got %v", client.Timeout)
			}
		})
	}
}
