package monitor

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// pingPath is the well known probe path every region endpoint serves.
const pingPath = "/api/ping"

// Prober issues a single timed round trip to a probe address.
type Prober interface {
	Probe(url string) (time.Duration, error)
}

// HTTPProber measures RTT with one GET request per probe. Protocol version
// and connection handling are entirely the injected client's business.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates a prober on top of the given client. The client's
// timeout bounds every probe.
func NewHTTPProber(client *http.Client) *HTTPProber {
	return &HTTPProber{client: client}
}

// Probe requests {url}/api/ping and returns the time elapsed between issuing
// the request and having consumed the full response body. Transport errors,
// timeouts and non-200 statuses are returned as errors.
func (p *HTTPProber) Probe(url string) (time.Duration, error) {
	req, err := http.NewRequest(http.MethodGet, strings.TrimSuffix(url, "/")+pingPath, nil)
	if err != nil {
		return 0, err
	}

	start := time.Now()

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	_, cerr := io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	elapsed := time.Since(start)

	if cerr != nil {
		return 0, cerr
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected HTTP status: %s", resp.Status)
	}

	return elapsed, nil
}
