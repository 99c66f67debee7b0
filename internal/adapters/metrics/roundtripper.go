package metrics

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RoundTripper records latency and status of every request sent through the
// wrapped transport, labelled by upstream name and endpoint family.
type RoundTripper struct {
	Upstream string
	Proxied  http.RoundTripper
}

func NewRoundTripper(upstream string, proxied http.RoundTripper) *RoundTripper {
	if proxied == nil {
		proxied = http.DefaultTransport
	}
	return &RoundTripper{Upstream: upstream, Proxied: proxied}
}

func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := rt.Proxied.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil {
		status = fmt.Sprintf("%d", resp.StatusCode)
	}

	endpoint := Endpoint(req.URL.Path)
	HTTPRequestDuration.WithLabelValues(rt.Upstream, endpoint, status).Observe(duration)
	HTTPRequests.WithLabelValues(rt.Upstream, endpoint, status).Inc()

	return resp, err
}

// Endpoint maps a request path to a low-cardinality label.
func Endpoint(path string) string {
	switch {
	case strings.HasSuffix(path, "/chat/completions"):
		return "chat_completions"
	case strings.HasSuffix(path, "/embeddings"):
		return "embeddings"
	case strings.Contains(path, "/commands"):
		return "commands"
	case strings.Contains(path, "/interactions/"), strings.Contains(path, "/webhooks/"):
		return "interactions"
	case strings.HasSuffix(path, "/users/@me"):
		return "users"
	case strings.Contains(path, "/gateway"):
		return "gateway"
	default:
		return "other"
	}
}
