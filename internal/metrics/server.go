package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHTTPServer creates the sidecar HTTP server exposing the delivery
// counters (downloads, relayed bytes, thumbnail requests, cache hit rate)
// at /metrics. It listens on its own port so scrapes never contend with
// long-running download responses. The port default lives in config.
func NewHTTPServer(address string, port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", address, port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
