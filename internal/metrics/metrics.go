package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Delivery metrics
var (
	DownloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_downloads_total",
			Help: "Total number of media download requests by kind and outcome.",
		},
		[]string{"kind", "status"},
	)

	BytesRelayedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_bytes_relayed_total",
			Help: "Total number of media bytes relayed to clients.",
		},
		[]string{"kind"},
	)

	ThumbnailRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbnail_requests_total",
			Help: "Total number of thumbnail requests by outcome.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		DownloadsTotal,
		BytesRelayedTotal,
		ThumbnailRequestsTotal,
	)
}
