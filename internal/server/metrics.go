package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "correctocr_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "correctocr_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	decodeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "correctocr_decode_requests_total",
			Help: "Total number of k-best decode requests",
		},
		[]string{"status"},
	)

	decodeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "correctocr_decode_duration_seconds",
			Help:    "Decode (k-best Viterbi, cache-aware) duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"cache"}, // cache: always "mixed" (hits and misses are not told apart)
	)

	binAssignmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "correctocr_bin_assignments_total",
			Help: "Total number of tokens assigned to each heuristic bin",
		},
		[]string{"bin"},
	)

	rateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "correctocr_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
		[]string{"type"},
	)

	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "correctocr_websocket_active_connections",
			Help: "Number of active annotator WebSocket connections",
		},
	)

	websocketMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "correctocr_websocket_messages_total",
			Help: "Total number of WebSocket messages",
		},
		[]string{"direction"},
	)
)
