package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamPageCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tubepulse_upstream_page_calls_total",
		Help: "Upstream YouTube API page requests, by endpoint.",
	}, []string{"endpoint"})

	CorpusBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tubepulse_corpus_build_duration_seconds",
		Help:    "Time to collect the full comment corpus for one video.",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tubepulse_http_requests_total",
		Help: "Handled HTTP requests, by route pattern and status code.",
	}, []string{"path", "code"})
)
