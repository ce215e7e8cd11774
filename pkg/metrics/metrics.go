package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TileRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tilefetch_requests_total",
		Help: "Total number of tile requests that reached the pipeline",
	})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tilefetch_cache_hits_total",
		Help: "Total number of tile cache hits",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tilefetch_cache_misses_total",
		Help: "Total number of tile cache misses",
	})

	UpstreamFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tilefetch_upstream_fetches_total",
		Help: "Total number of upstream fetch attempts",
	})

	FetchRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tilefetch_fetch_retries_total",
		Help: "Total number of retried fetch attempts",
	})

	UpstreamLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tilefetch_upstream_latency_seconds",
		Help:    "Latency of upstream tile fetch attempts in seconds",
		Buckets: prometheus.DefBuckets,
	})
)
