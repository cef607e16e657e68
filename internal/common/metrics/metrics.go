package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Total number of recommendation pipeline runs",
		},
		[]string{"outcome"},
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "pipeline_duration_seconds",
			Help: "Duration of a full recommendation pipeline run in seconds",
		},
	)

	UpstreamQueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_query_failures_total",
			Help: "Total number of failed upstream category queries",
		},
		[]string{"category"},
	)

	ScoringFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scoring_fallbacks_total",
			Help: "Total number of times AI scoring degraded to the heuristic path",
		},
	)

	TrendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trend_cache_hits_total",
			Help: "Total number of upstream queries served from the redis cache",
		},
	)

	TrendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trend_cache_misses_total",
			Help: "Total number of upstream queries that bypassed the redis cache",
		},
	)
)
