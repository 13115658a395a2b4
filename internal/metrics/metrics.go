package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	StudiesLoaded  *prometheus.CounterVec
	RowsDropped    prometheus.Counter
	CacheLookups   *prometheus.CounterVec
	CachedStudies  prometheus.Gauge
	ViewsComputed  prometheus.Counter
	RequestSeconds *prometheus.HistogramVec
	PlacesSeconds  *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		StudiesLoaded: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "plaza_studies_loaded_total",
			Help: "Total number of uploaded studies, by outcome.",
		}, []string{"status"}),
		RowsDropped: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "plaza_rows_dropped_total",
			Help: "Total number of unit rows discarded because their coordinates did not parse.",
		}),
		CacheLookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "plaza_study_cache_lookups_total",
			Help: "Study cache lookups by result (hit or miss).",
		}, []string{"result"}),
		CachedStudies: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "plaza_cached_studies",
			Help: "Current number of parsed studies held in memory.",
		}),
		ViewsComputed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "plaza_views_computed_total",
			Help: "Total number of filtered and aggregated views served.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "plaza_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "code"}),
		PlacesSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "plaza_places_request_duration_seconds",
			Help:    "Duration of requests to the place search provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
	}
}
