package memory

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filterPasses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_filter_passes_total",
			Help: "Total number of filter passes run per listing and sort mode",
		},
		[]string{"listing", "sort"},
	)

	visibleItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listing_visible_items",
			Help:    "Number of items left visible by a filter pass",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"listing"},
	)
)
