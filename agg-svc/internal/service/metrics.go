package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventsProcessed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "agg_review_events_total",
		Help: "Review events handled by the aggregation consumer",
	},
	[]string{"type", "result"},
)
