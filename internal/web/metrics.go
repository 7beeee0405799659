package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "traduco_evaluations_total",
		Help: "The total number of evaluations served",
	})

	evaluationDuration = promauto.NewSummary(prometheus.SummaryOpts{
		Name: "traduco_evaluation_duration_seconds",
		Help: "Duration of evaluation requests",
	})

	feedbackItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traduco_feedback_items_total",
		Help: "Total number of feedback items emitted, by kind",
	}, []string{"kind"})
)
