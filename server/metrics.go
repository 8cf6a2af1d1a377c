package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storiesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "empathybridge",
			Name:      "stories_generated_total",
			Help:      "Stories generated, by narrator and outcome",
		},
		[]string{"narrator", "status"},
	)

	topicSelections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "empathybridge",
			Name:      "topic_selections_total",
			Help:      "Topics selected in successful story requests",
		},
		[]string{"topic"},
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "empathybridge",
			Name:      "generation_duration_seconds",
			Help:      "Wall time of story generation including the artificial delay",
			Buckets:   []float64{0.1, 0.5, 1, 2, 3, 5, 10, 30, 60},
		},
		[]string{"narrator"},
	)

	storiesShared = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "empathybridge",
			Name:      "stories_shared_total",
			Help:      "Story pages published",
		},
	)

	storiesInMemory = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "empathybridge",
			Name:      "stories_in_memory",
			Help:      "Stories currently held by the store",
		},
	)
)
