package fold

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	foldDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "reporting",
		Name:      "fold_duration_seconds",
		Help:      "Duration of one balance-folding pass in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	foldWarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "reporting",
		Name:      "fold_warnings_total",
		Help:      "Total number of data-quality warnings emitted by folding",
	})
)

func observeFold(d time.Duration, warnings int) {
	foldDuration.Observe(d.Seconds())
	foldWarningsTotal.Add(float64(warnings))
}
