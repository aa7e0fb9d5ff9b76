// Package store
package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyhub_store_operations_total",
		Help: "Record store operations by collection, operation and outcome.",
	}, []string{"collection", "operation", "outcome"})

	storeSubscribers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "skyhub_store_subscribers",
		Help: "Live snapshot subscribers per collection.",
	}, []string{"collection"})
)

func countOperation(collection, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	storeOperations.WithLabelValues(collection, operation, outcome).Inc()
}
