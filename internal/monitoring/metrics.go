// Package monitoring exposes the Prometheus collectors shared by the
// services embedding this library. Only registration lives here: mounting
// an exposition endpoint is left to the surrounding service, which already
// owns an HTTP server and a metrics route.
//
// Label cardinality is kept deliberately small: validator names and counter
// identifiers form closed sets, and the store label is "global" or "eu".
package monitoring

import "github.com/prometheus/client_golang/prometheus"

var (
	// ValidationOutcomes counts validator runs by validator name and
	// outcome ("ok" or "rejected").
	ValidationOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exposure_validation_outcomes_total",
			Help: "Total validator runs by validator and outcome.",
		},
		[]string{"validator", "outcome"},
	)

	// CounterIncrements counts successful monotonic counter increments by
	// counter identifier.
	CounterIncrements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exposure_counter_increments_total",
			Help: "Total monotonic counter increments by counter identifier.",
		},
		[]string{"counter"},
	)

	// BatchesCreated counts persisted batch files by store.
	BatchesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exposure_batches_created_total",
			Help: "Total batch files created by store.",
		},
		[]string{"store"},
	)

	// DummyRequests counts padded dummy requests answered by the dummy
	// traffic handler.
	DummyRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "exposure_dummy_requests_total",
			Help: "Total dummy requests answered with padded responses.",
		},
	)
)

func init() {
	prometheus.MustRegister(ValidationOutcomes, CounterIncrements, BatchesCreated, DummyRequests)
}

// ObserveValidation records one validator run. err may be nil.
func ObserveValidation(validator string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	ValidationOutcomes.WithLabelValues(validator, outcome).Inc()
}
