package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog labels
const (
	CatalogProducts  = "products"
	CatalogPlans     = "plans"
	CatalogPlanTypes = "plan_types"
)

// Selection outcomes
const (
	OutcomeMatched     = "matched"
	OutcomeEmpty       = "empty"
	OutcomeUnavailable = "unavailable"
)

// Selection Prometheus metrics.
var (
	SelectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "selector",
			Name:      "selections_total",
			Help:      "Total number of catalog selections",
		},
		[]string{"catalog", "outcome"},
	)

	SelectionResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "selector",
			Name:      "selection_results",
			Help:      "Number of matching items per selection before truncation",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 50},
		},
		[]string{"catalog"},
	)

	CatalogItems = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "selector",
			Name:      "catalog_items",
			Help:      "Number of items loaded per catalog",
		},
		[]string{"catalog"},
	)

	CatalogLoadErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "selector",
			Name:      "catalog_load_errors_total",
			Help:      "Total catalog load failures",
		},
		[]string{"catalog"},
	)

	RateLimiters = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "selector",
			Name:      "rate_limiters",
			Help:      "Number of per-client rate limiters held in memory",
		},
	)
)

func init() {
	prometheus.MustRegister(SelectionsTotal)
	prometheus.MustRegister(SelectionResults)
	prometheus.MustRegister(CatalogItems)
	prometheus.MustRegister(CatalogLoadErrorsTotal)
	prometheus.MustRegister(RateLimiters)
}

// ObserveSelection records one selection for a catalog
func ObserveSelection(catalog string, total int, available bool) {
	outcome := OutcomeMatched
	switch {
	case !available:
		outcome = OutcomeUnavailable
	case total == 0:
		outcome = OutcomeEmpty
	}
	SelectionsTotal.WithLabelValues(catalog, outcome).Inc()
	if available {
		SelectionResults.WithLabelValues(catalog).Observe(float64(total))
	}
}
