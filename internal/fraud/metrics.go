package fraud

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	assessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraud_assessments_total",
			Help: "Total number of order fraud assessments by risk level",
		},
		[]string{"risk_level"},
	)

	autoBlocksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fraud_auto_blocks_total",
			Help: "Total number of orders auto-blocked by fraud assessment",
		},
	)
)
