package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abiiranathan/go-format-lint/analyzer/validator"
)

// outcomeValid labels validations that found nothing.
const outcomeValid = "valid"

type metrics struct {
	validations    *prometheus.CounterVec
	templateLength prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		validations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formatlint_validations_total",
				Help: "The total number of validated templates by outcome kind",
			},
			[]string{"kind"},
		),
		templateLength: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "formatlint_template_length_bytes",
				Help:    "Length of validated templates",
				Buckets: prometheus.ExponentialBuckets(8, 2, 10),
			},
		),
	}
}

func (m *metrics) observe(template *string, failure *validator.Failure) {
	kind := outcomeValid
	if failure != nil {
		kind = failure.Kind.String()
	}
	m.validations.WithLabelValues(kind).Inc()

	if template != nil {
		m.templateLength.Observe(float64(len(*template)))
	}
}
