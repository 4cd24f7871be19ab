package client

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values of requestsTotal.
const (
	outcomeOK             = "ok"
	outcomeStatusError    = "status_error"
	outcomeDecodeError    = "decode_error"
	outcomeEmpty          = "empty"
	outcomeInvalid        = "invalid_filter"
	outcomeCanceled       = "canceled"
	outcomeTransportError = "transport_error"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insights_client",
			Name:      "requests_total",
			Help:      "Enrollment queries issued, by filter and outcome.",
		},
		[]string{"filter", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "insights_client",
			Name:      "request_duration_seconds",
			Help:      "Wall time of enrollment queries including JSON decode.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"filter"},
	)
)

func observe(filter Filter, start time.Time, err error) {
	label := filter.String()
	if !filter.Valid() {
		label = "invalid"
	}
	requestDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(label, outcomeOf(err)).Inc()
}

func outcomeOf(err error) string {
	var se *StatusError
	switch {
	case err == nil:
		return outcomeOK
	case errors.As(err, &se):
		return outcomeStatusError
	case IsDecode(err):
		return outcomeDecodeError
	case errors.Is(err, ErrEmptyResult):
		return outcomeEmpty
	case errors.Is(err, ErrInvalidFilter):
		return outcomeInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	default:
		return outcomeTransportError
	}
}
