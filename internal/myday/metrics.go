package myday

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maw",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Number of HTTP requests sent to the myday API.",
	}, []string{"code", "method"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "maw",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Latency of HTTP requests sent to the myday API.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"code", "method"})

	tokenExchanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "maw",
		Subsystem: "upstream",
		Name:      "token_exchanges_total",
		Help:      "Number of identity credential exchanges by result.",
	}, []string{"result"})
)

func init() {
	// Expose both exchange results from the start so rates can be computed before the first failure
	for _, result := range []string{"success", "failure"} {
		tokenExchanges.WithLabelValues(result)
	}
}

// instrument wraps an upstream round tripper so every request is counted and timed
func instrument(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(upstreamRequests,
		promhttp.InstrumentRoundTripperDuration(upstreamDuration, next))
}
