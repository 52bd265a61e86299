package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "jupiter_requests_total", Help: "Swap API calls by endpoint and HTTP status (or \"error\")"},
		[]string{"endpoint", "code"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "jupiter_request_duration_seconds", Help: "Time until response headers", Buckets: prometheus.DefBuckets},
		[]string{"endpoint"},
	)
	DecodeFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "jupiter_decode_failures_total", Help: "Responses that could not be parsed"},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal, RequestDuration, DecodeFailuresTotal)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
