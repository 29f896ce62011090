package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PaymentIntentsTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_client", Name: "payment_intents_total", Help: "Payment intents created"})
	PaymentsConfirmed   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_client", Name: "payments_confirmed_total", Help: "Payment intents confirmed"})
	UsersCreated        = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_client", Name: "users_created_total", Help: "Backend user records created"})
	RidesCreated        = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_client", Name: "rides_created_total", Help: "Ride records created"})
	LocationPings       = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_client", Name: "driver_location_pings_total", Help: "Driver location reports ingested"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ride_client", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ride_client",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
