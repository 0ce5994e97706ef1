// Package igvmetrics holds the Prometheus instruments for the server.
package igvmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts completed requests by handler and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "igv",
		Name:      "requests_total",
		Help:      "Completed HTTP requests.",
	}, []string{"handler", "status"})

	// BytesRelayed counts object bytes streamed to clients.
	BytesRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "igv",
		Name:      "relay_bytes_total",
		Help:      "Object bytes relayed to clients.",
	})

	// RelayFaults counts post-header relay faults by class.
	RelayFaults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "igv",
		Name:      "relay_faults_total",
		Help:      "Relay terminations other than full transfer.",
	}, []string{"class"})

	// InFlight tracks requests currently being served.
	InFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "igv",
		Name:      "requests_in_flight",
		Help:      "Requests currently being served.",
	})
)
