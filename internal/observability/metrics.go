package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	framesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "actionwire",
			Subsystem: "transport",
			Name:      "frames_total",
			Help:      "Frames read or written by the transport.",
		},
		[]string{"direction", "type"},
	)
	actionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "actionwire",
			Subsystem: "codec",
			Name:      "actions_total",
			Help:      "Actions encoded or decoded for transport.",
		},
		[]string{"op"},
	)
)

// Collectors exposes the metrics for custom registries.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{framesTotal, actionsTotal}
}

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(Collectors()...)
	})
}

func RecordFrame(direction, msgType string) {
	RegisterMetrics()
	framesTotal.WithLabelValues(direction, msgType).Inc()
}

func RecordActions(op string, n int) {
	RegisterMetrics()
	actionsTotal.WithLabelValues(op).Add(float64(n))
}

// Handler serves the default registry in the text exposition format.
func Handler() http.Handler {
	RegisterMetrics()
	return promhttp.Handler()
}
