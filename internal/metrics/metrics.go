package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the hostel collectors.
type Metrics struct {
	RecordWrites *prometheus.CounterVec
	StoreErrors  *prometheus.CounterVec
	Logins       *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecordWrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostel",
			Name:      "record_writes_total",
			Help:      "Successful collection mutations.",
		}, []string{"collection", "action"}),
		StoreErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostel",
			Name:      "store_errors_total",
			Help:      "Failed collection operations by kind.",
		}, []string{"collection", "kind"}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostel",
			Name:      "logins_total",
			Help:      "Login attempts by role and outcome.",
		}, []string{"role", "outcome"}),
	}
}
