package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the member feature.
type Metrics struct {
	MembersCreated prometheus.Counter
}

// New creates and registers the member metrics.
func New() *Metrics {
	return &Metrics{
		MembersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "memberlist_members_created_total",
			Help: "Total number of members registered",
		}),
	}
}

// IncrementMembersCreated increments the registration counter by 1.
func (m *Metrics) IncrementMembersCreated() {
	m.MembersCreated.Inc()
}
