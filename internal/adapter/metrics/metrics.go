package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the dashboard core.
type Metrics struct {
	AuthzChecksTotal    *prometheus.CounterVec
	AuthzDenialsTotal   *prometheus.CounterVec
	OrderOpsTotal       *prometheus.CounterVec
	KeyCollisionsTotal  prometheus.Counter
	PlanLimitRejections prometheus.Counter
	OrderKeyLength      prometheus.Histogram
}

// New initializes and registers the Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		AuthzChecksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sitepilot",
			Subsystem: "authz",
			Name:      "checks_total",
			Help:      "Total number of guard evaluations by result.",
		}, []string{"result"}), // result: allowed, denied
		AuthzDenialsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sitepilot",
			Subsystem: "authz",
			Name:      "denials_total",
			Help:      "Guard denials by internal reason. Callers see a generic not-found; the three cases stay distinguishable here.",
		}, []string{"reason"}), // reason: wrong_tenant, not_a_member, permission_denied
		OrderOpsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sitepilot",
			Subsystem: "ordering",
			Name:      "operations_total",
			Help:      "Total number of ordering mutations by operation.",
		}, []string{"op"}), // op: insert, move, reorder, reparent
		KeyCollisionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "sitepilot",
			Subsystem: "ordering",
			Name:      "key_collisions_total",
			Help:      "Order-key write conflicts that triggered a recompute-and-retry.",
		}),
		PlanLimitRejections: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "sitepilot",
			Subsystem: "billing",
			Name:      "plan_limit_rejections_total",
			Help:      "Inserts rejected because a tenant hit a plan limit.",
		}),
		OrderKeyLength: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sitepilot",
			Subsystem: "ordering",
			Name:      "key_length_chars",
			Help:      "Length of freshly generated order keys. Growth indicates repeated splitting of the same gap.",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		}),
	}
}
