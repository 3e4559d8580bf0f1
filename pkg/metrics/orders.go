package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records the outcome of order placement attempts.
type OrderMetrics struct {
	placed     prometheus.Counter
	lines      prometheus.Counter
	rejections *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	placed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders committed successfully.",
	})
	lines := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_lines_written_total",
		Help: "Order lines written as part of committed orders.",
	})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_rejections_total",
		Help: "Order placements rolled back, by reason.",
	}, []string{"reason"})
	reg.MustRegister(placed, lines, rejections)
	return &OrderMetrics{
		placed:     placed,
		lines:      lines,
		rejections: rejections,
	}
}

// IncPlaced records a committed order and the number of lines it carried.
func (o *OrderMetrics) IncPlaced(lineCount int) {
	if o == nil || o.placed == nil {
		return
	}
	o.placed.Inc()
	if lineCount > 0 {
		o.lines.Add(float64(lineCount))
	}
}

// IncRejected records a rolled-back placement attempt.
func (o *OrderMetrics) IncRejected(reason string) {
	if o == nil || o.rejections == nil {
		return
	}
	o.rejections.WithLabelValues(normalizeLabel(reason)).Inc()
}
