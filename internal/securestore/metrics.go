package securestore

import "github.com/prometheus/client_golang/prometheus"

// Operation and result label values.
const (
	opPut    = "put"
	opGet    = "get"
	opRemove = "remove"
	opClear  = "clear"

	resultOK       = "ok"
	resultNotFound = "not_found"
	resultCorrupt  = "corrupt"
	resultError    = "error"
)

// Metrics counts store operations. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Operations *prometheus.CounterVec
	Corrupt    prometheus.Counter
}

// NewMetrics builds the store collectors and registers them with reg when it is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "erdash",
			Subsystem: "securestore",
			Name:      "operations_total",
			Help:      "Encrypted store operations by operation and result.",
		}, []string{"op", "result"}),
		Corrupt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "erdash",
			Subsystem: "securestore",
			Name:      "corrupt_entries_total",
			Help:      "Stored entries discarded because they could not be decrypted or parsed.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Operations, m.Corrupt)
	}
	return m
}

func (m *Metrics) observe(op, result string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(op, result).Inc()
}

func (m *Metrics) corrupt() {
	if m == nil {
		return
	}
	m.Corrupt.Inc()
}
