package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics counts engine operation outcomes by name.
type OperationMetrics struct {
	success *prometheus.CounterVec
	failure *prometheus.CounterVec
}

// NewOperationMetrics registers the engine counters on the provided registerer.
func NewOperationMetrics(reg prometheus.Registerer) *OperationMetrics {
	if reg == nil {
		return &OperationMetrics{}
	}
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_operation_success",
		Help: "Successful lifecycle engine operations.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_operation_failure",
		Help: "Failed lifecycle engine operations.",
	}, []string{"operation", "code"})
	reg.MustRegister(success, failure)
	return &OperationMetrics{
		success: success,
		failure: failure,
	}
}

// IncSuccess increments the success counter for the named operation.
func (m *OperationMetrics) IncSuccess(operation string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for the named operation and error code.
func (m *OperationMetrics) IncFailure(operation, code string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(operation), normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" {
		return "unknown"
	}
	return strings.ReplaceAll(v, " ", "_")
}
