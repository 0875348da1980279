package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestOperationMetricsCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOperationMetrics(reg)

	m.IncSuccess("submit_offer")
	m.IncSuccess("submit_offer")
	m.IncFailure("submit_offer", "RATE_LIMIT_EXCEEDED")

	if got := testutil.ToFloat64(m.success.WithLabelValues("submit_offer")); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(m.failure.WithLabelValues("submit_offer", "rate_limit_exceeded")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
}

func TestOperationMetricsNilSafe(t *testing.T) {
	var m *OperationMetrics
	m.IncSuccess("anything")
	m.IncFailure("anything", "code")

	empty := NewOperationMetrics(nil)
	empty.IncSuccess("anything")
}

func TestNormalizeLabel(t *testing.T) {
	if got := normalizeLabel("  Mark Sold "); got != "mark_sold" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := normalizeLabel(""); got != "unknown" {
		t.Fatalf("unexpected label %q", got)
	}
}
