package core

import (
	"context"
	"testing"
	"time"
)

func TestPromMetricsRecorderExports(t *testing.T) {
	rec := NewPromMetricsRecorder()
	rec.Observe(context.Background(), "create_ship", true, 5*time.Millisecond)
	rec.Observe(context.Background(), "create_ship", false, 5*time.Millisecond)
	rec.Observe(context.Background(), "", true, time.Millisecond)

	families, err := rec.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	if !names["fleetcore_service_operations_total"] {
		t.Fatalf("missing operations counter: %v", names)
	}
	if !names["fleetcore_service_operation_duration_seconds"] {
		t.Fatalf("missing duration histogram: %v", names)
	}
}

func TestMultiMetricsRecorderFansOut(t *testing.T) {
	a := &captureMetricsRecorder{}
	b := &captureMetricsRecorder{}
	rec := MultiMetricsRecorder(a, b)
	rec.Observe(context.Background(), "create_ship", true, time.Millisecond)
	if len(a.observed) != 1 || len(b.observed) != 1 {
		t.Fatalf("expected both recorders to observe, got %d and %d", len(a.observed), len(b.observed))
	}
}
