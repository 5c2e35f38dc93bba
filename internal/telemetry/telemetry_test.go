package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveRequestRecordsSuccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(Config{Namespace: "test", Registry: reg})

	m.ObserveRequest("getVisualTree", time.Now().Add(-time.Millisecond), "")

	metric := &dto.Metric{}
	c, err := m.RequestsTotal.GetMetricWithLabelValues("getVisualTree", "ok")
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues: %v", err)
	}
	if err := c.Write(metric); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if metric.GetCounter().GetValue() != 1 {
		t.Errorf("counter = %v, want 1", metric.GetCounter().GetValue())
	}
}

func TestObserveRequestRecordsError(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(Config{Namespace: "test", Registry: reg})

	m.ObserveRequest("findElements", time.Now(), "NotFound")

	metric := &dto.Metric{}
	c, err := m.RequestErrors.GetMetricWithLabelValues("findElements", "NotFound")
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues: %v", err)
	}
	if err := c.Write(metric); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if metric.GetCounter().GetValue() != 1 {
		t.Errorf("error counter = %v, want 1", metric.GetCounter().GetValue())
	}
}

func TestStartDispatchSpanReturnsLiveContext(t *testing.T) {
	ctx, span := StartDispatchSpan(context.Background(), "getVisualTree")
	defer span.End()

	if ctx == nil {
		t.Fatal("StartDispatchSpan returned a nil context")
	}
	if span == nil {
		t.Fatal("StartDispatchSpan returned a nil span")
	}
}

func TestStartInvokeSpanReturnsLiveContext(t *testing.T) {
	ctx, span := StartInvokeSpan(context.Background(), "findElements", 4242)
	defer span.End()

	if ctx == nil {
		t.Fatal("StartInvokeSpan returned a nil context")
	}
}
