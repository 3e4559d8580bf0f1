package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)
	metrics.ObserveRequest("/api/v1/orders", "POST", "2xx", 120*time.Millisecond)
	metrics.ObserveRequest("/api/v1/orders", "POST", "4xx", 15*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", "status", "2xx"); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 1 {
		t.Fatalf("expected 2xx=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "route", "/api/v1/orders"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestOrderMetricsCountsPlacedAndRejected(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewOrderMetrics(reg)
	metrics.IncPlaced(3)
	metrics.IncRejected("insufficient_stock")
	metrics.IncRejected("")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got := fetchUnlabeledCounter(t, mfs, "orders_placed_total"); got != 1 {
		t.Fatalf("expected placed=1, got %f", got)
	}
	if got := fetchUnlabeledCounter(t, mfs, "order_lines_written_total"); got != 3 {
		t.Fatalf("expected lines=3, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "order_rejections_total", "reason", "insufficient_stock"); err != nil {
		t.Fatalf("fetch rejections: %v", err)
	} else if got != 1 {
		t.Fatalf("expected rejections=1, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "order_rejections_total", "reason", "unknown"); err != nil {
		t.Fatalf("fetch unknown rejections: %v", err)
	} else if got != 1 {
		t.Fatalf("expected blank reason to fall back to unknown, got %f", got)
	}
}

func TestNilRegistererProducesNoopMetrics(t *testing.T) {
	http := NewHTTPMetrics(nil)
	http.ObserveRequest("/healthz", "GET", "2xx", time.Millisecond)
	orders := NewOrderMetrics(nil)
	orders.IncPlaced(1)
	orders.IncRejected("not_found")
}

func fetchUnlabeledCounter(t *testing.T, mfs []*dto.MetricFamily, name string) float64 {
	t.Helper()
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		t.Fatalf("metric %q not found", name)
	}
	if len(mf.GetMetric()) != 1 {
		t.Fatalf("expected single series for %q", name)
	}
	return mf.GetMetric()[0].GetCounter().GetValue()
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
