package observability

import (
	"testing"
	"time"
)

func TestMetricsExport(t *testing.T) {
	m := NewMetrics(100)

	m.RecordRequest("analyze")
	m.RecordRequest("analyze")
	m.RecordRequest("organize")
	m.RecordFailure("organize")
	m.RecordDuration("analyze", 10*time.Millisecond)
	m.RecordDuration("analyze", 30*time.Millisecond)

	snapshot := m.Export()
	if snapshot.RequestTotal != 3 {
		t.Errorf("RequestTotal = %d, want 3", snapshot.RequestTotal)
	}
	if snapshot.RequestFailed != 1 {
		t.Errorf("RequestFailed = %d, want 1", snapshot.RequestFailed)
	}
	if len(snapshot.Operations) != 2 {
		t.Fatalf("got %d operations, want 2", len(snapshot.Operations))
	}

	// Sorted by name.
	analyze := snapshot.Operations[0]
	if analyze.Operation != "analyze" {
		t.Fatalf("first operation = %q, want analyze", analyze.Operation)
	}
	if analyze.ExecutionCount != 2 {
		t.Errorf("analyze count = %d, want 2", analyze.ExecutionCount)
	}
	if analyze.AvgDurationMs != 20 {
		t.Errorf("analyze avg = %dms, want 20", analyze.AvgDurationMs)
	}

	organize := snapshot.Operations[1]
	if organize.ErrorCount != 1 {
		t.Errorf("organize errors = %d, want 1", organize.ErrorCount)
	}
}

func TestMetricsDurationWindow(t *testing.T) {
	m := NewMetrics(2)
	m.RecordDuration("analyze", time.Millisecond)
	m.RecordDuration("analyze", 2*time.Millisecond)
	m.RecordDuration("analyze", 100*time.Millisecond)

	// Oldest sample dropped, so the median reflects recent traffic.
	snapshot := m.Export()
	if snapshot.P50DurationMs != 100 {
		t.Errorf("P50 = %dms, want 100", snapshot.P50DurationMs)
	}
}

func TestMetricsEmptyExport(t *testing.T) {
	snapshot := NewMetrics(10).Export()
	if snapshot.P50DurationMs != 0 || snapshot.P95DurationMs != 0 {
		t.Errorf("empty percentiles should be zero: %+v", snapshot)
	}
}
