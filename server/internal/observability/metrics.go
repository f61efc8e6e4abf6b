package observability

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics aggregates counters per engine operation (analyze, organize,
// insights, questions). Kept in-process; exposed through the metrics
// endpoint as JSON.
type Metrics struct {
	mu sync.Mutex

	requestTotal  atomic.Int64
	requestFailed atomic.Int64

	operationMetrics map[string]*OperationMetrics

	durations    []time.Duration
	maxDurations int
}

// OperationMetrics represents counters for one engine operation.
type OperationMetrics struct {
	executionCount atomic.Int64
	totalDuration  atomic.Int64 // milliseconds
	errorCount     atomic.Int64
}

// NewMetrics creates a new metrics collector keeping at most maxDurations
// samples for percentile computation.
func NewMetrics(maxDurations int) *Metrics {
	if maxDurations <= 0 {
		maxDurations = 1000
	}
	return &Metrics{
		operationMetrics: make(map[string]*OperationMetrics),
		durations:        make([]time.Duration, 0, maxDurations),
		maxDurations:     maxDurations,
	}
}

var globalMetrics = NewMetrics(1000)

// GlobalMetrics returns the global metrics instance.
func GlobalMetrics() *Metrics {
	return globalMetrics
}

// RecordRequest records a request for the given operation.
func (m *Metrics) RecordRequest(operation string) {
	m.requestTotal.Add(1)
	m.getOperationMetrics(operation).executionCount.Add(1)
}

// RecordFailure records a failed request for the given operation.
func (m *Metrics) RecordFailure(operation string) {
	m.requestFailed.Add(1)
	m.getOperationMetrics(operation).errorCount.Add(1)
}

// RecordDuration records a request duration for the given operation.
func (m *Metrics) RecordDuration(operation string, d time.Duration) {
	m.getOperationMetrics(operation).totalDuration.Add(d.Milliseconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.durations) >= m.maxDurations {
		m.durations = m.durations[1:]
	}
	m.durations = append(m.durations, d)
}

func (m *Metrics) getOperationMetrics(operation string) *OperationMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	om, ok := m.operationMetrics[operation]
	if !ok {
		om = &OperationMetrics{}
		m.operationMetrics[operation] = om
	}
	return om
}

// OperationSnapshot is the exported view of one operation's counters.
type OperationSnapshot struct {
	Operation      string `json:"operation"`
	ExecutionCount int64  `json:"execution_count"`
	ErrorCount     int64  `json:"error_count"`
	AvgDurationMs  int64  `json:"avg_duration_ms"`
}

// Snapshot is the exported view of the collector.
type Snapshot struct {
	RequestTotal  int64               `json:"request_total"`
	RequestFailed int64               `json:"request_failed"`
	P50DurationMs int64               `json:"p50_duration_ms"`
	P95DurationMs int64               `json:"p95_duration_ms"`
	Operations    []OperationSnapshot `json:"operations"`
}

// Export returns a point-in-time snapshot of all counters.
func (m *Metrics) Export() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := Snapshot{
		RequestTotal:  m.requestTotal.Load(),
		RequestFailed: m.requestFailed.Load(),
	}

	if len(m.durations) > 0 {
		sorted := make([]time.Duration, len(m.durations))
		copy(sorted, m.durations)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		snapshot.P50DurationMs = sorted[len(sorted)/2].Milliseconds()
		snapshot.P95DurationMs = sorted[len(sorted)*95/100].Milliseconds()
	}

	names := make([]string, 0, len(m.operationMetrics))
	for name := range m.operationMetrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		om := m.operationMetrics[name]
		count := om.executionCount.Load()
		op := OperationSnapshot{
			Operation:      name,
			ExecutionCount: count,
			ErrorCount:     om.errorCount.Load(),
		}
		if count > 0 {
			op.AvgDurationMs = om.totalDuration.Load() / count
		}
		snapshot.Operations = append(snapshot.Operations, op)
	}
	return snapshot
}
