package async

import (
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Metric keys shared by every core component. A single registry is
// created per Executor (see executor.go) and handed to the Tasks its
// factory helpers (OnTick, OnRepeat, OnDelay, OnDemand) create; a Chain,
// or a Task added through Add, records into it only when given it with
// WithMetrics.
const (
	MetricTicksTotal          = metricz.Key("async.ticks.total")
	MetricTasksFiredTotal     = metricz.Key("async.tasks.fired.total")
	MetricChainOpsAdvanced    = metricz.Key("async.chain.ops.advanced.total")
	MetricChainOpsSpun        = metricz.Key("async.chain.ops.spun.total")
	MetricSemaphoreAcquired   = metricz.Key("async.semaphore.acquired.total")
	MetricSemaphoreContention = metricz.Key("async.semaphore.contention.total")
	MetricExecutorPanics      = metricz.Key("async.executor.panics.total")
	MetricExecutorMembers     = metricz.Key("async.executor.members.current")
)

// Trace span and tag keys.
const (
	SpanExecutorTick tracez.Key = "async.executor.tick"
	SpanTaskTick      tracez.Key = "async.task.tick"
	SpanChainTick     tracez.Key = "async.chain.tick"

	TagTickableName tracez.Tag = "async.tickable.name"
	TagTickableKind tracez.Tag = "async.tickable.kind"
)

// newMetrics builds a registry pre-populated with every counter/gauge
// this package emits, so callers never hit a Counter/Gauge for a key
// that hasn't been registered.
func newMetrics() *metricz.Registry {
	r := metricz.New()
	r.Counter(MetricTicksTotal)
	r.Counter(MetricTasksFiredTotal)
	r.Counter(MetricChainOpsAdvanced)
	r.Counter(MetricChainOpsSpun)
	r.Counter(MetricSemaphoreAcquired)
	r.Counter(MetricSemaphoreContention)
	r.Counter(MetricExecutorPanics)
	r.Gauge(MetricExecutorMembers)
	return r
}
