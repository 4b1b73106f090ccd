package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/bignum/internal/arena"
	"github.com/agbru/bignum/internal/mul"
)

const (
	namespace = "bignum"
	subsystem = "kernel"
)

// Operation label values.
const (
	OpMul = "mul"
	OpSqr = "sqr"
)

// KernelCollector records the top-level multiplication choices of a
// mul.Selector and the scratch usage of their arenas. It implements both
// mul.Observer and prometheus.Collector.
type KernelCollector struct {
	products  *prometheus.CounterVec
	operands  *prometheus.HistogramVec
	scratch   *prometheus.HistogramVec
	overflows *prometheus.CounterVec
	memory    *MemoryCollector
	heapDesc  *prometheus.Desc
	poolDesc  *prometheus.Desc
}

var _ mul.Observer = (*KernelCollector)(nil)

// NewKernelCollector returns an unregistered collector.
func NewKernelCollector() *KernelCollector {
	labels := []string{"op", "algorithm"}
	return &KernelCollector{
		products: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "products_total",
			Help:      "Top-level products and squares by algorithm",
		}, labels),
		operands: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "operand_limbs",
			Help:      "Length in limbs of the longer operand",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"op"}),
		scratch: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "scratch_peak_limbs",
			Help:      "Peak arena usage in limbs of one top-level call",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}, []string{"op"}),
		overflows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "arena_overflows_total",
			Help:      "Scratch allocations that fell back to the heap",
		}, labels),
		memory: NewMemoryCollector(),
		heapDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "runtime", "heap_alloc_bytes"),
			"Bytes of allocated heap objects", nil, nil),
		poolDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "arena_overflows_process_total"),
			"Arena heap fallbacks since process start", nil, nil),
	}
}

// ObserveMul records one top-level n×m product.
func (c *KernelCollector) ObserveMul(alg mul.Algorithm, n, m int, st arena.Stats) {
	c.observe(OpMul, alg, max(n, m), st)
}

// ObserveSqr records one top-level square of n limbs.
func (c *KernelCollector) ObserveSqr(alg mul.Algorithm, n int, st arena.Stats) {
	c.observe(OpSqr, alg, n, st)
}

func (c *KernelCollector) observe(op string, alg mul.Algorithm, n int, st arena.Stats) {
	c.products.WithLabelValues(op, alg.String()).Inc()
	c.operands.WithLabelValues(op).Observe(float64(n))
	c.scratch.WithLabelValues(op).Observe(float64(st.Peak))
	if st.Overflows > 0 {
		c.overflows.WithLabelValues(op, alg.String()).Add(float64(st.Overflows))
	}
}

// Describe implements prometheus.Collector.
func (c *KernelCollector) Describe(ch chan<- *prometheus.Desc) {
	c.products.Describe(ch)
	c.operands.Describe(ch)
	c.scratch.Describe(ch)
	c.overflows.Describe(ch)
	ch <- c.heapDesc
	ch <- c.poolDesc
}

// Collect implements prometheus.Collector.
func (c *KernelCollector) Collect(ch chan<- prometheus.Metric) {
	c.products.Collect(ch)
	c.operands.Collect(ch)
	c.scratch.Collect(ch)
	c.overflows.Collect(ch)
	ch <- prometheus.MustNewConstMetric(c.heapDesc, prometheus.GaugeValue, float64(c.memory.Snapshot().HeapAlloc))
	ch <- prometheus.MustNewConstMetric(c.poolDesc, prometheus.CounterValue, float64(arena.TotalOverflows()))
}
