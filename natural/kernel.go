package natural

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/metric"

	"github.com/agbru/bignum/internal/config"
	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/hgcd"
	"github.com/agbru/bignum/internal/metrics"
	"github.com/agbru/bignum/internal/mul"
)

// kernel is the algorithm configuration shared by every operation. It is
// replaced as a whole, never mutated.
type kernel struct {
	sel *mul.Selector
	gcd *hgcd.Engine
	obs mul.Observer
}

var current atomic.Pointer[kernel]

func newKernel(sel *mul.Selector, obs mul.Observer) *kernel {
	return &kernel{sel: sel, gcd: hgcd.NewEngine(sel, sel.Thresholds()), obs: obs}
}

func active() *kernel {
	if k := current.Load(); k != nil {
		return k
	}
	current.CompareAndSwap(nil, newKernel(mul.Default(), nil))
	return current.Load()
}

func install(t config.Thresholds, obs mul.Observer) error {
	sel, err := mul.New(t, obs)
	if err != nil {
		return err
	}
	current.Store(newKernel(sel, obs))
	return nil
}

// UseThresholdProfile loads a YAML threshold profile and applies it on top
// of the thresholds in use. Results never depend on thresholds; only
// speed does.
func UseThresholdProfile(path string) error {
	p, err := config.LoadProfile(path)
	if err != nil {
		return apperrors.WrapError(err, "natural: loading profile %s", path)
	}
	k := active()
	t, err := p.Apply(k.sel.Thresholds())
	if err != nil {
		return apperrors.WrapError(err, "natural: applying profile %s", path)
	}
	return install(t, k.obs)
}

// ResetThresholds restores the process-wide default thresholds, keeping
// any enabled metrics.
func ResetThresholds() {
	k := active()
	if err := install(config.Default(), k.obs); err != nil {
		// config.Default is validated when it is resolved.
		panic(err)
	}
}

// EnableMetrics registers the kernel collector with reg and reports every
// later top-level multiplication and squaring to it, alongside any
// observer enabled earlier.
func EnableMetrics(reg prometheus.Registerer) error {
	c := metrics.NewKernelCollector()
	if err := reg.Register(c); err != nil {
		return apperrors.WrapError(err, "natural: registering kernel metrics")
	}
	k := active()
	return install(k.sel.Thresholds(), mul.Join(k.obs, c))
}

// EnableOTel reports every later top-level multiplication and squaring to
// OpenTelemetry instruments created on mp, alongside any observer enabled
// earlier.
func EnableOTel(mp metric.MeterProvider) error {
	r, err := metrics.NewOTelRecorder(mp)
	if err != nil {
		return apperrors.WrapError(err, "natural: creating kernel instruments")
	}
	k := active()
	return install(k.sel.Thresholds(), mul.Join(k.obs, r))
}
