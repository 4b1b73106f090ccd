package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/agbru/bignum/internal/arena"
	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/mul"
)

// InstrumentationName is the meter name under which OTelRecorder reports.
const InstrumentationName = "github.com/agbru/bignum"

// OTelRecorder reports the events KernelCollector exports to Prometheus
// through OpenTelemetry instruments instead, for processes that ship
// metrics with an OTLP pipeline.
type OTelRecorder struct {
	products  metric.Int64Counter
	operands  metric.Int64Histogram
	scratch   metric.Int64Histogram
	overflows metric.Int64Counter
}

var _ mul.Observer = (*OTelRecorder)(nil)

// NewOTelRecorder creates the kernel instruments on a meter from mp.
func NewOTelRecorder(mp metric.MeterProvider) (*OTelRecorder, error) {
	meter := mp.Meter(InstrumentationName)
	r := &OTelRecorder{}
	var err error
	if r.products, err = meter.Int64Counter("bignum.kernel.products",
		metric.WithDescription("Top-level products and squares by algorithm"),
		metric.WithUnit("{product}")); err != nil {
		return nil, apperrors.WrapError(err, "creating products counter")
	}
	if r.operands, err = meter.Int64Histogram("bignum.kernel.operand_limbs",
		metric.WithDescription("Length in limbs of the longer operand"),
		metric.WithUnit("{limb}"),
		metric.WithExplicitBucketBoundaries(1, 4, 16, 64, 256, 1024, 4096, 16384, 65536)); err != nil {
		return nil, apperrors.WrapError(err, "creating operand histogram")
	}
	if r.scratch, err = meter.Int64Histogram("bignum.kernel.scratch_peak_limbs",
		metric.WithDescription("Peak arena usage in limbs of one top-level call"),
		metric.WithUnit("{limb}")); err != nil {
		return nil, apperrors.WrapError(err, "creating scratch histogram")
	}
	if r.overflows, err = meter.Int64Counter("bignum.kernel.arena_overflows",
		metric.WithDescription("Scratch allocations that fell back to the heap"),
		metric.WithUnit("{allocation}")); err != nil {
		return nil, apperrors.WrapError(err, "creating overflow counter")
	}
	return r, nil
}

// ObserveMul records one top-level n×m product.
func (r *OTelRecorder) ObserveMul(alg mul.Algorithm, n, m int, st arena.Stats) {
	r.record(OpMul, alg, max(n, m), st)
}

// ObserveSqr records one top-level square of n limbs.
func (r *OTelRecorder) ObserveSqr(alg mul.Algorithm, n int, st arena.Stats) {
	r.record(OpSqr, alg, n, st)
}

func (r *OTelRecorder) record(op string, alg mul.Algorithm, n int, st arena.Stats) {
	ctx := context.Background()
	opAttr := attribute.String("op", op)
	both := metric.WithAttributes(opAttr, attribute.String("algorithm", alg.String()))
	r.products.Add(ctx, 1, both)
	r.operands.Record(ctx, int64(n), metric.WithAttributes(opAttr))
	r.scratch.Record(ctx, int64(st.Peak), metric.WithAttributes(opAttr))
	if st.Overflows > 0 {
		r.overflows.Add(ctx, int64(st.Overflows), both)
	}
}
