package config

import (
	"sync"

	"golang.org/x/sys/cpu"

	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/limb"
	"github.com/agbru/bignum/internal/logging"
)

// Threshold resolution chain (highest priority first):
//   1. Environment variables (BIGNUM_TOOM33_THRESHOLD, etc.)
//   2. Threshold profile file (BIGNUM_THRESHOLD_PROFILE, YAML)
//   3. Adaptive hardware estimation (EstimateThresholds)
//   4. Static defaults (DefaultThresholds)
//
// Thresholds never affect results, only which algorithm produces them.

// Thresholds selects among the multiplication, squaring and GCD
// algorithms by operand length in limbs. A multiplication of an n-limb
// by an m-limb operand (n >= m) uses the largest algorithm whose
// threshold is <= m.
type Thresholds struct {
	// Multiplication.
	Toom22    int `yaml:"toom22"`
	Toom33    int `yaml:"toom33"`
	Toom44    int `yaml:"toom44"`
	Toom6H    int `yaml:"toom6h"`
	Toom8H    int `yaml:"toom8h"`
	Transform int `yaml:"transform"`

	// Squaring.
	SqrToom2     int `yaml:"sqr_toom2"`
	SqrToom3     int `yaml:"sqr_toom3"`
	SqrToom4     int `yaml:"sqr_toom4"`
	SqrToom6     int `yaml:"sqr_toom6"`
	SqrToom8     int `yaml:"sqr_toom8"`
	SqrMod       int `yaml:"sqr_mod"`
	SqrTransform int `yaml:"sqr_transform"`

	// HalfGCD is the number of limbs above the reduction target below
	// which the half-GCD engine stops recursing and takes single steps.
	HalfGCD int `yaml:"half_gcd"`
	// GCD is the divisor length in limbs above which GCD is driven by
	// half-GCD reductions instead of plain Euclidean steps.
	GCD int `yaml:"gcd"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Static defaults
// ─────────────────────────────────────────────────────────────────────────────

// DefaultThresholds returns the static table for the compiled limb width.
func DefaultThresholds() Thresholds {
	t := Thresholds{
		Toom22:    20,
		Toom33:    39,
		Toom44:    130,
		Toom6H:    345,
		// Toom-8 measured no faster than Toom-6 below the transform
		// threshold, so by default it only engages through a profile.
		Toom8H:    1500,
		Transform: 1500,

		SqrToom2:     43,
		SqrToom3:     120,
		SqrToom4:     390,
		SqrToom6:     560,
		SqrToom8:     837,
		SqrMod:       1100,
		SqrTransform: 1500,

		HalfGCD: 40,
		GCD:     60,
	}
	if limb.Width == 32 {
		// Half-width limbs: the schoolbook loop stays competitive longer and
		// the transform pays off later in limb terms.
		t.Toom22, t.SqrToom2 = 24, 50
		t.Transform, t.SqrMod, t.SqrTransform = 2400, 1800, 2400
		t.Toom8H = t.Transform
	}
	return t
}

// EstimateThresholds adjusts the static table to the running CPU without
// benchmarking.
func EstimateThresholds() Thresholds {
	t := DefaultThresholds()
	switch {
	case cpu.X86.HasBMI2 && cpu.X86.HasADX:
		// Carry-chain friendly multiply-accumulate keeps basecase ahead longer.
		t.Toom22 += t.Toom22 / 4
		t.SqrToom2 += t.SqrToom2 / 4
	case cpu.ARM64.HasASIMD:
		t.Transform -= t.Transform / 8
		t.SqrTransform -= t.SqrTransform / 8
		t.SqrMod -= t.SqrMod / 8
	}
	t.Toom8H = min(t.Toom8H, t.Transform)
	return t
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

type namedThreshold struct {
	name  string
	value int
}

func chain(entries ...namedThreshold) error {
	for i, e := range entries {
		if e.value < 1 {
			return apperrors.NewConfigError("threshold %s=%d must be positive", e.name, e.value)
		}
		if i > 0 && e.value < entries[i-1].value {
			return apperrors.NewConfigError("threshold %s=%d is below %s=%d", e.name, e.value, entries[i-1].name, entries[i-1].value)
		}
	}
	return nil
}

// Validate checks that every threshold is positive and that each chain is
// non-decreasing.
func (t Thresholds) Validate() error {
	if err := chain(
		namedThreshold{"toom22", t.Toom22},
		namedThreshold{"toom33", t.Toom33},
		namedThreshold{"toom44", t.Toom44},
		namedThreshold{"toom6h", t.Toom6H},
		namedThreshold{"toom8h", t.Toom8H},
		namedThreshold{"transform", t.Transform},
	); err != nil {
		return err
	}
	if err := chain(
		namedThreshold{"sqr_toom2", t.SqrToom2},
		namedThreshold{"sqr_toom3", t.SqrToom3},
		namedThreshold{"sqr_toom4", t.SqrToom4},
		namedThreshold{"sqr_toom6", t.SqrToom6},
		namedThreshold{"sqr_toom8", t.SqrToom8},
		namedThreshold{"sqr_mod", t.SqrMod},
		namedThreshold{"sqr_transform", t.SqrTransform},
	); err != nil {
		return err
	}
	return chain(namedThreshold{"half_gcd", t.HalfGCD}, namedThreshold{"gcd", t.GCD})
}

// ─────────────────────────────────────────────────────────────────────────────
// Resolution
// ─────────────────────────────────────────────────────────────────────────────

// Load resolves the threshold table through the full chain and validates
// it. Applied overrides are reported on logger.
func Load(logger logging.Logger) (Thresholds, error) {
	t := EstimateThresholds()
	if path := getEnvString("THRESHOLD_PROFILE", ""); path != "" {
		p, err := LoadProfile(path)
		if err != nil {
			return Thresholds{}, apperrors.WrapError(err, "loading threshold profile %s", path)
		}
		t, err = p.Apply(t)
		if err != nil {
			return Thresholds{}, apperrors.WrapError(err, "applying threshold profile %s", path)
		}
		logger.Info("threshold profile applied", logging.String("path", path))
	}
	t = applyEnvOverrides(t, logger)
	if err := t.Validate(); err != nil {
		return Thresholds{}, err
	}
	return t, nil
}

var (
	defaultOnce  sync.Once
	defaultTable Thresholds
)

// Default returns the process-wide table, resolved once on first use. An
// invalid environment or profile is reported and the static defaults are
// used instead.
func Default() Thresholds {
	defaultOnce.Do(func() {
		logger := logging.NewDefaultLogger()
		t, err := Load(logger)
		if err != nil {
			logger.Error("invalid threshold configuration, using defaults", err)
			t = DefaultThresholds()
		}
		defaultTable = t
	})
	return defaultTable
}
