// This file contains environment variable utilities for threshold overrides.

package config

import (
	"os"
	"strconv"

	"github.com/agbru/bignum/internal/logging"
)

// EnvPrefix prefixes every environment variable read by this package.
const EnvPrefix = "BIGNUM_"

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the BIGNUM_ prefix) to the
// threshold field it sets.
type envOverride struct {
	envKey string
	field  func(*Thresholds) *int
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	{"TOOM22_THRESHOLD", func(t *Thresholds) *int { return &t.Toom22 }},
	{"TOOM33_THRESHOLD", func(t *Thresholds) *int { return &t.Toom33 }},
	{"TOOM44_THRESHOLD", func(t *Thresholds) *int { return &t.Toom44 }},
	{"TOOM6H_THRESHOLD", func(t *Thresholds) *int { return &t.Toom6H }},
	{"TOOM8H_THRESHOLD", func(t *Thresholds) *int { return &t.Toom8H }},
	{"FFT_THRESHOLD", func(t *Thresholds) *int { return &t.Transform }},

	{"SQR_TOOM2_THRESHOLD", func(t *Thresholds) *int { return &t.SqrToom2 }},
	{"SQR_TOOM3_THRESHOLD", func(t *Thresholds) *int { return &t.SqrToom3 }},
	{"SQR_TOOM4_THRESHOLD", func(t *Thresholds) *int { return &t.SqrToom4 }},
	{"SQR_TOOM6_THRESHOLD", func(t *Thresholds) *int { return &t.SqrToom6 }},
	{"SQR_TOOM8_THRESHOLD", func(t *Thresholds) *int { return &t.SqrToom8 }},
	{"SQRMOD_BNM1_THRESHOLD", func(t *Thresholds) *int { return &t.SqrMod }},
	{"SQR_FFT_THRESHOLD", func(t *Thresholds) *int { return &t.SqrTransform }},

	{"HGCD_THRESHOLD", func(t *Thresholds) *int { return &t.HalfGCD }},
	{"GCD_DC_THRESHOLD", func(t *Thresholds) *int { return &t.GCD }},
}

// applyEnvOverrides applies environment variable values on top of t.
// Values that do not parse as integers are reported and ignored.
//
// Supported environment variables (all prefixed with BIGNUM_):
//   - TOOM22_THRESHOLD ... TOOM8H_THRESHOLD, FFT_THRESHOLD
//   - SQR_TOOM2_THRESHOLD ... SQR_TOOM8_THRESHOLD, SQRMOD_BNM1_THRESHOLD,
//     SQR_FFT_THRESHOLD
//   - HGCD_THRESHOLD, GCD_DC_THRESHOLD
func applyEnvOverrides(t Thresholds, logger logging.Logger) Thresholds {
	for _, o := range envOverrides {
		val := getEnvString(o.envKey, "")
		if val == "" {
			continue
		}
		parsed, err := strconv.Atoi(val)
		if err != nil {
			logger.Error("ignoring threshold override", err, logging.String("key", EnvPrefix+o.envKey))
			continue
		}
		*o.field(&t) = parsed
		logger.Info("threshold override applied", logging.String("key", EnvPrefix+o.envKey), logging.Int("value", parsed))
	}
	return t
}
