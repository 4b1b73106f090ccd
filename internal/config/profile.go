package config

import (
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/bignum/internal/errors"
	"github.com/agbru/bignum/internal/limb"
)

// Profile is a tuned threshold table persisted as YAML. Zero fields leave
// the underlying value unchanged.
//
//	word_size: 64
//	thresholds:
//	  toom33: 48
//	  transform: 1800
type Profile struct {
	// WordSize is the limb width the profile was tuned for. Zero means any.
	WordSize   int        `yaml:"word_size"`
	Thresholds Thresholds `yaml:"thresholds"`
}

// LoadProfile reads a profile from path.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, apperrors.NewConfigError("malformed threshold profile: %v", err)
	}
	return p, nil
}

// SaveProfile writes p to path as YAML.
func SaveProfile(path string, p Profile) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Apply overlays the non-zero thresholds of p on base. A profile tuned
// for a different limb width is rejected.
func (p Profile) Apply(base Thresholds) (Thresholds, error) {
	if p.WordSize != 0 && p.WordSize != limb.Width {
		return base, apperrors.NewConfigError("profile tuned for %d-bit limbs, running with %d-bit limbs", p.WordSize, limb.Width)
	}
	overlay := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	s := p.Thresholds
	overlay(&base.Toom22, s.Toom22)
	overlay(&base.Toom33, s.Toom33)
	overlay(&base.Toom44, s.Toom44)
	overlay(&base.Toom6H, s.Toom6H)
	overlay(&base.Toom8H, s.Toom8H)
	overlay(&base.Transform, s.Transform)
	overlay(&base.SqrToom2, s.SqrToom2)
	overlay(&base.SqrToom3, s.SqrToom3)
	overlay(&base.SqrToom4, s.SqrToom4)
	overlay(&base.SqrToom6, s.SqrToom6)
	overlay(&base.SqrToom8, s.SqrToom8)
	overlay(&base.SqrMod, s.SqrMod)
	overlay(&base.SqrTransform, s.SqrTransform)
	overlay(&base.HalfGCD, s.HalfGCD)
	overlay(&base.GCD, s.GCD)
	return base, nil
}
