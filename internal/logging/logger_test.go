package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("source", "env"), "source", "env"},
		{"Int", Int("toom33", 39), "toom33", 39},
		{"Uint64", Uint64("limbs", 1 << 40), "limbs", uint64(1 << 40)},
		{"Float64", Float64("ratio", 1.5), "ratio", 1.5},
		{"Err nil", Err(nil), "error", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.value)
			}
		})
	}
}

func TestNewLogger_IncludesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "config")
	logger.Info("threshold override applied",
		String("key", "TOOM33_THRESHOLD"), Int("value", 48), Uint64("limbs", 7), Float64("scale", 0.5))

	out := buf.String()
	for _, want := range []string{"config", "threshold override applied", "TOOM33_THRESHOLD", "48", `"limbs":7`, "0.5", `"level":"info"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestZerologAdapter_ErrorAndDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logger.Error("profile rejected", errors.New("toom22 above toom33"), Field{Key: "cause", Value: errors.New("monotonicity")})
	logger.Debug("estimate", String("cpu", "bmi2"))
	logger.Printf("loaded %d overrides", 3)
	logger.Println("using", "defaults")

	out := buf.String()
	for _, want := range []string{"profile rejected", "toom22 above toom33", "monotonicity", `"level":"error"`, "bmi2", "loaded 3 overrides", "using defaults"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewStdLoggerAdapter(log.New(&buf, "", 0))

	adapter.Info("profile loaded", String("path", "/tmp/p.yaml"))
	adapter.Error("invalid override", errors.New("not a number"), String("key", "FFT_THRESHOLD"))
	adapter.Debug("estimate", Int("toom22", 25))
	adapter.Printf("value is %d", 123)
	adapter.Println("a", "b")

	out := buf.String()
	for _, want := range []string{"[INFO] profile loaded path=/tmp/p.yaml", "[ERROR] invalid override: not a number key=FFT_THRESHOLD", "[DEBUG] estimate toom22=25", "value is 123", "a b"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = NewLogger(&buf, "test")
	var _ Logger = NewStdLoggerAdapter(log.New(&buf, "", 0))
	var _ Logger = NewDefaultLogger()
	Nop().Info("discarded")
}
