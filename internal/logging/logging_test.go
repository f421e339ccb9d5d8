package logging_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/mohammadpnp/debt-import/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"":       zapcore.InfoLevel,
		"debug":  zapcore.DebugLevel,
		" WARN ": zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
	}
	for input, want := range cases {
		got, err := logging.ParseLevel(input)
		if err != nil {
			t.Fatalf("%q: expected no error, got %v", input, err)
		}
		if got != want {
			t.Fatalf("%q: expected %v, got %v", input, want, got)
		}
	}

	if _, err := logging.ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewHonoursLevel(t *testing.T) {
	t.Parallel()

	logger, err := logging.New("warn", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info should be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("error should be enabled at warn level")
	}

	if _, err := logging.New("loud", true); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
