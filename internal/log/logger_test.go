package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelWarn,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitLogToFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	InitLogTo(&buf, "warn")
	defer InitLogTo(&bytes.Buffer{}, "warn")

	Debug("hidden", "k", 1)
	Warn("shown", "source", "registry")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "source=registry") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestLevelHelpers(t *testing.T) {
	var buf bytes.Buffer
	InitLogTo(&buf, "debug")
	defer InitLogTo(&bytes.Buffer{}, "warn")

	Debug("d-record")
	Info("i-record")
	Warn("w-record")

	out := buf.String()
	for _, want := range []string{"level=DEBUG msg=d-record", "level=INFO msg=i-record", "level=WARN msg=w-record"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}
