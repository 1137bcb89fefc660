package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLoggerWithWriter(&buf, slog.LevelInfo)

	log.Debugf("hidden %d", 1)
	log.Infof("fetched %d products", 2)
	log.Errorf(errors.New("boom"), "error fetching products")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line must be filtered at info level: %q", out)
	}
	if !strings.Contains(out, "fetched 2 products") {
		t.Errorf("info line missing: %q", out)
	}
	if !strings.Contains(out, "error=boom") {
		t.Errorf("error attribute missing: %q", out)
	}
}

func TestZapLoggerBuilds(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "unknown"} {
		log, err := NewZapLogger(level, true)
		if err != nil {
			t.Fatalf("NewZapLogger(%q): %v", level, err)
		}
		log.Infof("level %s", level)
	}
}

func TestNopLogger(t *testing.T) {
	var _ Logger = NewNopLogger()
	var _ Logger = NewSlogLogger()

	NewNopLogger().Errorf(errors.New("ignored"), "nothing is written")
}
