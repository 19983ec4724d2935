package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected zerolog.Level
		wantErr  bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"WARNING", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"loud", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		level, err := ParseLevel(tt.name)
		if (err != nil) != tt.wantErr || level != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.name, level, err)
		}
	}
}

func TestSetupSplitsLevels(t *testing.T) {
	restoreLogger(t)
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "xparse.log")

	closer, err := Setup(Options{Level: "info", Format: "json", File: path, Console: &console})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	WithRunID("run-1")
	log.Debug().Msg("debug only")
	log.Warn().Msg("everywhere")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	if strings.Contains(console.String(), "debug only") {
		t.Error("console must not receive debug events")
	}
	if !strings.Contains(console.String(), "everywhere") || !strings.Contains(console.String(), `"run_id":"run-1"`) {
		t.Errorf("unexpected console output %s", console.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "debug only") || !strings.Contains(string(data), "everywhere") {
		t.Errorf("unexpected file output %s", data)
	}
}

func TestSetupConsoleFormat(t *testing.T) {
	restoreLogger(t)
	var console bytes.Buffer

	if _, err := Setup(Options{Level: "warn", Console: &console}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	log.Info().Msg("hidden")
	log.Warn().Str("cell", "B2").Msg("person missing")

	out := console.String()
	if strings.Contains(out, "hidden") {
		t.Error("info must be filtered at warn level")
	}
	if !strings.Contains(out, "person missing") || !strings.Contains(out, "cell=B2") {
		t.Errorf("unexpected console output %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("a buffer is not a terminal, output must not be colored")
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if _, err := Setup(Options{Level: "loud", Console: &bytes.Buffer{}}); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
