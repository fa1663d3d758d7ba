package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/recywise/recywise-tui/internal/config"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "recywise.log")
	log, err := Setup(config.LogConfig{Path: path, Level: "debug", MaxSizeMB: 1, MaxBackups: 1})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	log.Info("wizard ready", "session", "abc123")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "wizard ready") {
		t.Errorf("log missing message: %q", data)
	}
	if !strings.Contains(string(data), "session=abc123") {
		t.Errorf("log missing attribute: %q", data)
	}
}

func TestSetupLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recywise.log")
	log, err := Setup(config.LogConfig{Path: path, Level: "error", MaxSizeMB: 1, MaxBackups: 1})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	log.Info("too quiet")
	log.Error("loud enough")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "too quiet") {
		t.Error("info line should be filtered at error level")
	}
	if !strings.Contains(string(data), "loud enough") {
		t.Error("error line should be written")
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
