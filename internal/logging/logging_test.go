package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    log.Level
		wantErr bool
	}{
		{"", log.InfoLevel, false},
		{"debug", log.DebugLevel, false},
		{"WARN", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"loud", log.InfoLevel, true},
	}

	for _, tc := range tests {
		got, err := ParseLevel(tc.name)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tc.name, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tc.name, got, tc.want)
		}
	}
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pinball.log")

	logger, closeFn, err := New(path, "info")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	logger.Debug("hidden detail")
	logger.Info("table ready", "seed", 42)
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "table ready") || !strings.Contains(out, "seed=42") {
		t.Errorf("log line missing:\n%s", out)
	}
	if !strings.Contains(out, Prefix) {
		t.Errorf("log line should carry the prefix:\n%s", out)
	}
	if strings.Contains(out, "hidden detail") {
		t.Error("debug line should be filtered at info level")
	}
}

func TestNewDiscard(t *testing.T) {
	logger, closeFn, err := New("", "debug")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	logger.Info("nowhere")
	if err := closeFn(); err != nil {
		t.Errorf("close of discard logger failed: %v", err)
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, _, err := New("", "verbose"); err == nil {
		t.Error("unknown level should be rejected")
	}
}
