package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// isolate points HOME and the working directory at empty temp dirs so the
// search order only sees files created by the test.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	isolate(t)

	cfg, err := LoadPinball("")
	if err != nil {
		t.Fatalf("LoadPinball() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultPinballConfig()) {
		t.Errorf("embedded YAML differs from DefaultPinballConfig():\n%+v\n%+v", cfg, DefaultPinballConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestShippedTOMLMatchesDefault(t *testing.T) {
	cfg, err := decodeFile(filepath.Join("..", "..", "configs", "pinball.toml"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultPinballConfig()) {
		t.Errorf("configs/pinball.toml differs from the defaults:\n%+v", cfg)
	}
}

func TestLoadCustomPartialYAML(t *testing.T) {
	_, work := isolate(t)
	path := filepath.Join(work, "custom.yaml")
	writeFile(t, path, "rules:\n  goal: 700\n")

	cfg, err := LoadPinball(path)
	if err != nil {
		t.Fatalf("LoadPinball() failed: %v", err)
	}
	if cfg.Rules.Goal != 700 {
		t.Errorf("goal = %d, expected 700", cfg.Rules.Goal)
	}
	if cfg.Rules.StartMoney != 50 || len(cfg.Holes.Templates) != 6 {
		t.Error("unspecified values should keep their defaults")
	}
}

func TestLoadCustomTOML(t *testing.T) {
	_, work := isolate(t)
	path := filepath.Join(work, "table.toml")
	writeFile(t, path, `
[rules]
launch_cost = 15

[[holes.templates]]
type = "bonus"
radius = 20.0
amount = 50

[[holes.templates]]
type = "death"
radius = 18.0
`)

	cfg, err := LoadPinball(path)
	if err != nil {
		t.Fatalf("LoadPinball() failed: %v", err)
	}
	if cfg.Rules.LaunchCost != 15 {
		t.Errorf("launch_cost = %d, expected 15", cfg.Rules.LaunchCost)
	}
	if len(cfg.Holes.Templates) != 2 || cfg.Holes.Templates[1].Type != "death" {
		t.Errorf("templates not replaced: %+v", cfg.Holes.Templates)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	_, work := isolate(t)

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"missing", "nope.yaml", "", "failed to read"},
		{"bad yaml", "bad.yaml", "rules: [", "failed to parse"},
		{"bad toml", "bad.toml", "rules = ", "failed to parse"},
		{
			"two death holes",
			"deaths.yaml",
			"holes:\n  templates:\n    - {type: death, radius: 10}\n    - {type: death, radius: 12}\n",
			"exactly one death hole",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(work, tc.file)
			if tc.content != "" {
				writeFile(t, path, tc.content)
			}
			_, err := LoadPinball(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("LoadPinball() error = %v, expected it to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)
	userFile := filepath.Join(home, ".arcade", "configs", "pinball.yaml")
	localFile := filepath.Join(work, "configs", "pinball.yaml")

	writeFile(t, localFile, "rules:\n  goal: 800\n")
	cfg, _ := LoadPinball("")
	if cfg.Rules.Goal != 800 {
		t.Errorf("local configs dir should be used, goal=%d", cfg.Rules.Goal)
	}

	writeFile(t, userFile, "rules:\n  goal: 900\n")
	cfg, _ = LoadPinball("")
	if cfg.Rules.Goal != 900 {
		t.Errorf("user config should win over local, goal=%d", cfg.Rules.Goal)
	}

	// An invalid user file is skipped
	writeFile(t, userFile, "rules:\n  goal: -1\n")
	cfg, _ = LoadPinball("")
	if cfg.Rules.Goal != 800 {
		t.Errorf("invalid user config should fall through to local, goal=%d", cfg.Rules.Goal)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PinballConfig)
		ok     bool
	}{
		{"default", func(*PinballConfig) {}, true},
		{"zero goal", func(c *PinballConfig) { c.Rules.Goal = 0 }, false},
		{"negative cost", func(c *PinballConfig) { c.Rules.LaunchCost = -1 }, false},
		{"free launches", func(c *PinballConfig) { c.Rules.LaunchCost = 0 }, true},
		{"no substeps", func(c *PinballConfig) { c.Physics.Substeps = 0 }, false},
		{"unknown hole", func(c *PinballConfig) { c.Holes.Templates[0].Type = "jackpot" }, false},
		{"upper case hole", func(c *PinballConfig) { c.Holes.Templates[0].Type = "BONUS" }, true},
		{"no death", func(c *PinballConfig) { c.Holes.Templates = c.Holes.Templates[:5] }, false},
		{"inverted speeds", func(c *PinballConfig) { c.Launch.SpeedMax = 10 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultPinballConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, expected ok=%v", err, tc.ok)
			}
		})
	}
}

func TestApplyPinballPreset(t *testing.T) {
	tests := []struct {
		preset            DifficultyPreset
		money, time, goal int
	}{
		{DifficultyEasy, 80, 360, 500},
		{DifficultyNormal, 50, 300, 500},
		{DifficultyHard, 30, 240, 600},
		{DifficultyFixed, 50, 300, 500},
		{"", 50, 300, 500},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultPinballConfig()
			ApplyPinballPreset(&cfg, tc.preset)
			r := cfg.Rules
			if r.StartMoney != tc.money || r.TimeLimit != tc.time || r.Goal != tc.goal {
				t.Errorf("got money=%d time=%d goal=%d", r.StartMoney, r.TimeLimit, r.Goal)
			}
		})
	}
}

func TestParseDifficultyPreset(t *testing.T) {
	if ParseDifficultyPreset("HARD") != DifficultyHard {
		t.Error("preset names should be case-insensitive")
	}
	if ParseDifficultyPreset("insane") != "" {
		t.Error("unknown preset should map to empty")
	}
}
