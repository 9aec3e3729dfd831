package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"milliseconds", "10ms", 10 * time.Millisecond, false},
		{"seconds", "2s", 2 * time.Second, false},
		{"complex", "1m30s", 90 * time.Second, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{25 * time.Millisecond}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "25ms" {
		t.Errorf("MarshalText() = %v, want 25ms", string(result))
	}
}

func TestConfig_applyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.General.LogLevel != "info" {
		t.Errorf("General.LogLevel = %v, want info", cfg.General.LogLevel)
	}
	if cfg.General.LogFormat != "text" {
		t.Errorf("General.LogFormat = %v, want text", cfg.General.LogFormat)
	}
	if cfg.Speech.Backend != BackendAuto {
		t.Errorf("Speech.Backend = %v, want auto", cfg.Speech.Backend)
	}
	if cfg.Speech.SayVoice != "Samantha" {
		t.Errorf("Speech.SayVoice = %v, want Samantha", cfg.Speech.SayVoice)
	}
	if cfg.Speech.PollInterval.Duration != 10*time.Millisecond {
		t.Errorf("Speech.PollInterval = %v, want 10ms", cfg.Speech.PollInterval.Duration)
	}
	if cfg.Drill.Rounds != 10 {
		t.Errorf("Drill.Rounds = %v, want 10", cfg.Drill.Rounds)
	}
	if cfg.Drill.ErasePolicy != ErasePolicyReset {
		t.Errorf("Drill.ErasePolicy = %v, want reset", cfg.Drill.ErasePolicy)
	}
	if cfg.Drill.StartOverCue != "start over" {
		t.Errorf("Drill.StartOverCue = %v, want start over", cfg.Drill.StartOverCue)
	}
	if cfg.Drill.BackspaceCue != "backspace" {
		t.Errorf("Drill.BackspaceCue = %v, want backspace", cfg.Drill.BackspaceCue)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("Load() expected error for non-existent file")
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Setenv(EnvVoiceID, "")
	t.Setenv(EnvSayVoice, "")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
[general]
log_level = "debug"

[speech]
backend = "say"
say_voice = "Daniel"
say_rate = 180
poll_interval = "20ms"

[drill]
rounds = 5
lists_dir = "$SPELL_GYM_TEST_DIR/lists"
erase_policy = "erase"
`
	t.Setenv("SPELL_GYM_TEST_DIR", "/srv/spellgym")

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogLevel != "debug" {
		t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.Speech.Backend != BackendSay {
		t.Errorf("Speech.Backend = %v, want say", cfg.Speech.Backend)
	}
	if cfg.Speech.SayVoice != "Daniel" {
		t.Errorf("Speech.SayVoice = %v, want Daniel", cfg.Speech.SayVoice)
	}
	if cfg.Speech.SayRate != 180 {
		t.Errorf("Speech.SayRate = %v, want 180", cfg.Speech.SayRate)
	}
	if cfg.Speech.PollInterval.Duration != 20*time.Millisecond {
		t.Errorf("Speech.PollInterval = %v, want 20ms", cfg.Speech.PollInterval.Duration)
	}
	if cfg.Drill.Rounds != 5 {
		t.Errorf("Drill.Rounds = %v, want 5", cfg.Drill.Rounds)
	}
	if cfg.Drill.ListsDir != "/srv/spellgym/lists" {
		t.Errorf("Drill.ListsDir = %v, want /srv/spellgym/lists", cfg.Drill.ListsDir)
	}
	if cfg.Drill.ErasePolicy != ErasePolicyErase {
		t.Errorf("Drill.ErasePolicy = %v, want erase", cfg.Drill.ErasePolicy)
	}

	// Defaults still applied for missing values
	if cfg.Piper.Binary != "piper" {
		t.Errorf("Piper.Binary = %v, want piper (default)", cfg.Piper.Binary)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"backend", "[speech]\nbackend = \"festival\"\n"},
		{"erase policy", "[drill]\nerase_policy = \"undo\"\n"},
		{"rounds", "[drill]\nrounds = -3\n"},
		{"say rate", "[speech]\nsay_rate = -1\n"},
		{"syntax", "[drill\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load() expected error for %s", tt.name)
			}
		})
	}
}

func TestConfig_applyEnv(t *testing.T) {
	t.Setenv(EnvVoiceID, " com.apple.voice.enhanced.en-US.Ava ")
	t.Setenv(EnvSayVoice, "Karen")

	cfg := Default()

	if cfg.Speech.VoiceID != "com.apple.voice.enhanced.en-US.Ava" {
		t.Errorf("Speech.VoiceID = %q, want trimmed override", cfg.Speech.VoiceID)
	}
	if cfg.Speech.SayVoice != "Karen" {
		t.Errorf("Speech.SayVoice = %v, want Karen", cfg.Speech.SayVoice)
	}
}

func TestLoadFromEnv_NoConfigFound(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("HOME", t.TempDir())

	originalWd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(originalWd)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v, want defaults", err)
	}
	if cfg.Drill.Rounds != 10 {
		t.Errorf("Drill.Rounds = %v, want 10", cfg.Drill.Rounds)
	}
}

func TestLoadFromEnv_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("[drill]\nrounds = 3\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	t.Setenv(EnvConfig, path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Drill.Rounds != 3 {
		t.Errorf("Drill.Rounds = %v, want 3", cfg.Drill.Rounds)
	}
}

func TestParseRounds(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"10", 10, false},
		{" 3 ", 3, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"ten", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRounds(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRounds(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidRounds) {
				t.Errorf("ParseRounds(%q) error = %v, want ErrInvalidRounds", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRounds(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
