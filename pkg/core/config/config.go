package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment variables consulted on top of the config file
const (
	EnvConfig   = "SPELL_GYM_CONFIG"
	EnvVoiceID  = "SPELL_GYM_VOICE_ID"
	EnvSayVoice = "SPELL_GYM_SAY_VOICE"
)

// Speech backends
const (
	BackendAuto   = "auto"
	BackendNative = "native"
	BackendPiper  = "piper"
	BackendSay    = "say"
)

// Erase policies for the backspace key
const (
	ErasePolicyReset = "reset"
	ErasePolicyErase = "erase"
)

// ErrInvalidRounds is returned for a round count that is not a positive integer
var ErrInvalidRounds = errors.New("invalid round count")

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Speech  SpeechConfig  `toml:"speech"`
	Piper   PiperConfig   `toml:"piper"`
	Drill   DrillConfig   `toml:"drill"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// SpeechConfig holds speech engine settings
type SpeechConfig struct {
	Backend string `toml:"backend"`

	// VoiceID selects a fast-path voice by catalog identifier
	VoiceID string `toml:"voice_id"`

	// SayVoice is passed to the say utility as-is
	SayVoice string `toml:"say_voice"`

	// SayRate in words per minute, 0 keeps the utility default
	SayRate int `toml:"say_rate"`

	PollInterval Duration `toml:"poll_interval"`
}

// PiperConfig holds Piper backend settings
type PiperConfig struct {
	Binary    string `toml:"binary"`
	VoicesDir string `toml:"voices_dir"`
}

// DrillConfig holds drill settings
type DrillConfig struct {
	Rounds       int    `toml:"rounds"`
	ListsDir     string `toml:"lists_dir"`
	ErasePolicy  string `toml:"erase_policy"`
	StartOverCue string `toml:"start_over_cue"`
	BackspaceCue string `toml:"backspace_cue"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with all defaults and environment overrides applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads the configuration named by SPELL_GYM_CONFIG or found in a
// default location. Without any config file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

// DefaultPaths lists the locations searched for a config file
func DefaultPaths() []string {
	paths := []string{"./spellgym.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "spellgym", "config.toml"))
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Speech
	if c.Speech.Backend == "" {
		c.Speech.Backend = BackendAuto
	}
	if c.Speech.SayVoice == "" {
		c.Speech.SayVoice = "Samantha"
	}
	if c.Speech.PollInterval.Duration == 0 {
		c.Speech.PollInterval.Duration = 10 * time.Millisecond
	}

	// Piper
	if c.Piper.Binary == "" {
		c.Piper.Binary = "piper"
	}
	if c.Piper.VoicesDir == "" {
		c.Piper.VoicesDir = "./voices"
	}

	// Drill
	if c.Drill.Rounds == 0 {
		c.Drill.Rounds = 10
	}
	if c.Drill.ListsDir == "" {
		c.Drill.ListsDir = "./lists"
	}
	if c.Drill.ErasePolicy == "" {
		c.Drill.ErasePolicy = ErasePolicyReset
	}
	if c.Drill.StartOverCue == "" {
		c.Drill.StartOverCue = "start over"
	}
	if c.Drill.BackspaceCue == "" {
		c.Drill.BackspaceCue = "backspace"
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Piper.Binary = os.ExpandEnv(c.Piper.Binary)
	c.Piper.VoicesDir = os.ExpandEnv(c.Piper.VoicesDir)
	c.Drill.ListsDir = os.ExpandEnv(c.Drill.ListsDir)
}

// applyEnv applies the voice overrides from the environment
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvVoiceID)); v != "" {
		c.Speech.VoiceID = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSayVoice)); v != "" {
		c.Speech.SayVoice = v
	}
}

// Validate checks enumerated values and ranges
func (c *Config) Validate() error {
	switch c.Speech.Backend {
	case BackendAuto, BackendNative, BackendPiper, BackendSay:
	default:
		return fmt.Errorf("unknown speech backend %q", c.Speech.Backend)
	}

	switch c.Drill.ErasePolicy {
	case ErasePolicyReset, ErasePolicyErase:
	default:
		return fmt.Errorf("unknown erase policy %q", c.Drill.ErasePolicy)
	}

	if c.Drill.Rounds <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRounds, c.Drill.Rounds)
	}
	if c.Speech.SayRate < 0 {
		return fmt.Errorf("say_rate must not be negative: %d", c.Speech.SayRate)
	}
	if c.Speech.PollInterval.Duration < 0 {
		return fmt.Errorf("poll_interval must not be negative: %s", c.Speech.PollInterval)
	}
	return nil
}

// ParseRounds parses a round count given on the command line
func ParseRounds(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("%w: first argument must be an integer word count", ErrInvalidRounds)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: word count must be positive", ErrInvalidRounds)
	}
	return n, nil
}
