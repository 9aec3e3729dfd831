// ============================================================================
// Spell Gym - Audio spelling drill
// ============================================================================
//
// Package:     piper
// Description: Piper TTS synthesizer with in-process playback
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package piper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// defaultSampleRate is used when the model config has none
const defaultSampleRate = 22050

// ErrNoVoices is returned when the voices directory holds no models
var ErrNoVoices = errors.New("no piper voices found")

// Config holds Piper configuration
type Config struct {
	// BinaryPath is the piper executable, a bare name is looked up in PATH
	BinaryPath string

	// VoicesDir holds <voice>.onnx models with their <voice>.onnx.json configs
	VoicesDir string
}

// Synthesizer speaks by running Piper and playing the PCM it produces
type Synthesizer struct {
	binaryPath string
	voicesDir  string
	espeakData string

	voice      string
	modelPath  string
	configPath string
	sampleRate int

	player     player
	synthesize func(ctx context.Context, text string) ([]byte, error)

	mu       sync.Mutex
	cancel   context.CancelFunc
	speaking atomic.Bool
	lastErr  error
}

// New creates a Piper synthesizer. It fails when the binary, the voices
// directory or the audio output is unavailable.
func New(cfg Config) (*Synthesizer, error) {
	if cfg.BinaryPath == "" {
		return nil, fmt.Errorf("piper binary path is required")
	}
	binary, err := exec.LookPath(cfg.BinaryPath)
	if err != nil {
		return nil, fmt.Errorf("piper binary not found: %s", cfg.BinaryPath)
	}

	if info, err := os.Stat(cfg.VoicesDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("piper voices directory not found: %s", cfg.VoicesDir)
	}

	p, err := newPlayer()
	if err != nil {
		return nil, err
	}

	s := newSynthesizer(binary, cfg.VoicesDir, p)

	// espeak-ng-data ships next to the binary in release archives
	espeakData := filepath.Join(filepath.Dir(binary), "espeak-ng-data")
	if _, err := os.Stat(espeakData); err == nil {
		s.espeakData = espeakData
	}
	return s, nil
}

func newSynthesizer(binary, voicesDir string, p player) *Synthesizer {
	s := &Synthesizer{
		binaryPath: binary,
		voicesDir:  voicesDir,
		player:     p,
		sampleRate: defaultSampleRate,
	}
	s.synthesize = s.runPiper
	return s
}

// Voices returns the model names in the voices directory, sorted
func (s *Synthesizer) Voices() []string {
	voices, err := AvailableVoices(s.voicesDir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(voices))
	for _, v := range voices {
		names = append(names, v.Name)
	}
	return names
}

// UseVoice binds the model named id
func (s *Synthesizer) UseVoice(id string) error {
	modelPath := filepath.Join(s.voicesDir, id+".onnx")
	if _, err := os.Stat(modelPath); err != nil {
		return fmt.Errorf("model file not found: %s", modelPath)
	}

	configPath := modelPath + ".json"
	rate, err := readSampleRate(configPath)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.voice = id
	s.modelPath = modelPath
	s.configPath = configPath
	s.sampleRate = rate
	return nil
}

// StartSpeaking synthesizes and plays text in the background
func (s *Synthesizer) StartSpeaking(text string) error {
	if err := s.ensureVoice(); err != nil {
		return err
	}

	s.StopSpeaking()

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancel = cancel
	s.lastErr = nil
	rate := s.sampleRate
	s.mu.Unlock()

	s.speaking.Store(true)
	go func() {
		defer s.speaking.Store(false)
		defer cancel()

		pcm, err := s.synthesize(ctx, text)
		if err == nil {
			err = s.player.Play(ctx, pcmToFloat32(pcm), float64(rate))
		}
		if err != nil && ctx.Err() == nil {
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
		}
	}()
	return nil
}

// ensureVoice binds the first model when no voice was selected
func (s *Synthesizer) ensureVoice() error {
	s.mu.Lock()
	bound := s.modelPath != ""
	s.mu.Unlock()
	if bound {
		return nil
	}

	voices := s.Voices()
	if len(voices) == 0 {
		return fmt.Errorf("%w in %s", ErrNoVoices, s.voicesDir)
	}
	return s.UseVoice(voices[0])
}

// IsSpeaking reports whether synthesis or playback is still running
func (s *Synthesizer) IsSpeaking() bool {
	return s.speaking.Load()
}

// StopSpeaking cancels the running utterance
func (s *Synthesizer) StopSpeaking() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Err returns the error of the last utterance, if any
func (s *Synthesizer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Close stops speech and releases the audio output
func (s *Synthesizer) Close() error {
	s.StopSpeaking()
	return s.player.Close()
}

// runPiper converts text to raw 16-bit PCM
func (s *Synthesizer) runPiper(ctx context.Context, text string) ([]byte, error) {
	s.mu.Lock()
	args := []string{
		"--model", s.modelPath,
		"--config", s.configPath,
		"--output_raw",
	}
	s.mu.Unlock()

	if s.espeakData != "" {
		args = append(args, "--espeak_data", s.espeakData)
	}

	cmd := exec.CommandContext(ctx, s.binaryPath, args...)
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// Release archives load their shared libraries from the binary directory
	cmd.Dir = filepath.Dir(s.binaryPath)
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("DYLD_LIBRARY_PATH=%s", filepath.Dir(s.binaryPath)),
		fmt.Sprintf("LD_LIBRARY_PATH=%s", filepath.Dir(s.binaryPath)),
	)

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("piper failed: %w, stderr: %s", err, stderr.String())
	}

	return stdout.Bytes(), nil
}

// VoiceInfo describes a Piper model
type VoiceInfo struct {
	Name      string
	ModelPath string
}

// AvailableVoices lists the *.onnx models in voicesDir, sorted by name
func AvailableVoices(voicesDir string) ([]VoiceInfo, error) {
	entries, err := os.ReadDir(voicesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read voices directory: %w", err)
	}

	var voices []VoiceInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".onnx") {
			continue
		}
		voices = append(voices, VoiceInfo{
			Name:      strings.TrimSuffix(entry.Name(), ".onnx"),
			ModelPath: filepath.Join(voicesDir, entry.Name()),
		})
	}

	sort.Slice(voices, func(i, j int) bool { return voices[i].Name < voices[j].Name })
	return voices, nil
}

// modelConfig is the part of <voice>.onnx.json we need
type modelConfig struct {
	Audio struct {
		SampleRate int `json:"sample_rate"`
	} `json:"audio"`
}

// readSampleRate reads the output sample rate from a model config
func readSampleRate(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("model config not found: %s", path)
	}

	var cfg modelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return 0, fmt.Errorf("failed to parse model config %s: %w", path, err)
	}
	if cfg.Audio.SampleRate <= 0 {
		return defaultSampleRate, nil
	}
	return cfg.Audio.SampleRate, nil
}

// pcmToFloat32 converts little-endian 16-bit PCM to float samples
func pcmToFloat32(data []byte) []float32 {
	samples := make([]float32, len(data)/2)
	for i := range samples {
		v := int16(uint16(data[2*i]) | uint16(data[2*i+1])<<8)
		samples[i] = float32(v) / 32768.0
	}
	return samples
}
