// ============================================================================
// Spell Gym - Audio spelling drill
// ============================================================================
//
// Package:     speech
// Description: Fallback speech through the 'say' command
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var (
	// ErrSayNotFound is returned when the say binary cannot be located
	ErrSayNotFound = errors.New("'say' command is not available")

	// ErrSayFailed is returned when say fails with its default voice
	ErrSayFailed = errors.New("'say' failed")
)

// commandRunner runs a command to completion, feeding stdin when non-empty
type commandRunner func(ctx context.Context, path string, args []string, stdin string) error

// Say speaks text by running the say utility as a blocking subprocess
type Say struct {
	binary string
	rate   int

	lookPath func(string) (string, error)
	run      commandRunner

	path     string
	resolved bool
	lookErr  error
}

// NewSay creates a say runner. rate is in words per minute; 0 keeps the
// utility default.
func NewSay(rate int) *Say {
	if rate < 0 {
		rate = 0
	}
	return &Say{
		binary:   "say",
		rate:     rate,
		lookPath: exec.LookPath,
		run:      runCommand,
	}
}

// Available locates the binary once and reports ErrSayNotFound if missing
func (s *Say) Available() error {
	if !s.resolved {
		s.resolved = true
		path, err := s.lookPath(s.binary)
		if err != nil {
			s.lookErr = fmt.Errorf("%w: %v", ErrSayNotFound, err)
		}
		s.path = path
	}
	return s.lookErr
}

// Speak speaks text with voice, or with the utility's default voice when
// voice is empty. It blocks until speech has finished.
func (s *Say) Speak(ctx context.Context, voice, text string) error {
	if err := s.Available(); err != nil {
		return err
	}
	args, stdin := s.args(voice, text)
	return s.run(ctx, s.path, args, stdin)
}

// args builds the command line. Text starting with a dash would be parsed as
// an option, so it is passed on stdin instead.
func (s *Say) args(voice, text string) ([]string, string) {
	var args []string
	if voice != "" {
		args = append(args, "-v", voice)
	}
	if s.rate > 0 {
		args = append(args, "-r", strconv.Itoa(s.rate))
	}
	if strings.HasPrefix(text, "-") {
		return args, text
	}
	return append(args, text), ""
}

func runCommand(ctx context.Context, path string, args []string, stdin string) error {
	cmd := exec.CommandContext(ctx, path, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
