// ============================================================================
// Spell Gym - Audio spelling drill
// ============================================================================
//
// Package:     capture
// Description: Hidden keystroke capture with spoken echo
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

// Package capture reads unechoed keystrokes from a raw terminal, speaks each
// character as it is typed and returns the typed text with a retry count.
package capture

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/msto63/spellgym/internal/speech"
)

// ErrInterrupted is returned when the user presses Ctrl-C during capture
var ErrInterrupted = errors.New("interrupted")

const (
	keyInterrupt = 0x03
	keyBackspace = '\b'
	keyDelete    = 0x7f
)

// Default audio cues
const (
	DefaultStartOverCue = "start over"
	DefaultBackspaceCue = "backspace"
)

// Speaker speaks text and blocks until it has been spoken
type Speaker interface {
	Speak(ctx context.Context, text string) (speech.Outcome, error)
}

// Options configures a Capturer
type Options struct {
	In       io.Reader
	Out      io.Writer
	Terminal Terminal
	Speaker  Speaker
	Policy   Policy

	StartOverCue string
	BackspaceCue string
}

// Result is the outcome of one capture call
type Result struct {
	Text    string
	Retries int
}

// Capturer runs capture sessions against one input stream. Only one session
// may run at a time.
type Capturer struct {
	in       *bufio.Reader
	out      io.Writer
	terminal Terminal
	speaker  Speaker
	policy   Policy

	startOverCue string
	backspaceCue string

	last State
}

// New creates a Capturer
func New(opts Options) *Capturer {
	in, ok := opts.In.(*bufio.Reader)
	if !ok {
		in = bufio.NewReader(opts.In)
	}

	c := &Capturer{
		in:           in,
		out:          opts.Out,
		terminal:     opts.Terminal,
		speaker:      opts.Speaker,
		policy:       opts.Policy,
		startOverCue: opts.StartOverCue,
		backspaceCue: opts.BackspaceCue,
		last:         StateReading,
	}
	if c.out == nil {
		c.out = io.Discard
	}
	if c.startOverCue == "" {
		c.startOverCue = DefaultStartOverCue
	}
	if c.backspaceCue == "" {
		c.backspaceCue = DefaultBackspaceCue
	}
	return c
}

// Policy returns the configured erase policy
func (c *Capturer) Policy() Policy {
	return c.policy
}

// LastState returns the state the most recent capture ended in
func (c *Capturer) LastState() State {
	return c.last
}

// Capture prints prompt and reads keystrokes until Enter or Ctrl-C. Each
// character is spoken before the next one is read. Under PolicyFullReset a
// backspace clears the buffer, counts a retry, speaks the start-over cue and
// then repeat, if set. The terminal mode is restored on every return path;
// a failed restore is reported unless another error is already returned.
func (c *Capturer) Capture(ctx context.Context, prompt, repeat string) (res Result, err error) {
	c.last = StateReading

	if c.terminal != nil {
		restore, rawErr := c.terminal.MakeRaw()
		if rawErr != nil {
			return Result{}, rawErr
		}
		defer func() {
			if restoreErr := restore(); restoreErr != nil && err == nil {
				err = fmt.Errorf("failed to restore terminal: %w", restoreErr)
			}
		}()
	}

	fmt.Fprint(c.out, prompt)

	var buf []rune
	retries := 0

	for {
		if err := ctx.Err(); err != nil {
			c.last = StateInterrupted
			return Result{}, err
		}

		r, _, err := c.in.ReadRune()
		if err != nil {
			c.last = StateInterrupted
			if errors.Is(err, io.EOF) {
				return Result{}, fmt.Errorf("input closed: %w", io.ErrUnexpectedEOF)
			}
			return Result{}, fmt.Errorf("failed to read input: %w", err)
		}

		switch r {
		case '\r', '\n':
			fmt.Fprint(c.out, "\r\n")
			c.last = StateSubmitted
			return Result{Text: string(buf), Retries: retries}, nil

		case keyInterrupt:
			fmt.Fprint(c.out, "\r\n")
			c.last = StateInterrupted
			return Result{}, ErrInterrupted

		case keyBackspace, keyDelete:
			if c.policy == PolicySingleErase {
				if len(buf) > 0 {
					buf = buf[:len(buf)-1]
				}
				if err := c.speak(ctx, c.backspaceCue); err != nil {
					return Result{}, err
				}
				continue
			}

			c.last = StateStartOver
			buf = buf[:0]
			retries++
			if err := c.speak(ctx, c.startOverCue); err != nil {
				return Result{}, err
			}
			if repeat != "" {
				if err := c.speak(ctx, repeat); err != nil {
					return Result{}, err
				}
			}
			c.last = StateReading

		default:
			buf = append(buf, r)
			if err := c.speak(ctx, string(r)); err != nil {
				return Result{}, err
			}
		}
	}
}

func (c *Capturer) speak(ctx context.Context, text string) error {
	if c.speaker == nil {
		return nil
	}
	if _, err := c.speaker.Speak(ctx, text); err != nil {
		c.last = StateInterrupted
		return err
	}
	return nil
}
