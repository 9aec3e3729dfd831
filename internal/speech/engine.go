// ============================================================================
// Spell Gym - Audio spelling drill
// ============================================================================
//
// Package:     speech
// Description: Speech engine with fast path and 'say' fallback
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package speech

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/msto63/spellgym/internal/voice"
	"github.com/msto63/spellgym/pkg/core/logging"
)

// DefaultPollInterval is how often the fast path checks whether speech finished
const DefaultPollInterval = 10 * time.Millisecond

// maxFastPathFailures consecutive runtime failures disable the fast path
const maxFastPathFailures = 3

// Options configures an Engine
type Options struct {
	// Acquire creates the fast-path synthesizer; nil disables the fast path
	Acquire Acquirer

	// VoiceOverride selects a fast-path voice by catalog identifier
	VoiceOverride string

	// SayVoice is passed to say; empty uses the utility default
	SayVoice string

	// Say runs the fallback utility; nil uses NewSay(0)
	Say *Say

	// FastPathHint is added to the fallback warning when the fast path
	// could not be acquired, e.g. how to install it
	FastPathHint string

	PollInterval time.Duration
}

// Engine speaks text and blocks until speech has finished. The voice is chosen
// once at construction. An Engine is not safe for concurrent use.
type Engine struct {
	logger *logging.Logger

	state    State
	synth    Synthesizer
	catalog  []string
	voice    string
	hasVoice bool

	// fastPathConfigured is false when no fast path was requested
	fastPathConfigured bool
	fastPathErr        error
	fastPathFailures   int
	hint               string

	say              *Say
	sayVoice         string
	sayVoiceRejected bool
	warnedFallback   bool

	poll time.Duration
}

// New creates an engine. Construction never fails: a missing or broken fast
// path leaves the engine on the say fallback.
func New(opts Options, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.Discard()
	}

	e := &Engine{
		logger:   logger,
		state:    StateFastPathUnavailable,
		say:      opts.Say,
		sayVoice: opts.SayVoice,
		poll:     opts.PollInterval,
		hint:     opts.FastPathHint,

		fastPathConfigured: opts.Acquire != nil,
	}
	if e.say == nil {
		e.say = NewSay(0)
	}
	if e.poll <= 0 {
		e.poll = DefaultPollInterval
	}

	if opts.Acquire != nil {
		e.initFastPath(opts.Acquire, opts.VoiceOverride)
	}
	return e
}

// initFastPath acquires the synthesizer and binds the selected voice
func (e *Engine) initFastPath(acquire Acquirer, override string) {
	synth, err := acquire()
	if err != nil || synth == nil {
		if err == nil {
			err = ErrNativeUnavailable
		}
		e.fastPathErr = err
		e.logger.Debug("fast speech path unavailable", "error", err)
		return
	}

	e.synth = synth
	e.state = StateFastPathReady
	e.catalog = synth.Voices()

	id, ok := voice.Select(e.catalog, override)
	if !ok {
		e.logger.Warn("No English voice found; using system default voice")
		return
	}
	if err := synth.UseVoice(id); err != nil {
		e.logger.Warn("Could not use selected voice; using system default voice", "voice", id, "error", err)
		return
	}

	e.voice, e.hasVoice = id, true
	e.logger.Info("Using speech engine voice", "voice", id)
}

// State returns whether the fast path is in use
func (e *Engine) State() State {
	return e.state
}

// Voice returns the bound fast-path voice; ok is false for the platform default
func (e *Engine) Voice() (id string, ok bool) {
	return e.voice, e.hasVoice
}

// Catalog returns the voices reported by the fast path
func (e *Engine) Catalog() []string {
	return append([]string(nil), e.catalog...)
}

// Speak speaks text and returns once audio has finished
func (e *Engine) Speak(ctx context.Context, text string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return OutcomeCanceled, err
	}

	if e.state == StateFastPathReady {
		err := e.synth.StartSpeaking(text)
		if err == nil {
			outcome, waitErr := e.wait(ctx)
			if waitErr != nil {
				return outcome, waitErr
			}
			if err = playbackErr(e.synth); err == nil {
				e.fastPathFailures = 0
				return outcome, nil
			}
		}
		e.fastPathFailed(err)
	}

	return e.fallback(ctx, text)
}

// fastPathFailed records a runtime failure. After maxFastPathFailures in a
// row the fast path is dropped and later calls go straight to say.
func (e *Engine) fastPathFailed(err error) {
	e.fastPathErr = err
	e.fastPathFailures++
	e.logger.Debug("fast speech path failed", "error", err, "consecutive", e.fastPathFailures)

	if e.fastPathFailures >= maxFastPathFailures {
		e.state = StateFastPathUnavailable
		e.logger.Debug("fast speech path disabled", "failures", e.fastPathFailures)
	}
}

// wait polls the synthesizer until it stops speaking
func (e *Engine) wait(ctx context.Context) (Outcome, error) {
	ticker := time.NewTicker(e.poll)
	defer ticker.Stop()

	for e.synth.IsSpeaking() {
		select {
		case <-ctx.Done():
			e.synth.StopSpeaking()
			return OutcomeCanceled, ctx.Err()
		case <-ticker.C:
		}
	}
	return OutcomeSpoken, nil
}

// playbackErr returns the error of the last utterance for synthesizers that
// report failures after StartSpeaking has returned
func playbackErr(s Synthesizer) error {
	if r, ok := s.(interface{ Err() error }); ok {
		return r.Err()
	}
	return nil
}

// fallback speaks through say, retrying once with the default voice if the
// configured voice is rejected. A rejected voice is not tried again.
func (e *Engine) fallback(ctx context.Context, text string) (Outcome, error) {
	e.warnFallback()

	if err := e.say.Available(); err != nil {
		return OutcomeFatal, err
	}

	outcome := OutcomeDegraded
	if e.sayVoice != "" && !e.sayVoiceRejected {
		err := e.say.Speak(ctx, e.sayVoice, text)
		if err == nil {
			return OutcomeDegraded, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return OutcomeCanceled, ctxErr
		}

		e.sayVoiceRejected = true
		outcome = OutcomeVoiceRejected
		e.logger.Warn("Voice unavailable; falling back to system default", "voice", e.sayVoice, "error", err)
	}

	if err := e.say.Speak(ctx, "", text); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return OutcomeCanceled, ctxErr
		}
		if errors.Is(err, ErrSayNotFound) {
			return OutcomeFatal, err
		}
		return OutcomeFatal, fmt.Errorf("%w: %v", ErrSayFailed, err)
	}
	return outcome, nil
}

// warnFallback reports the first use of say, worded after its cause
func (e *Engine) warnFallback() {
	if e.warnedFallback {
		return
	}
	e.warnedFallback = true

	switch {
	case !e.fastPathConfigured:
		e.logger.Info("Speaking through 'say'")
	case e.synth != nil:
		e.logger.Warn("Fast speech failed; using slower 'say'", "error", e.fastPathErr)
	default:
		args := []any{"error", e.fastPathErr}
		if e.hint != "" {
			args = append(args, "hint", e.hint)
		}
		e.logger.Warn("Fast speech not available; using slower 'say'", args...)
	}
}

// Close releases the fast-path synthesizer
func (e *Engine) Close() error {
	if e.synth == nil {
		return nil
	}
	return e.synth.Close()
}
