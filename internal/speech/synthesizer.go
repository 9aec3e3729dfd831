// ============================================================================
// Spell Gym - Audio spelling drill
// ============================================================================
//
// Package:     speech
// Description: In-process synthesizer contract (fast path)
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package speech

import "errors"

// ErrNativeUnavailable is returned when the platform has no in-process synthesizer
var ErrNativeUnavailable = errors.New("native speech synthesizer not available")

// Synthesizer is an in-process speech engine. Speaking is asynchronous: the
// engine starts speech and polls IsSpeaking until it finishes.
type Synthesizer interface {
	// Voices returns the voice catalog of the platform
	Voices() []string

	// UseVoice binds a catalog voice to the synthesizer
	UseVoice(id string) error

	// StartSpeaking begins speaking text and returns immediately
	StartSpeaking(text string) error

	// IsSpeaking reports whether audio is still playing
	IsSpeaking() bool

	// StopSpeaking interrupts the current utterance
	StopSpeaking()

	// Close releases resources
	Close() error
}

// Acquirer creates the fast-path synthesizer. Any error leaves the engine on
// the fallback path.
type Acquirer func() (Synthesizer, error)
