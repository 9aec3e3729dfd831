//go:build !portaudio

package piper

import "errors"

// ErrNoAudioOutput is returned by builds without the portaudio tag
var ErrNoAudioOutput = errors.New("piper playback requires a build with -tags portaudio")

func newPlayer() (player, error) {
	return nil, ErrNoAudioOutput
}
