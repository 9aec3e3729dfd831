package piper

import "context"

// player plays mono float samples and blocks until done or canceled
type player interface {
	Play(ctx context.Context, samples []float32, sampleRate float64) error
	Close() error
}
