//go:build portaudio

package piper

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// framesPerBuffer is the output buffer size handed to PortAudio
const framesPerBuffer = 1024

// portaudioPlayer writes samples to the default output device
type portaudioPlayer struct{}

func newPlayer() (player, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	return portaudioPlayer{}, nil
}

// Play blocks until all samples are written or ctx is canceled
func (portaudioPlayer) Play(ctx context.Context, samples []float32, sampleRate float64) error {
	buffer := make([]float32, framesPerBuffer)

	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, framesPerBuffer, &buffer)
	if err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start output stream: %w", err)
	}
	defer stream.Stop()

	for position := 0; position < len(samples); position += framesPerBuffer {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := copy(buffer, samples[position:])
		clear(buffer[n:])

		if err := stream.Write(); err != nil {
			return fmt.Errorf("failed to write to stream: %w", err)
		}
	}

	return nil
}

func (portaudioPlayer) Close() error {
	return portaudio.Terminate()
}
