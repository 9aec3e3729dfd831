package cmd

import (
	"errors"
	"fmt"

	"github.com/msto63/spellgym/internal/speech"
	"github.com/msto63/spellgym/internal/speech/piper"
	"github.com/msto63/spellgym/pkg/core/config"
	"github.com/msto63/spellgym/pkg/core/logging"
)

// newEngine builds the speech engine for the configured backend
func newEngine(cfg *config.Config, logger *logging.Logger) *speech.Engine {
	return speech.New(speech.Options{
		Acquire:       acquirer(cfg, logger),
		VoiceOverride: cfg.Speech.VoiceID,
		SayVoice:      cfg.Speech.SayVoice,
		Say:           speech.NewSay(cfg.Speech.SayRate),
		PollInterval:  cfg.Speech.PollInterval.Duration,
		FastPathHint:  fastPathHint(cfg.Speech.Backend),
	}, logger)
}

// fastPathHint tells the user how to get the configured fast backend
func fastPathHint(backend string) string {
	const (
		nativeHint = "build on macOS with cgo enabled"
		piperHint  = "install piper with voices in [piper] voices_dir and build with -tags portaudio"
	)
	switch backend {
	case config.BackendNative:
		return nativeHint
	case config.BackendPiper:
		return piperHint
	case config.BackendSay:
		return ""
	default:
		return nativeHint + ", or " + piperHint
	}
}

// acquirer returns the fast-path constructor for the backend, nil for say
func acquirer(cfg *config.Config, logger *logging.Logger) speech.Acquirer {
	acquirePiper := func() (speech.Synthesizer, error) {
		s, err := piper.New(piper.Config{
			BinaryPath: cfg.Piper.Binary,
			VoicesDir:  cfg.Piper.VoicesDir,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	switch cfg.Speech.Backend {
	case config.BackendSay:
		return nil
	case config.BackendNative:
		return speech.NewNativeSynthesizer
	case config.BackendPiper:
		return acquirePiper
	default:
		return func() (speech.Synthesizer, error) {
			s, err := speech.NewNativeSynthesizer()
			if err == nil {
				return s, nil
			}
			logger.Debug("Native speech unavailable, trying piper", "error", err)

			s, perr := acquirePiper()
			if perr != nil {
				return nil, fmt.Errorf("no fast speech backend: %w", errors.Join(err, perr))
			}
			return s, nil
		}
	}
}
