//go:build !darwin || !cgo

package speech

// NewNativeSynthesizer reports ErrNativeUnavailable outside macOS cgo builds
func NewNativeSynthesizer() (Synthesizer, error) {
	return nil, ErrNativeUnavailable
}
