// Package speech provides the blocking "speak and wait" primitive of the drill.
//
// An Engine prefers an in-process Synthesizer (NSSpeechSynthesizer on macOS,
// or Piper with PortAudio playback) and polls it until the utterance has
// finished. Without a synthesizer it runs the say utility as a subprocess,
// retrying once with the utility's default voice if the configured voice is
// rejected. Every Speak call reports an Outcome so callers can tell a
// degraded or fatal result from a normal one.
package speech
