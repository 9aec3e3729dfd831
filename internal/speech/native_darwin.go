//go:build darwin && cgo

package speech

/*
#cgo CFLAGS: -x objective-c -Wno-deprecated-declarations
#cgo LDFLAGS: -framework AppKit -framework Foundation
#include <stdlib.h>
#include <string.h>
#import <AppKit/AppKit.h>

static void *sg_synth_new(void) {
	@autoreleasepool {
		NSSpeechSynthesizer *s = [[NSSpeechSynthesizer alloc] init];
		return (void *)s;
	}
}

static char *sg_available_voices(void) {
	@autoreleasepool {
		NSArray *voices = [NSSpeechSynthesizer availableVoices];
		NSString *joined = [voices componentsJoinedByString:@"\n"];
		const char *utf8 = [joined UTF8String];
		return utf8 == NULL ? NULL : strdup(utf8);
	}
}

static int sg_synth_set_voice(void *s, const char *voice) {
	@autoreleasepool {
		NSString *v = [NSString stringWithUTF8String:voice];
		return [(NSSpeechSynthesizer *)s setVoice:v] ? 1 : 0;
	}
}

static int sg_synth_start(void *s, const char *text) {
	@autoreleasepool {
		NSString *t = [NSString stringWithUTF8String:text];
		return [(NSSpeechSynthesizer *)s startSpeakingString:t] ? 1 : 0;
	}
}

static int sg_synth_is_speaking(void *s) {
	return [(NSSpeechSynthesizer *)s isSpeaking] ? 1 : 0;
}

static void sg_synth_stop(void *s) {
	[(NSSpeechSynthesizer *)s stopSpeaking];
}

static void sg_synth_release(void *s) {
	[(NSSpeechSynthesizer *)s release];
}
*/
import "C"

import (
	"fmt"
	"strings"
	"unsafe"
)

// NativeSynthesizer speaks through NSSpeechSynthesizer
type NativeSynthesizer struct {
	ptr unsafe.Pointer
}

// NewNativeSynthesizer creates a synthesizer bound to the system default voice
func NewNativeSynthesizer() (Synthesizer, error) {
	ptr := C.sg_synth_new()
	if ptr == nil {
		return nil, ErrNativeUnavailable
	}
	return &NativeSynthesizer{ptr: ptr}, nil
}

// Voices returns the identifiers reported by availableVoices
func (n *NativeSynthesizer) Voices() []string {
	cs := C.sg_available_voices()
	if cs == nil {
		return nil
	}
	defer C.free(unsafe.Pointer(cs))

	joined := C.GoString(cs)
	if joined == "" {
		return nil
	}
	return strings.Split(joined, "\n")
}

// UseVoice binds a voice identifier
func (n *NativeSynthesizer) UseVoice(id string) error {
	cs := C.CString(id)
	defer C.free(unsafe.Pointer(cs))

	if C.sg_synth_set_voice(n.ptr, cs) == 0 {
		return fmt.Errorf("voice %q rejected", id)
	}
	return nil
}

// StartSpeaking begins speaking text
func (n *NativeSynthesizer) StartSpeaking(text string) error {
	cs := C.CString(text)
	defer C.free(unsafe.Pointer(cs))

	if C.sg_synth_start(n.ptr, cs) == 0 {
		return fmt.Errorf("synthesizer refused to speak %q", text)
	}
	return nil
}

// IsSpeaking reports whether audio is still playing
func (n *NativeSynthesizer) IsSpeaking() bool {
	return C.sg_synth_is_speaking(n.ptr) != 0
}

// StopSpeaking interrupts the current utterance
func (n *NativeSynthesizer) StopSpeaking() {
	C.sg_synth_stop(n.ptr)
}

// Close releases the synthesizer
func (n *NativeSynthesizer) Close() error {
	if n.ptr != nil {
		C.sg_synth_release(n.ptr)
		n.ptr = nil
	}
	return nil
}
