// Package voice picks the speech voice used for the drill from a platform
// voice catalog.
//
// Selection is a pure function of the catalog and an optional operator
// override. Voices are grouped into locale buckets (en-US, en-GB, en-AU,
// other English) that are consulted in strict priority order; within the
// winning bucket enhanced voices beat compact ones, and the final pick is
// Samantha if present, otherwise the case-insensitively smallest identifier.
// The same catalog always yields the same voice.
package voice
