// Package speech provides the dictation input channel. A Service runs
// recognition sessions against a microphone and reports hypotheses; the
// Channel reduces each session to at most one text result.
package speech
