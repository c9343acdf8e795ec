// Package speech wraps the audio collaborators the trainer depends on:
// text-to-speech playback and speech-to-text capture. Both are
// best-effort capabilities owned by whichever call is most recent.
package speech

import (
	"context"
	"errors"

	"golang.org/x/text/language"
)

//go:generate mockgen -source=speech.go -destination=../mocks/speech/mock_speech.go -package=mock_speech

// ErrRecognizerUnavailable is returned when voice input is requested
// but no recognition engine is configured.
var ErrRecognizerUnavailable = errors.New("speech recognition is unavailable")

// ErrAlreadyListening is returned when a recognition attempt is
// started while another one is still active.
var ErrAlreadyListening = errors.New("a recognition attempt is already active")

// Options configures a single utterance.
type Options struct {
	Language language.Tag
	Rate     float64
}

// Synthesizer plays an utterance and reports when it finishes.
// Starting a new utterance cancels the one in progress.
type Synthesizer interface {
	// Speak blocks until the utterance completes, the context is
	// canceled, or playback fails.
	Speak(ctx context.Context, text string, opts Options) error
	// Stop cancels the in-flight utterance, if any.
	Stop()
}

// Recognizer captures one transcript per Listen call.
type Recognizer interface {
	// Available reports whether a recognition engine can be used at
	// all. Callers must check this before offering voice input.
	Available() bool
	// Listen blocks until a transcript is captured or the context is
	// canceled. Only one attempt may be active at a time.
	Listen(ctx context.Context) (string, error)
	// Stop aborts the active recognition attempt, if any.
	Stop()
}
