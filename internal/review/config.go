package review

import (
	"time"

	"golang.org/x/text/language"
)

// Config holds the timing and scoring knobs of a review session.
type Config struct {
	// CountdownTicks is the number of visible countdown steps in the
	// reflection window; the hard timeout fires after
	// CountdownTicks*TickInterval.
	CountdownTicks int
	TickInterval   time.Duration
	// FeedbackDelay is how long grading feedback is shown before the
	// card summary.
	FeedbackDelay time.Duration
	// AudioDelay is the pause between the word cue and the context
	// cue.
	AudioDelay     time.Duration
	FuzzyThreshold int
	XPReward       int
	XPPenalty      int
	Language       language.Tag
	SpeechRate     float64
}

// DefaultConfig mirrors the tuning the trainer ships with.
func DefaultConfig() Config {
	return Config{
		CountdownTicks: 10,
		TickInterval:   time.Second,
		FeedbackDelay:  1500 * time.Millisecond,
		AudioDelay:     500 * time.Millisecond,
		FuzzyThreshold: 2,
		XPReward:       10,
		XPPenalty:      2,
		Language:       language.French,
		SpeechRate:     0.8,
	}
}
