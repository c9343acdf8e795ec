package statistics

import (
	"fmt"

	"github.com/lexi-app/lexi/internal/matchgame"
	"github.com/lexi-app/lexi/internal/review"
)

// Report summarizes a finished practice session.
type Report struct {
	Mode         string // "review" or "match"
	TotalCards   int
	CorrectCount int
	ErrorCount   int
	BestStreak   int
	Mastered     int
	XP           int
	Score        int // match sessions only
}

// NewReviewReport builds a report from the counters of a review session.
func NewReviewReport(stats review.Stats, totalCards int) Report {
	return Report{
		Mode:         "review",
		TotalCards:   totalCards,
		CorrectCount: stats.CorrectCount,
		ErrorCount:   stats.ErrorCount,
		BestStreak:   stats.BestStreak,
		Mastered:     stats.Mastered,
		XP:           stats.XP,
	}
}

// NewMatchReport builds a report from a finished matching game.
func NewMatchReport(game *matchgame.Game) Report {
	return Report{
		Mode:         "match",
		TotalCards:   game.TotalPairs(),
		CorrectCount: game.CorrectCount(),
		ErrorCount:   game.ErrorCount(),
		Mastered:     game.MatchedCount(),
		XP:           game.XP(),
		Score:        game.Score(),
	}
}

// Attempts returns the number of graded answers in the session.
func (r Report) Attempts() int {
	return r.CorrectCount + r.ErrorCount
}

// Accuracy returns the share of correct answers in [0, 1]. A session
// with no graded answers has an accuracy of 0.
func (r Report) Accuracy() float64 {
	attempts := r.Attempts()
	if attempts == 0 {
		return 0
	}
	return float64(r.CorrectCount) / float64(attempts)
}

// Grade buckets the accuracy into a short verdict for the summary line.
func (r Report) Grade() string {
	switch accuracy := r.Accuracy(); {
	case r.Attempts() == 0:
		return "no answers"
	case accuracy == 1:
		return "perfect"
	case accuracy >= 0.8:
		return "great"
	case accuracy >= 0.5:
		return "good"
	default:
		return "keep practicing"
	}
}

// Lines renders the report as printable summary lines.
func (r Report) Lines() []string {
	lines := []string{
		fmt.Sprintf("Mastered: %d/%d", r.Mastered, r.TotalCards),
		fmt.Sprintf("Correct: %d, Misses: %d (%.0f%% accuracy, %s)", r.CorrectCount, r.ErrorCount, r.Accuracy()*100, r.Grade()),
		fmt.Sprintf("XP earned: %d", r.XP),
	}
	if r.Mode == "review" && r.BestStreak > 0 {
		lines = append(lines, fmt.Sprintf("Best streak: %d", r.BestStreak))
	}
	if r.Mode == "match" {
		lines = append(lines, fmt.Sprintf("Score: %d", r.Score))
	}
	return lines
}
