package statistics

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexi-app/lexi/internal/matchgame"
	"github.com/lexi-app/lexi/internal/review"
)

func TestNewReviewReport(t *testing.T) {
	report := NewReviewReport(review.Stats{
		XP:           28,
		CorrectCount: 3,
		ErrorCount:   1,
		BestStreak:   2,
		Mastered:     3,
	}, 3)

	assert.Equal(t, "review", report.Mode)
	assert.Equal(t, 4, report.Attempts())
	assert.InDelta(t, 0.75, report.Accuracy(), 1e-9)
	assert.Equal(t, "good", report.Grade())
	assert.Contains(t, report.Lines(), "Best streak: 2")
	assert.Contains(t, report.Lines(), "XP earned: 28")
}

func TestNewMatchReport(t *testing.T) {
	pairs := []matchgame.Pair{
		{ID: uuid.New(), Target: "chien", Native: "perro"},
		{ID: uuid.New(), Target: "chat", Native: "gato"},
	}
	game := matchgame.NewGame(pairs, matchgame.DefaultConfig(), rand.New(rand.NewSource(1)), matchgame.Hooks{})
	for _, pair := range pairs {
		_, err := game.Attempt(pair.ID, pair.ID)
		require.NoError(t, err)
		game.AcknowledgeFeedback()
	}
	require.NoError(t, game.AdvancePage())

	report := NewMatchReport(game)
	assert.Equal(t, "match", report.Mode)
	assert.Equal(t, 2, report.TotalCards)
	assert.Equal(t, 2, report.Mastered)
	assert.Equal(t, "perfect", report.Grade())
	assert.Contains(t, report.Lines(), "Score: 20")
}

func TestReport_Grade(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		errors  int
		want    string
	}{
		{name: "no answers", want: "no answers"},
		{name: "perfect", correct: 5, want: "perfect"},
		{name: "great", correct: 4, errors: 1, want: "great"},
		{name: "good", correct: 1, errors: 1, want: "good"},
		{name: "keep practicing", correct: 1, errors: 3, want: "keep practicing"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			report := Report{CorrectCount: tc.correct, ErrorCount: tc.errors}
			assert.Equal(t, tc.want, report.Grade())
		})
	}
}
