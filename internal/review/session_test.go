package review

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lexi-app/lexi/internal/deck"
	mock_speech "github.com/lexi-app/lexi/internal/mocks/speech"
	"github.com/lexi-app/lexi/internal/speech"
)

// fakeScheduler records scheduled callbacks so tests can fire them
// deterministically.
type fakeScheduler struct {
	mu      sync.Mutex
	afters  []*fakeEntry
	tickers []*fakeEntry
}

type fakeEntry struct {
	f        func()
	canceled bool
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := &fakeEntry{f: f}
	s.afters = append(s.afters, entry)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		entry.canceled = true
	}
}

func (s *fakeScheduler) Every(d time.Duration, f func()) CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := &fakeEntry{f: f}
	s.tickers = append(s.tickers, entry)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		entry.canceled = true
	}
}

// fireLastAfter runs the most recently scheduled one-shot callback,
// canceled or not. Firing canceled entries simulates the timer race the
// session must guard against.
func (s *fakeScheduler) fireLastAfter(t *testing.T) {
	t.Helper()
	s.mu.Lock()
	require.NotEmpty(t, s.afters)
	entry := s.afters[len(s.afters)-1]
	s.mu.Unlock()
	entry.f()
}

func (s *fakeScheduler) fireAfter(t *testing.T, index int) {
	t.Helper()
	s.mu.Lock()
	require.Greater(t, len(s.afters), index)
	entry := s.afters[index]
	s.mu.Unlock()
	entry.f()
}

func (s *fakeScheduler) fireTick(t *testing.T) {
	t.Helper()
	s.mu.Lock()
	require.NotEmpty(t, s.tickers)
	entry := s.tickers[len(s.tickers)-1]
	s.mu.Unlock()
	entry.f()
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.AudioDelay = 0
	return cfg
}

func testCards(words ...string) []deck.Card {
	cards := make([]deck.Card, 0, len(words))
	for _, word := range words {
		cards = append(cards, deck.Card{
			Word:    word,
			Meaning: word + "-es",
			Context: "Voici " + word + ".",
			DeckID:  "test",
		})
	}
	return cards
}

func newTestSession(t *testing.T, cards []deck.Card, hooks Hooks) (*Session, *fakeScheduler) {
	t.Helper()
	sched := &fakeScheduler{}
	session := NewSession(
		cards,
		testConfig(),
		speech.NullSynthesizer{},
		sched,
		rand.New(rand.NewSource(1)),
		hooks,
	)
	return session, sched
}

// answerCurrentCard runs one full correct-answer card cycle.
func answerCurrentCard(t *testing.T, session *Session, sched *fakeScheduler) {
	t.Helper()
	require.NoError(t, session.StartNextCard(context.Background()))
	require.Equal(t, PhaseReflection, session.Phase())

	card, ok := session.CurrentCard()
	require.True(t, ok)

	result, err := session.Submit(card.Word)
	require.NoError(t, err)
	require.True(t, result.Correct)

	sched.fireLastAfter(t) // feedback delay -> summary
	require.True(t, session.ShowSummary())
	require.NoError(t, session.Continue())
}

func TestSession_CompletesAfterAllCardsAnsweredCorrectly(t *testing.T) {
	completions := 0
	session, sched := newTestSession(t, testCards("un", "deux", "trois"), Hooks{
		OnComplete: func() { completions++ },
	})

	for i := 0; i < 3; i++ {
		answerCurrentCard(t, session, sched)
	}

	assert.True(t, session.Completed())
	assert.Len(t, session.Mastered(), 3)
	assert.Empty(t, session.Remaining())
	assert.Equal(t, 1, completions, "celebration must fire exactly once")

	stats := session.Stats()
	assert.Equal(t, 3, stats.CorrectCount)
	assert.Equal(t, 0, stats.ErrorCount)
	assert.Equal(t, 3, stats.Streak)
	assert.Equal(t, 30, stats.XP)
}

func TestSession_IncorrectAnswerRotatesCardToTail(t *testing.T) {
	session, sched := newTestSession(t, testCards("un", "deux"), Hooks{})

	require.NoError(t, session.StartNextCard(context.Background()))
	missed, ok := session.CurrentCard()
	require.True(t, ok)

	result, err := session.Submit("definitely wrong answer")
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, PhaseFeedbackIncorrect, session.Phase())

	sched.fireLastAfter(t)
	require.NoError(t, session.Continue())

	remaining := session.Remaining()
	require.Len(t, remaining, 2, "missed card is never lost")
	assert.Equal(t, missed.Word, remaining[1].Word, "missed card moves to the tail")
	assert.Empty(t, session.Mastered())
	assert.False(t, session.Completed())
}

func TestSession_DeckAndMasteredPartitionOriginalDeck(t *testing.T) {
	words := []string{"un", "deux", "trois", "quatre"}
	session, sched := newTestSession(t, testCards(words...), Hooks{})

	// Miss the first card, answer the next two correctly.
	require.NoError(t, session.StartNextCard(context.Background()))
	_, err := session.Submit("wrong")
	require.NoError(t, err)
	sched.fireLastAfter(t)
	require.NoError(t, session.Continue())

	answerCurrentCard(t, session, sched)
	answerCurrentCard(t, session, sched)

	counts := map[string]int{}
	for _, card := range session.Remaining() {
		counts[card.Word]++
	}
	for _, card := range session.Mastered() {
		counts[card.Word]++
	}
	for _, word := range words {
		assert.Equal(t, 1, counts[word], "card %q must be in exactly one collection", word)
	}
}

func TestSession_EmptySubmissionIsIncorrectWithoutVerifier(t *testing.T) {
	session, _ := newTestSession(t, testCards("un"), Hooks{})

	require.NoError(t, session.StartNextCard(context.Background()))
	result, err := session.Submit("   ")
	require.NoError(t, err)
	assert.False(t, result.Correct)

	stats := session.Stats()
	assert.Equal(t, 1, stats.ErrorCount)
	assert.Equal(t, 0, stats.XP, "penalty is floored at zero")
}

func TestSession_TimeoutGradesIncorrectExactlyOnce(t *testing.T) {
	session, sched := newTestSession(t, testCards("un"), Hooks{})

	require.NoError(t, session.StartNextCard(context.Background()))
	require.Equal(t, PhaseReflection, session.Phase())

	sched.fireAfter(t, 0) // the hard timeout
	assert.Equal(t, PhaseFeedbackIncorrect, session.Phase())
	assert.True(t, session.TimeoutExpired())
	assert.Equal(t, 1, session.Stats().ErrorCount)

	// A duplicate fire against the resolved phase is a silent no-op.
	sched.fireAfter(t, 0)
	assert.Equal(t, 1, session.Stats().ErrorCount)
}

func TestSession_LateTimeoutAfterSubmissionIsNoOp(t *testing.T) {
	session, sched := newTestSession(t, testCards("un"), Hooks{})

	require.NoError(t, session.StartNextCard(context.Background()))
	card, ok := session.CurrentCard()
	require.True(t, ok)

	result, err := session.Submit(card.Word)
	require.NoError(t, err)
	require.True(t, result.Correct)

	// The canceled timeout fires anyway, as if it lost the race.
	sched.fireAfter(t, 0)

	assert.Equal(t, PhaseFeedbackCorrect, session.Phase())
	assert.False(t, session.TimeoutExpired())
	assert.Equal(t, 0, session.Stats().ErrorCount)
}

func TestSession_CountdownTicks(t *testing.T) {
	var seen []int
	session, sched := newTestSession(t, testCards("un"), Hooks{
		OnCountdown: func(remaining int) { seen = append(seen, remaining) },
	})

	require.NoError(t, session.StartNextCard(context.Background()))
	require.Equal(t, 10, session.Countdown())

	sched.fireTick(t)
	sched.fireTick(t)
	assert.Equal(t, 8, session.Countdown())
	assert.Equal(t, []int{10, 9, 8}, seen)

	// Ticks after resolution are no-ops.
	_, err := session.Submit("wrong")
	require.NoError(t, err)
	sched.fireTick(t)
	assert.Equal(t, 8, session.Countdown())
}

func TestSession_VoiceModeUsesFuzzyMatching(t *testing.T) {
	ctrl := gomock.NewController(t)
	recognizer := mock_speech.NewMockRecognizer(ctrl)
	recognizer.EXPECT().Available().Return(true).AnyTimes()

	cards := []deck.Card{{Word: "Bonjour", Meaning: "Hola", Context: "Bonjour !", DeckID: "test"}}

	t.Run("voice accepts a close transcript", func(t *testing.T) {
		session, _ := newTestSession(t, cards, Hooks{})
		require.NoError(t, session.SetInputMode(InputModeVoice, recognizer))
		require.NoError(t, session.StartNextCard(context.Background()))

		result, err := session.Submit("Bonjur")
		require.NoError(t, err)
		assert.True(t, result.Correct)
	})

	t.Run("text mode rejects the same typo", func(t *testing.T) {
		session, _ := newTestSession(t, cards, Hooks{})
		require.NoError(t, session.StartNextCard(context.Background()))

		result, err := session.Submit("Bonjur")
		require.NoError(t, err)
		assert.False(t, result.Correct)
	})
}

func TestSession_VoiceModeRequiresRecognizer(t *testing.T) {
	session, _ := newTestSession(t, testCards("un"), Hooks{})

	err := session.SetInputMode(InputModeVoice, speech.NullRecognizer{})
	assert.ErrorIs(t, err, speech.ErrRecognizerUnavailable)
	assert.Equal(t, InputModeText, session.InputMode())
}

func TestSession_Restart(t *testing.T) {
	session, sched := newTestSession(t, testCards("un", "deux"), Hooks{})

	answerCurrentCard(t, session, sched)
	require.Equal(t, 1, session.Stats().Mastered)

	session.Restart()

	stats := session.Stats()
	assert.Equal(t, 0, stats.Mastered)
	assert.Equal(t, 2, stats.Remaining)
	assert.Equal(t, 0, stats.XP)
	assert.Equal(t, 0, stats.CorrectCount)
	assert.Equal(t, 0, stats.Streak)
	assert.Equal(t, PhaseIdle, session.Phase())
	assert.False(t, session.Completed())
}

func TestSession_GuardsAgainstMisuse(t *testing.T) {
	session, sched := newTestSession(t, testCards("un"), Hooks{})

	_, err := session.Submit("un")
	assert.ErrorIs(t, err, ErrNotAwaitingAnswer)

	assert.ErrorIs(t, session.Continue(), ErrNoSummaryShown)

	require.NoError(t, session.StartNextCard(context.Background()))
	assert.ErrorIs(t, session.StartNextCard(context.Background()), ErrCardActive)

	answerWord, _ := session.CurrentCard()
	_, err = session.Submit(answerWord.Word)
	require.NoError(t, err)
	sched.fireLastAfter(t)
	require.NoError(t, session.Continue())

	assert.ErrorIs(t, session.StartNextCard(context.Background()), ErrDeckEmpty)
}

func TestSession_StreakResetsOnError(t *testing.T) {
	session, sched := newTestSession(t, testCards("un", "deux", "trois"), Hooks{})

	answerCurrentCard(t, session, sched)
	answerCurrentCard(t, session, sched)
	require.Equal(t, 2, session.Stats().Streak)

	require.NoError(t, session.StartNextCard(context.Background()))
	_, err := session.Submit("wrong")
	require.NoError(t, err)

	stats := session.Stats()
	assert.Equal(t, 0, stats.Streak)
	assert.Equal(t, 2, stats.BestStreak)
	assert.Equal(t, 18, stats.XP)
}
