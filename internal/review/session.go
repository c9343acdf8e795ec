// Package review drives one flashcard review session: card
// sequencing, the per-card phase machine, answer grading, and the
// retry queue that requeues missed cards until the deck is cleared.
package review

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lexi-app/lexi/internal/deck"
	"github.com/lexi-app/lexi/internal/speech"
	"github.com/lexi-app/lexi/internal/textmatch"
)

var (
	// ErrDeckEmpty is returned when a card is requested from a drained
	// deck.
	ErrDeckEmpty = errors.New("no cards remaining")
	// ErrCardActive is returned when a new card is started while one
	// is still in play.
	ErrCardActive = errors.New("a card is already active")
	// ErrNotAwaitingAnswer is returned when a submission arrives
	// outside the reflection and answer phases.
	ErrNotAwaitingAnswer = errors.New("session is not awaiting an answer")
	// ErrNoSummaryShown is returned when Continue is called before the
	// card summary is displayed.
	ErrNoSummaryShown = errors.New("no card summary is shown")
)

// Hooks are optional observers for UI side effects. They are invoked
// without the session lock held.
type Hooks struct {
	OnPhase     func(Phase)
	OnCountdown func(remaining int)
	OnFeedback  func(feedback Feedback, timeoutExpired bool)
	OnSummary   func()
	OnComplete  func()
}

// Result is the grading outcome of one submission.
type Result struct {
	Correct bool
}

// Stats are the session-local gamification counters. None of them
// persist across sessions.
type Stats struct {
	XP           int
	CorrectCount int
	ErrorCount   int
	Streak       int
	BestStreak   int
	Mastered     int
	Remaining    int
}

// Session owns a shuffled deck and runs each card through the phase
// machine. Cards answered correctly move to the mastered set; missed
// cards rotate to the tail of the deck and come back later. All state
// transitions are serialized through one mutex; timer callbacks that
// arrive for a previous card are discarded via a generation token.
type Session struct {
	cfg   Config
	synth speech.Synthesizer
	sched Scheduler
	rng   *rand.Rand
	hooks Hooks

	id uuid.UUID

	mu             sync.Mutex
	original       []deck.Card
	deck           []deck.Card
	mastered       []deck.Card
	current        *deck.Card
	phase          Phase
	feedback       Feedback
	showSummary    bool
	countdown      int
	inputMode      InputMode
	timeoutExpired bool
	replaying      bool
	completed      bool
	celebrated     bool
	generation     int

	xp           int
	correctCount int
	errorCount   int
	streak       int
	bestStreak   int

	cancelTick    CancelFunc
	cancelTimeout CancelFunc
	cancelSummary CancelFunc
}

// NewSession shuffles cards and prepares an idle session. The
// synthesizer and scheduler are required; hooks may be zero.
func NewSession(cards []deck.Card, cfg Config, synth speech.Synthesizer, sched Scheduler, rng *rand.Rand, hooks Hooks) *Session {
	original := make([]deck.Card, len(cards))
	copy(original, cards)

	return &Session{
		cfg:       cfg,
		synth:     synth,
		sched:     sched,
		rng:       rng,
		hooks:     hooks,
		id:        uuid.New(),
		original:  original,
		deck:      deck.Shuffle(rng, original),
		phase:     PhaseIdle,
		inputMode: InputModeText,
		countdown: cfg.CountdownTicks,
	}
}

// ID identifies this session in reports.
func (s *Session) ID() uuid.UUID { return s.id }

// SetInputMode switches between typed and voice answers. Voice mode is
// refused outright when no recognition engine is available, so the
// failure surfaces before the session depends on it.
func (s *Session) SetInputMode(mode InputMode, recognizer speech.Recognizer) error {
	if mode == InputModeVoice && (recognizer == nil || !recognizer.Available()) {
		return speech.ErrRecognizerUnavailable
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputMode = mode
	return nil
}

// StartNextCard pulls the deck head into play and walks it through the
// listening phases: word cue, a fixed inter-cue delay, context cue,
// then the timed reflection window. Audio failures do not block phase
// progression. The call returns once reflection begins.
func (s *Session) StartNextCard(ctx context.Context) error {
	s.mu.Lock()
	if s.current != nil || s.phase != PhaseIdle {
		s.mu.Unlock()
		return ErrCardActive
	}
	if len(s.deck) == 0 {
		s.mu.Unlock()
		return ErrDeckEmpty
	}
	card := s.deck[0]
	s.current = &card
	gen := s.generation
	s.phase = PhaseListeningWord
	onPhase := s.hooks.OnPhase
	s.mu.Unlock()

	if onPhase != nil {
		onPhase(PhaseListeningWord)
	}

	s.speak(ctx, card.Word)
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.setPhase(gen, PhaseListeningContext) {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.cfg.AudioDelay):
	}

	s.speak(ctx, card.Context)
	if err := ctx.Err(); err != nil {
		return err
	}

	s.enterReflection(gen)
	return nil
}

// Submit grades the user's answer. Empty or whitespace-only input is
// graded incorrect without consulting the verifier. Typed input is
// graded exactly; voice input allows fuzzy matches.
func (s *Session) Submit(answer string) (Result, error) {
	s.mu.Lock()
	if s.phase != PhaseReflection && s.phase != PhaseAnswer {
		s.mu.Unlock()
		return Result{}, ErrNotAwaitingAnswer
	}
	gen := s.generation
	s.cancelCardTimersLocked()

	correct := false
	if strings.TrimSpace(answer) != "" {
		exactMode := s.inputMode == InputModeText
		correct = textmatch.CheckAnswerThreshold(
			answer, s.current.Word, s.current.Meaning, exactMode, s.cfg.FuzzyThreshold,
		)
	}

	feedback := FeedbackIncorrect
	if correct {
		feedback = FeedbackCorrect
	}
	fire := s.resolveLocked(feedback, gen)
	s.mu.Unlock()

	fire()
	return Result{Correct: correct}, nil
}

// Continue acknowledges the card summary: a correct card moves to the
// mastered set, a missed card rotates to the deck tail. Per-card
// transient state is cleared and the session returns to idle. When the
// deck drains, completion is flagged and the celebration hook fires
// exactly once.
func (s *Session) Continue() error {
	s.mu.Lock()
	if !s.showSummary || s.current == nil {
		s.mu.Unlock()
		return ErrNoSummaryShown
	}

	if s.feedback == FeedbackCorrect {
		s.mastered = append(s.mastered, s.deck[0])
		s.deck = s.deck[1:]
	} else {
		head := s.deck[0]
		s.deck = append(s.deck[1:], head)
	}

	s.current = nil
	s.feedback = FeedbackNone
	s.showSummary = false
	s.timeoutExpired = false
	s.replaying = false
	s.phase = PhaseIdle
	s.countdown = s.cfg.CountdownTicks
	s.generation++
	s.cancelCardTimersLocked()

	var onComplete func()
	if len(s.deck) == 0 && len(s.mastered) > 0 && !s.completed {
		s.completed = true
		if !s.celebrated {
			s.celebrated = true
			onComplete = s.hooks.OnComplete
		}
	}
	s.mu.Unlock()

	if onComplete != nil {
		onComplete()
	}
	return nil
}

// Restart reshuffles the original card set and zeroes every counter.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelCardTimersLocked()
	s.deck = deck.Shuffle(s.rng, s.original)
	s.mastered = nil
	s.current = nil
	s.phase = PhaseIdle
	s.feedback = FeedbackNone
	s.showSummary = false
	s.timeoutExpired = false
	s.replaying = false
	s.completed = false
	s.celebrated = false
	s.countdown = s.cfg.CountdownTicks
	s.xp = 0
	s.correctCount = 0
	s.errorCount = 0
	s.streak = 0
	s.bestStreak = 0
	s.generation++
}

// Close cancels pending timers and any in-flight speech.
func (s *Session) Close() {
	s.mu.Lock()
	s.cancelCardTimersLocked()
	s.generation++
	s.mu.Unlock()
	s.synth.Stop()
}

// ReplayAudio repeats the word and context cues during reflection.
// Concurrent replays are ignored.
func (s *Session) ReplayAudio(ctx context.Context) {
	s.mu.Lock()
	if s.phase != PhaseReflection || s.current == nil || s.replaying {
		s.mu.Unlock()
		return
	}
	card := *s.current
	gen := s.generation
	s.replaying = true
	s.mu.Unlock()

	s.speak(ctx, card.Word)
	select {
	case <-ctx.Done():
	case <-time.After(s.cfg.AudioDelay):
		s.speak(ctx, card.Context)
	}

	s.mu.Lock()
	if s.generation == gen {
		s.replaying = false
	}
	s.mu.Unlock()
}

func (s *Session) enterReflection(gen int) {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return
	}
	s.phase = PhaseReflection
	s.countdown = s.cfg.CountdownTicks
	s.timeoutExpired = false
	s.cancelCardTimersLocked()
	s.cancelTick = s.sched.Every(s.cfg.TickInterval, func() {
		s.tick(gen)
	})
	total := time.Duration(s.cfg.CountdownTicks) * s.cfg.TickInterval
	s.cancelTimeout = s.sched.AfterFunc(total, func() {
		s.timeout(gen)
	})
	onPhase := s.hooks.OnPhase
	onCountdown := s.hooks.OnCountdown
	remaining := s.countdown
	s.mu.Unlock()

	if onPhase != nil {
		onPhase(PhaseReflection)
	}
	if onCountdown != nil {
		onCountdown(remaining)
	}
}

// tick decrements the visible countdown. Ticks for a previous card or
// a resolved phase are silent no-ops.
func (s *Session) tick(gen int) {
	s.mu.Lock()
	if s.generation != gen || s.phase != PhaseReflection {
		s.mu.Unlock()
		return
	}
	if s.countdown > 0 {
		s.countdown--
	}
	remaining := s.countdown
	onCountdown := s.hooks.OnCountdown
	s.mu.Unlock()

	if onCountdown != nil {
		onCountdown(remaining)
	}
}

// timeout auto-grades the card incorrect when the reflection window
// elapses without a submission. A late fire against a newer card or an
// already resolved phase is a silent no-op.
func (s *Session) timeout(gen int) {
	s.mu.Lock()
	if s.generation != gen || s.phase != PhaseReflection {
		s.mu.Unlock()
		return
	}
	s.timeoutExpired = true
	fire := s.resolveLocked(FeedbackIncorrect, gen)
	s.mu.Unlock()

	fire()
}

// resolveLocked applies the grading outcome: counters, feedback phase,
// and the delayed transition to the card summary. The caller holds the
// lock; the returned func fires hooks and must be called after
// unlocking.
func (s *Session) resolveLocked(feedback Feedback, gen int) func() {
	s.cancelCardTimersLocked()
	s.feedback = feedback

	if feedback == FeedbackCorrect {
		s.phase = PhaseFeedbackCorrect
		s.correctCount++
		s.streak++
		if s.streak > s.bestStreak {
			s.bestStreak = s.streak
		}
		s.xp += s.cfg.XPReward
	} else {
		s.phase = PhaseFeedbackIncorrect
		s.errorCount++
		s.streak = 0
		s.xp -= s.cfg.XPPenalty
		if s.xp < 0 {
			s.xp = 0
		}
	}

	s.cancelSummary = s.sched.AfterFunc(s.cfg.FeedbackDelay, func() {
		s.showSummaryFor(gen)
	})

	phase := s.phase
	timeoutExpired := s.timeoutExpired
	onPhase := s.hooks.OnPhase
	onFeedback := s.hooks.OnFeedback

	return func() {
		if onPhase != nil {
			onPhase(phase)
		}
		if onFeedback != nil {
			onFeedback(feedback, timeoutExpired)
		}
	}
}

func (s *Session) showSummaryFor(gen int) {
	s.mu.Lock()
	if s.generation != gen || (s.phase != PhaseFeedbackCorrect && s.phase != PhaseFeedbackIncorrect) {
		s.mu.Unlock()
		return
	}
	s.showSummary = true
	onSummary := s.hooks.OnSummary
	s.mu.Unlock()

	if onSummary != nil {
		onSummary()
	}
}

func (s *Session) setPhase(gen int, phase Phase) bool {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return false
	}
	s.phase = phase
	onPhase := s.hooks.OnPhase
	s.mu.Unlock()

	if onPhase != nil {
		onPhase(phase)
	}
	return true
}

// cancelCardTimersLocked cancels the countdown tick, the hard timeout
// and the pending summary transition as a pair.
func (s *Session) cancelCardTimersLocked() {
	if s.cancelTick != nil {
		s.cancelTick()
		s.cancelTick = nil
	}
	if s.cancelTimeout != nil {
		s.cancelTimeout()
		s.cancelTimeout = nil
	}
	if s.cancelSummary != nil {
		s.cancelSummary()
		s.cancelSummary = nil
	}
}

// speak plays a cue and swallows failures: audio is best-effort and a
// broken synthesizer must not stall the phase machine.
func (s *Session) speak(ctx context.Context, text string) {
	_ = s.synth.Speak(ctx, text, speech.Options{
		Language: s.cfg.Language,
		Rate:     s.cfg.SpeechRate,
	})
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// CurrentCard returns a copy of the card in play, if any.
func (s *Session) CurrentCard() (deck.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return deck.Card{}, false
	}
	return *s.current, true
}

// Countdown returns the remaining visible countdown ticks.
func (s *Session) Countdown() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countdown
}

// Feedback returns the grading outcome of the current card.
func (s *Session) Feedback() Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedback
}

// ShowSummary reports whether the card summary is displayed and the
// session is waiting for Continue.
func (s *Session) ShowSummary() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showSummary
}

// TimeoutExpired reports whether the current card was auto-graded by
// the reflection timeout.
func (s *Session) TimeoutExpired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeoutExpired
}

// InputMode returns the active input mode.
func (s *Session) InputMode() InputMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inputMode
}

// Completed reports whether every card has been mastered.
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// Remaining returns a copy of the unsolved deck.
func (s *Session) Remaining() []deck.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	remaining := make([]deck.Card, len(s.deck))
	copy(remaining, s.deck)
	return remaining
}

// Mastered returns a copy of the cards answered correctly so far.
func (s *Session) Mastered() []deck.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	mastered := make([]deck.Card, len(s.mastered))
	copy(mastered, s.mastered)
	return mastered
}

// Stats returns the session counters.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		XP:           s.xp,
		CorrectCount: s.correctCount,
		ErrorCount:   s.errorCount,
		Streak:       s.streak,
		BestStreak:   s.bestStreak,
		Mastered:     len(s.mastered),
		Remaining:    len(s.deck),
	}
}

// TotalCards returns the size of the original deck.
func (s *Session) TotalCards() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.original)
}

// Progress returns the mastered share of the deck, in [0, 1].
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := len(s.deck) + len(s.mastered)
	if total == 0 {
		return 0
	}
	return float64(len(s.mastered)) / float64(total)
}
