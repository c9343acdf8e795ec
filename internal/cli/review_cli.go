package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/lexi-app/lexi/internal/deck"
	"github.com/lexi-app/lexi/internal/i18n"
	"github.com/lexi-app/lexi/internal/review"
	"github.com/lexi-app/lexi/internal/speech"
	"github.com/lexi-app/lexi/internal/statistics"
)

// replayCommand repeats the audio cues instead of submitting an answer.
const replayCommand = "/replay"

// ReviewCLI manages the interactive flashcard review session: one card
// per Session call, from audio cue to summary acknowledgement.
type ReviewCLI struct {
	*InteractiveCLI
	session    *review.Session
	recognizer speech.Recognizer
	summaryCh  chan struct{}
	started    bool
}

// NewReviewCLI creates a review session over the deck's cards.
func NewReviewCLI(
	d deck.Deck,
	cfg review.Config,
	synth speech.Synthesizer,
	recognizer speech.Recognizer,
	translator *i18n.Translator,
	rng *rand.Rand,
) *ReviewCLI {
	cli := &ReviewCLI{
		InteractiveCLI: newInteractiveCLI(translator),
		recognizer:     recognizer,
		summaryCh:      make(chan struct{}, 1),
	}
	cli.session = review.NewSession(d.Cards, cfg, synth, review.NewScheduler(), rng, review.Hooks{
		OnPhase:     cli.renderPhase,
		OnCountdown: cli.renderCountdown,
		OnFeedback:  cli.renderFeedback,
		OnSummary: func() {
			select {
			case cli.summaryCh <- struct{}{}:
			default:
			}
		},
		OnComplete: cli.renderCompletion,
	})
	return cli
}

// UseVoice switches the session to spoken answers. It fails when no
// recognition engine is installed.
func (r *ReviewCLI) UseVoice() error {
	if err := r.session.SetInputMode(review.InputModeVoice, r.recognizer); err != nil {
		fmt.Fprintln(r.stdoutWriter, r.translator.T("voice.unavailable", nil))
		return err
	}
	return nil
}

func (r *ReviewCLI) Session(ctx context.Context) error {
	if !r.started {
		r.started = true
		fmt.Fprintln(r.stdoutWriter, r.translator.T("review.started", map[string]string{
			"count": strconv.Itoa(r.session.TotalCards()),
		}))
	}

	if err := r.session.StartNextCard(ctx); err != nil {
		if errors.Is(err, review.ErrDeckEmpty) {
			return errEnd
		}
		return fmt.Errorf("session.StartNextCard() > %w", err)
	}

	answer, err := r.readAnswer(ctx)
	if err != nil {
		return err
	}
	for answer == replayCommand {
		r.session.ReplayAudio(ctx)
		if answer, err = r.readAnswer(ctx); err != nil {
			return err
		}
	}
	if isQuit(answer) {
		r.session.Close()
		return errEnd
	}

	if _, err := r.session.Submit(answer); err != nil && !errors.Is(err, review.ErrNotAwaitingAnswer) {
		return fmt.Errorf("session.Submit() > %w", err)
	}
	// ErrNotAwaitingAnswer: the reflection window expired while the
	// answer was being typed, and the timeout already graded the card.

	if err := r.waitForSummary(ctx); err != nil {
		return err
	}

	if _, err := r.readLine(r.translator.T("review.continue", nil) + " "); err != nil {
		return err
	}
	if err := r.session.Continue(); err != nil {
		return fmt.Errorf("session.Continue() > %w", err)
	}
	fmt.Fprintln(r.stdoutWriter, r.translator.T("review.progress", map[string]string{
		"percent": fmt.Sprintf("%.0f", r.session.Progress()*100),
	}))

	if r.session.Completed() {
		r.printReport()
		again, err := r.readLine(r.translator.T("review.restart", nil) + " [y/N]: ")
		if err != nil {
			return err
		}
		if strings.EqualFold(again, "y") {
			r.session.Restart()
			r.started = false
			return nil
		}
		return errEnd
	}
	return nil
}

func (r *ReviewCLI) readAnswer(ctx context.Context) (string, error) {
	if r.session.InputMode() == review.InputModeVoice {
		fmt.Fprintln(r.stdoutWriter, r.translator.T("voice.listening", nil))
		transcript, err := r.recognizer.Listen(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			// grade the failed attempt as an empty answer
			fmt.Fprintln(r.stdoutWriter, r.translator.T("voice.unavailable", nil))
			return "", nil
		}
		fmt.Fprintf(r.stdoutWriter, "%s\n", r.italic.Sprintf("%s", transcript))
		return transcript, nil
	}
	return r.readLine(r.bold.Sprintf("%s: ", r.translator.T("review.prompt", nil)))
}

func (r *ReviewCLI) waitForSummary(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.summaryCh:
		return nil
	}
}

func (r *ReviewCLI) renderPhase(phase review.Phase) {
	switch phase {
	case review.PhaseListeningWord:
		fmt.Fprintf(r.stdoutWriter, "\n\U0001F50A %s\n", r.translator.T("review.listening", nil))
	case review.PhaseReflection:
		// the word itself stays hidden; the usage sentence is the
		// visible hint
		card, ok := r.session.CurrentCard()
		if ok {
			_, _ = r.italic.Fprintf(r.stdoutWriter, "%s\n", card.Context)
		}
	}
}

// renderCountdown warns only near the deadline so the prompt stays
// readable while the answer is being typed.
func (r *ReviewCLI) renderCountdown(remaining int) {
	if remaining > 0 && remaining <= 3 {
		fmt.Fprintf(r.stdoutWriter, "\r⏳ %s ", r.translator.T("review.countdown", map[string]string{
			"seconds": strconv.Itoa(remaining),
		}))
	}
}

func (r *ReviewCLI) renderFeedback(feedback review.Feedback, timeoutExpired bool) {
	card, ok := r.session.CurrentCard()
	if !ok {
		return
	}
	vars := map[string]string{
		"word":    r.bold.Sprintf("%s", card.Word),
		"meaning": r.italic.Sprintf("%s", card.Meaning),
	}

	fmt.Fprintln(r.stdoutWriter)
	if timeoutExpired {
		fmt.Fprintf(r.stdoutWriter, "⏰ %s\n", r.translator.T("review.timeout", nil))
	}
	if feedback == review.FeedbackCorrect {
		fmt.Fprint(r.stdoutWriter, "✅ ")
		fmt.Fprintln(r.stdoutWriter, color.GreenString("%s", r.translator.T("review.correct", vars)))
	} else {
		fmt.Fprint(r.stdoutWriter, "❌ ")
		fmt.Fprintln(r.stdoutWriter, color.RedString("%s", r.translator.T("review.incorrect", vars)))
	}
}

func (r *ReviewCLI) renderCompletion() {
	fmt.Fprintf(r.stdoutWriter, "\n\U0001F389 %s\n", color.GreenString("%s", r.translator.T("review.completed", nil)))
}

func (r *ReviewCLI) printReport() {
	report := statistics.NewReviewReport(r.session.Stats(), r.session.TotalCards())
	for _, line := range report.Lines() {
		fmt.Fprintln(r.stdoutWriter, line)
	}
}
