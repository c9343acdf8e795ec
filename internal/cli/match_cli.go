package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/lexi-app/lexi/internal/i18n"
	"github.com/lexi-app/lexi/internal/matchgame"
	"github.com/lexi-app/lexi/internal/statistics"
)

// MatchCLI manages the interactive matching game: one pairing attempt
// per Session call.
type MatchCLI struct {
	*InteractiveCLI
	game          *matchgame.Game
	feedbackDelay time.Duration
	started       bool
}

// NewMatchCLI creates a matching game over the word pairs.
func NewMatchCLI(
	pairs []matchgame.Pair,
	cfg matchgame.Config,
	feedbackDelay time.Duration,
	translator *i18n.Translator,
	rng *rand.Rand,
) *MatchCLI {
	cli := &MatchCLI{
		InteractiveCLI: newInteractiveCLI(translator),
		feedbackDelay:  feedbackDelay,
	}
	cli.game = matchgame.NewGame(pairs, cfg, rng, matchgame.Hooks{
		OnComplete: cli.renderCompletion,
	})
	return cli
}

func (m *MatchCLI) Session(ctx context.Context) error {
	if m.game.Finished() {
		return errEnd
	}
	if !m.started {
		m.started = true
		fmt.Fprintln(m.stdoutWriter, m.translator.T("match.started", nil))
	}

	page := m.game.CurrentPage()
	m.renderPage(page)

	input, err := m.readLine(m.bold.Sprintf("> "))
	if err != nil {
		return err
	}
	if isQuit(input) {
		return errEnd
	}

	targetID, nativeID, err := m.parseSelection(page, input)
	if err != nil {
		fmt.Fprintln(m.stdoutWriter, err.Error())
		return nil
	}

	result, err := m.game.Attempt(targetID, nativeID)
	if err != nil {
		if errors.Is(err, matchgame.ErrAlreadyMatched) {
			fmt.Fprintln(m.stdoutWriter, m.translator.T("match.already_matched", nil))
			return nil
		}
		return fmt.Errorf("game.Attempt() > %w", err)
	}

	m.renderFeedback(page, targetID, result)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.feedbackDelay):
	}
	m.game.AcknowledgeFeedback()

	if result.PageComplete {
		fmt.Fprintln(m.stdoutWriter, m.translator.T("match.page_complete", nil))
		if err := m.game.AdvancePage(); err != nil {
			return fmt.Errorf("game.AdvancePage() > %w", err)
		}
		if m.game.Finished() {
			m.printReport()
			return errEnd
		}
	}
	return nil
}

// renderPage prints the target column numbered and the shuffled native
// column lettered. Matched words keep their slot with a check mark so
// the numbering stays stable for the whole page.
func (m *MatchCLI) renderPage(page matchgame.Page) {
	fmt.Fprintf(m.stdoutWriter, "\n%s\n", m.translator.T("match.page", map[string]string{
		"page":  strconv.Itoa(page.Index + 1),
		"pages": strconv.Itoa(page.Count),
	}))

	for i, target := range page.Targets {
		native := page.Natives[i]

		left := fmt.Sprintf("%d. %s", i+1, m.bold.Sprintf("%s", target.Target))
		if m.game.TargetMatched(target.ID) {
			left += " ✓"
		}
		right := fmt.Sprintf("%c. %s", 'a'+i, native.Native)
		if m.game.Matched(native.ID) {
			right += " ✓"
		}
		fmt.Fprintf(m.stdoutWriter, "  %-28s %s\n", left, right)
	}
}

// parseSelection reads a "number letter" pair such as "1 c" into the
// target and native word identifiers.
func (m *MatchCLI) parseSelection(page matchgame.Page, input string) (uuid.UUID, uuid.UUID, error) {
	fields := strings.Fields(input)
	if len(fields) != 2 {
		return uuid.Nil, uuid.Nil, errors.New(`select a pair like "1 c"`)
	}

	number, err := strconv.Atoi(fields[0])
	if err != nil || number < 1 || number > len(page.Targets) {
		return uuid.Nil, uuid.Nil, fmt.Errorf("pick a word between 1 and %d", len(page.Targets))
	}

	letter := fields[1]
	if len(letter) != 1 || letter[0] < 'a' || letter[0] >= 'a'+byte(len(page.Natives)) {
		return uuid.Nil, uuid.Nil, fmt.Errorf("pick a translation between a and %c", 'a'+len(page.Natives)-1)
	}

	return page.Targets[number-1].ID, page.Natives[letter[0]-'a'].ID, nil
}

func (m *MatchCLI) renderFeedback(page matchgame.Page, targetID uuid.UUID, result matchgame.Result) {
	if result.Correct {
		var target matchgame.Pair
		for _, pair := range page.Targets {
			if pair.ID == targetID {
				target = pair
			}
		}
		fmt.Fprint(m.stdoutWriter, "✅ ")
		fmt.Fprintln(m.stdoutWriter, color.GreenString("%s", m.translator.T("match.correct", map[string]string{
			"target": target.Target,
			"native": target.Native,
		})))
		return
	}
	fmt.Fprint(m.stdoutWriter, "❌ ")
	fmt.Fprintln(m.stdoutWriter, color.RedString("%s", m.translator.T("match.incorrect", nil)))
}

func (m *MatchCLI) renderCompletion() {
	fmt.Fprintf(m.stdoutWriter, "\n\U0001F389 %s\n", color.GreenString("%s", m.translator.T("match.completed", nil)))
}

func (m *MatchCLI) printReport() {
	report := statistics.NewMatchReport(m.game)
	for _, line := range report.Lines() {
		fmt.Fprintln(m.stdoutWriter, line)
	}
}
