package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/lexi-app/lexi/internal/i18n"
	"github.com/lexi-app/lexi/internal/speech"
	"github.com/lexi-app/lexi/internal/story"
)

// Playback commands accepted between transcript lines.
const (
	backCommand = "/back"
	skipCommand = "/skip"
	rateCommand = "/rate"
)

// StoryCLI narrates one story line per Session call, pausing between
// lines for playback commands.
type StoryCLI struct {
	*InteractiveCLI
	player  *story.Player
	story   story.Story
	started bool
}

// NewStoryCLI creates a playback session for the story.
func NewStoryCLI(
	st story.Story,
	synth speech.Synthesizer,
	lang language.Tag,
	rate float64,
	translator *i18n.Translator,
) *StoryCLI {
	return &StoryCLI{
		InteractiveCLI: newInteractiveCLI(translator),
		player:         story.NewPlayer(st, synth, lang, rate),
		story:          st,
	}
}

func (s *StoryCLI) Session(ctx context.Context) error {
	if !s.started {
		s.started = true
		fmt.Fprintln(s.stdoutWriter, s.translator.T("story.playing", map[string]string{
			"title":    s.story.Title,
			"narrator": s.story.Narrator,
		}))
		fmt.Fprintln(s.stdoutWriter, s.translator.T("story.controls", nil))
	}
	if len(s.story.Lines) == 0 {
		return s.finish()
	}

	if err := s.player.PlayLine(ctx, s.renderLine); err != nil {
		return fmt.Errorf("player.PlayLine() > %w", err)
	}

	command, err := s.readLine("> ")
	if err != nil {
		return err
	}
	switch {
	case isQuit(command):
		return errEnd
	case command == backCommand:
		s.player.SkipBack()
		return nil
	case command == skipCommand:
		// jump over the line that would have played next
		if !s.player.Advance() {
			return s.finish()
		}
		s.player.SkipForward()
		return nil
	case strings.HasPrefix(command, rateCommand):
		rate, parseErr := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(command, rateCommand)), 64)
		if parseErr != nil || rate <= 0 {
			fmt.Fprintln(s.stdoutWriter, s.translator.T("story.rate_usage", nil))
			return nil
		}
		s.player.SetRate(rate)
		return nil
	}

	if !s.player.Advance() {
		return s.finish()
	}
	return nil
}

func (s *StoryCLI) finish() error {
	fmt.Fprintf(s.stdoutWriter, "\n%s\n", s.translator.T("story.finished", nil))
	return errEnd
}

func (s *StoryCLI) renderLine(index int, line story.Line) {
	_, _ = s.bold.Fprintf(s.stdoutWriter, "%s\n", line.Text)
	if line.Translation != "" {
		_, _ = s.italic.Fprintf(s.stdoutWriter, "  %s\n", line.Translation)
	}
}
