package speech

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"golang.org/x/text/language"
)

// candidate TTS programs, tried in order when no command is configured.
var ttsPrograms = []string{"espeak-ng", "espeak", "say", "spd-say"}

// CommandSynthesizer shells out to a local text-to-speech program.
// Playback failures are logged and swallowed so that a broken audio
// setup never stalls a session.
type CommandSynthesizer struct {
	program string
	logger  *slog.Logger

	mu      sync.Mutex
	current *exec.Cmd
	cancel  context.CancelFunc
}

// NewCommandSynthesizer resolves the TTS program to use. With an empty
// program, the first known program found on PATH wins. The returned
// synthesizer is nil-safe to use but reports availability through the
// error: callers may keep going without audio cues.
func NewCommandSynthesizer(program string, logger *slog.Logger) (*CommandSynthesizer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if program != "" {
		if _, err := exec.LookPath(program); err != nil {
			return nil, fmt.Errorf("exec.LookPath(%s) > %w", program, err)
		}
		return &CommandSynthesizer{program: program, logger: logger}, nil
	}

	for _, candidate := range ttsPrograms {
		if _, err := exec.LookPath(candidate); err == nil {
			return &CommandSynthesizer{program: candidate, logger: logger}, nil
		}
	}
	return nil, fmt.Errorf("no text-to-speech program found on PATH (tried %s)", strings.Join(ttsPrograms, ", "))
}

// Speak runs the TTS program and blocks until it exits. A new
// utterance preempts the previous one. Transient failures are retried
// twice; a final failure is logged and reported, but callers are
// expected to continue without audio.
func (s *CommandSynthesizer) Speak(ctx context.Context, text string, opts Options) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	err := retry.Do(
		func() error {
			return s.speakOnce(ctx, text, opts)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil && ctx.Err() == nil {
		s.logger.Warn("speech synthesis failed",
			slog.String("program", s.program),
			slog.Any("error", err),
		)
	}
	return err
}

func (s *CommandSynthesizer) speakOnce(ctx context.Context, text string, opts Options) error {
	s.mu.Lock()
	// Stop-and-replace: the audio channel belongs to the most recent
	// utterance.
	s.stopLocked()
	cmdCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(cmdCtx, s.program, s.arguments(text, opts)...)
	s.current = cmd
	s.cancel = cancel
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.current == cmd {
			s.current = nil
			s.cancel = nil
		}
		s.mu.Unlock()
		cancel()
	}()

	if err := cmd.Run(); err != nil {
		if cmdCtx.Err() != nil {
			// Canceled by Stop or by the caller, not a playback fault.
			return cmdCtx.Err()
		}
		return fmt.Errorf("%s > %w", s.program, err)
	}
	return nil
}

// Stop cancels the in-flight utterance, if any.
func (s *CommandSynthesizer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *CommandSynthesizer) stopLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.current = nil
	}
}

// arguments maps Options onto the flags of the resolved program.
func (s *CommandSynthesizer) arguments(text string, opts Options) []string {
	lang := opts.Language
	if lang == language.Und {
		lang = language.French
	}
	rate := opts.Rate
	if rate <= 0 {
		rate = 1.0
	}

	switch s.program {
	case "espeak-ng", "espeak":
		// espeak's default speed is 175 words per minute.
		return []string{
			"-v", lang.String(),
			"-s", strconv.Itoa(int(175 * rate)),
			text,
		}
	case "say":
		return []string{"-r", strconv.Itoa(int(175 * rate)), text}
	case "spd-say":
		return []string{"-w", "-l", lang.String(), text}
	default:
		return []string{text}
	}
}

// NullSynthesizer discards every utterance. It stands in when no TTS
// program is available, so sessions degrade to silent mode instead of
// failing.
type NullSynthesizer struct{}

func (NullSynthesizer) Speak(ctx context.Context, text string, opts Options) error { return nil }
func (NullSynthesizer) Stop()                                                      {}
