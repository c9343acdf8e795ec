package speech

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
)

// CommandRecognizer shells out to a configured speech-to-text program
// and uses the first line of its stdout as the transcript. It exists
// because no portable recognition engine ships with the terminal; the
// command is user-provided.
type CommandRecognizer struct {
	command []string
	logger  *slog.Logger

	mu        sync.Mutex
	listening bool
	cancel    context.CancelFunc
}

// NewCommandRecognizer wraps a recognition command line. An empty
// command yields a recognizer that reports itself unavailable.
func NewCommandRecognizer(command string, logger *slog.Logger) *CommandRecognizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommandRecognizer{
		command: strings.Fields(command),
		logger:  logger,
	}
}

// Available reports whether a recognition command is configured and
// resolvable.
func (r *CommandRecognizer) Available() bool {
	if len(r.command) == 0 {
		return false
	}
	_, err := exec.LookPath(r.command[0])
	return err == nil
}

// Listen runs the recognition command once and returns its transcript.
// The microphone is single-session: a second Listen while one is
// active returns ErrAlreadyListening.
func (r *CommandRecognizer) Listen(ctx context.Context) (string, error) {
	if !r.Available() {
		return "", ErrRecognizerUnavailable
	}

	r.mu.Lock()
	if r.listening {
		r.mu.Unlock()
		return "", ErrAlreadyListening
	}
	cmdCtx, cancel := context.WithCancel(ctx)
	r.listening = true
	r.cancel = cancel
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.listening = false
		r.cancel = nil
		r.mu.Unlock()
		cancel()
	}()

	cmd := exec.CommandContext(cmdCtx, r.command[0], r.command[1:]...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if cmdCtx.Err() != nil {
			return "", cmdCtx.Err()
		}
		return "", fmt.Errorf("%s > %w", r.command[0], err)
	}

	transcript, _, _ := strings.Cut(stdout.String(), "\n")
	return strings.TrimSpace(transcript), nil
}

// Stop aborts the active recognition attempt, if any.
func (r *CommandRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}

// NullRecognizer is the default recognizer: never available. Voice
// mode must refuse to activate against it.
type NullRecognizer struct{}

func (NullRecognizer) Available() bool { return false }

func (NullRecognizer) Listen(ctx context.Context) (string, error) {
	return "", ErrRecognizerUnavailable
}

func (NullRecognizer) Stop() {}
