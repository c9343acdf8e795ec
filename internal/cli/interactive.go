// Package cli implements the interactive terminal sessions behind the
// review, match, and story commands.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/lexi-app/lexi/internal/i18n"
)

// InteractiveCLI contains shared logic for interactive sessions.
type InteractiveCLI struct {
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	translator   *i18n.Translator
}

// newInteractiveCLI creates the base CLI with shared initialization
func newInteractiveCLI(translator *i18n.Translator) *InteractiveCLI {
	return &InteractiveCLI{
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		translator:   translator,
	}
}

//go:generate mockgen -source=interactive.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session

type Session interface {
	Session(context context.Context) error
}

var (
	errEnd = errors.New("end")
)

func (cli *InteractiveCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// readLine prompts and reads one trimmed line from stdin.
func (cli *InteractiveCLI) readLine(prompt string) (string, error) {
	fmt.Fprint(cli.stdoutWriter, prompt)
	input, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// isQuit reports whether the input asks to leave the session.
func isQuit(input string) bool {
	return input == "quit" || input == "exit"
}
