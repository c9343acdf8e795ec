package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexi-app/lexi/internal/cli"
	"github.com/lexi-app/lexi/internal/deck"
)

func newReviewCommand() *cobra.Command {
	var voiceMode bool
	var audio speechFlags

	command := &cobra.Command{
		Use:   "review <deck-id>",
		Short: "Review a deck: listen to each word and type its meaning before the countdown runs out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			repository, err := deck.NewRepository(cfg.Data.DecksDirectory)
			if err != nil {
				return fmt.Errorf("deck.NewRepository() > %w", err)
			}
			selected, err := repository.Deck(args[0])
			if err != nil {
				return err
			}

			translator, err := newTranslator(cfg)
			if err != nil {
				return err
			}
			tag, err := speechLanguage(cfg)
			if err != nil {
				return err
			}

			reviewCLI := cli.NewReviewCLI(
				selected,
				reviewConfig(cfg, tag, speechRate(cfg, audio.rate)),
				newSynthesizer(cfg, audio.mute),
				newRecognizer(cfg),
				translator,
				rand.New(rand.NewSource(time.Now().UnixNano())),
			)
			if voiceMode {
				if err := reviewCLI.UseVoice(); err != nil {
					return err
				}
			}

			return reviewCLI.Run(context.Background(), reviewCLI)
		},
	}

	command.Flags().BoolVar(&voiceMode, "voice", false, "answer by speaking instead of typing (fuzzy matching applies)")
	registerSpeechFlags(command.Flags(), &audio)

	return command
}
