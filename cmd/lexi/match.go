package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexi-app/lexi/internal/cli"
	"github.com/lexi-app/lexi/internal/matchgame"
)

func newMatchCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "match",
		Short: "Match target-language words with their translations, one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			pairs, err := matchgame.LoadPairs(cfg.Data.PairsFile)
			if err != nil {
				return fmt.Errorf("matchgame.LoadPairs() > %w", err)
			}

			translator, err := newTranslator(cfg)
			if err != nil {
				return err
			}

			matchCLI := cli.NewMatchCLI(
				pairs,
				matchConfig(cfg),
				cfg.Review.FeedbackDelay,
				translator,
				rand.New(rand.NewSource(time.Now().UnixNano())),
			)
			return matchCLI.Run(context.Background(), matchCLI)
		},
	}

	return command
}
