package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexi-app/lexi/internal/deck"
)

func newDecksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decks",
		Short: "List the available flashcard decks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			repository, err := deck.NewRepository(cfg.Data.DecksDirectory)
			if err != nil {
				return fmt.Errorf("deck.NewRepository() > %w", err)
			}

			for _, d := range repository.Decks() {
				fmt.Printf("%s\t%s (%d cards)\t%s\n", d.ID, d.Title, len(d.Cards), d.Description)
			}
			return nil
		},
	}
}
