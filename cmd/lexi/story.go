package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexi-app/lexi/internal/cli"
	"github.com/lexi-app/lexi/internal/story"
)

func newStoryCommand() *cobra.Command {
	storyCommand := &cobra.Command{
		Use:   "story",
		Short: "Listen to short stories with a synchronized transcript",
	}

	storyCommand.AddCommand(newStoryListCommand())
	storyCommand.AddCommand(newStoryPlayCommand())

	return storyCommand
}

func newStoryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available stories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			repository, err := story.NewRepository(cfg.Data.StoriesDirectory)
			if err != nil {
				return fmt.Errorf("story.NewRepository() > %w", err)
			}

			for _, st := range repository.Stories() {
				fmt.Printf("%s\t%s (%s, %s)\n", st.ID, st.Title, st.Kind, st.Difficulty)
			}
			return nil
		},
	}
}

func newStoryPlayCommand() *cobra.Command {
	var audio speechFlags

	command := &cobra.Command{
		Use:   "play <story-id>",
		Short: "Narrate a story while highlighting the transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			repository, err := story.NewRepository(cfg.Data.StoriesDirectory)
			if err != nil {
				return fmt.Errorf("story.NewRepository() > %w", err)
			}
			selected, err := repository.Story(args[0])
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

			storyCLI := cli.NewStoryCLI(
				selected,
				newSynthesizer(cfg, audio.mute),
				tag,
				speechRate(cfg, audio.rate),
				translator,
			)
			return storyCLI.Run(context.Background(), storyCLI)
		},
	}

	registerSpeechFlags(command.Flags(), &audio)

	return command
}
