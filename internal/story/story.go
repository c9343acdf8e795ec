// Package story holds narrated stories and their timed transcripts.
package story

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lexi-app/lexi/internal/assets"
)

// Line is one transcript segment with its start offset into the
// narration.
type Line struct {
	At          time.Duration
	Text        string
	Translation string
}

// UnmarshalYAML parses the start offset from a duration string such as
// "8s" or "1m30s".
func (l *Line) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		At          string `yaml:"at"`
		Text        string `yaml:"text"`
		Translation string `yaml:"translation"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	at, err := time.ParseDuration(raw.At)
	if err != nil {
		return fmt.Errorf("time.ParseDuration(%s) > %w", raw.At, err)
	}
	l.At = at
	l.Text = raw.Text
	l.Translation = raw.Translation
	return nil
}

// Story is one narrated piece with its transcript lines in time order.
type Story struct {
	ID         string `yaml:"id"`
	Title      string `yaml:"title"`
	Narrator   string `yaml:"narrator"`
	Kind       string `yaml:"kind"`
	Difficulty string `yaml:"difficulty"`
	Lines      []Line `yaml:"lines"`
}

// Repository loads stories from a directory of YAML files, falling
// back to the embedded dataset.
type Repository struct {
	stories []Story
}

// NewRepository reads every .yml/.yaml file under dir; each file holds
// a list of stories.
func NewRepository(dir string) (*Repository, error) {
	var stories []Story

	if dir != "" {
		if _, err := os.Stat(dir); err == nil {
			loaded, err := loadStoryFiles(dir)
			if err != nil {
				return nil, fmt.Errorf("loadStoryFiles(%s) > %w", dir, err)
			}
			stories = loaded
		}
	}

	if len(stories) == 0 {
		if err := yaml.Unmarshal(assets.DefaultStories(), &stories); err != nil {
			return nil, fmt.Errorf("failed to parse embedded stories: %w", err)
		}
	}
	return &Repository{stories: stories}, nil
}

func loadStoryFiles(dir string) ([]Story, error) {
	var stories []Story
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yml" && ext != ".yaml" {
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("os.Open(%s)> %w", path, err)
		}
		defer func() {
			_ = file.Close()
		}()

		var loaded []Story
		if err := yaml.NewDecoder(file).Decode(&loaded); err != nil {
			return fmt.Errorf("yaml.NewDecoder().Decode()> %w", err)
		}
		stories = append(stories, loaded...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("filepath.Walk(%s) > %w", dir, err)
	}
	return stories, nil
}

// Stories returns every loaded story.
func (r *Repository) Stories() []Story {
	return r.stories
}

// Story returns the story with the given ID.
func (r *Repository) Story(id string) (Story, error) {
	for _, s := range r.stories {
		if s.ID == id {
			return s, nil
		}
	}
	return Story{}, fmt.Errorf("story %s not found", id)
}
