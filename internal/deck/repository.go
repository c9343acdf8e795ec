package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lexi-app/lexi/internal/assets"
)

// Repository loads decks from a directory of YAML files. When the
// directory is empty or missing, the embedded default dataset is used
// instead.
type Repository struct {
	decks []Deck
}

// NewRepository reads every .yml/.yaml file under dir. Each file holds
// a list of decks.
func NewRepository(dir string) (*Repository, error) {
	var decks []Deck

	if dir != "" {
		if _, err := os.Stat(dir); err == nil {
			loaded, err := loadDeckFiles(dir)
			if err != nil {
				return nil, fmt.Errorf("loadDeckFiles(%s) > %w", dir, err)
			}
			decks = loaded
		}
	}

	if len(decks) == 0 {
		if err := yaml.Unmarshal(assets.DefaultDecks(), &decks); err != nil {
			return nil, fmt.Errorf("failed to parse embedded decks: %w", err)
		}
	}

	for i := range decks {
		for j := range decks[i].Cards {
			decks[i].Cards[j].DeckID = decks[i].ID
		}
	}
	return &Repository{decks: decks}, nil
}

func loadDeckFiles(dir string) ([]Deck, error) {
	var decks []Deck
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isYamlFile(path) {
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("os.Open(%s)> %w", path, err)
		}
		defer func() {
			_ = file.Close()
		}()

		var loaded []Deck
		if err := yaml.NewDecoder(file).Decode(&loaded); err != nil {
			return fmt.Errorf("yaml.NewDecoder().Decode()> %w", err)
		}
		decks = append(decks, loaded...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("filepath.Walk(%s) > %w", dir, err)
	}
	return decks, nil
}

func isYamlFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}

// Decks returns every loaded deck.
func (r *Repository) Decks() []Deck {
	return r.decks
}

// Deck returns the deck with the given ID.
func (r *Repository) Deck(deckID string) (Deck, error) {
	for _, d := range r.decks {
		if d.ID == deckID {
			return d, nil
		}
	}
	return Deck{}, fmt.Errorf("deck %s not found", deckID)
}

// Cards returns all cards across every deck, each tagged with its
// deck ID.
func (r *Repository) Cards() []Card {
	var cards []Card
	for _, d := range r.decks {
		cards = append(cards, d.Cards...)
	}
	return cards
}
