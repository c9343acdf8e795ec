// Package deck loads vocabulary decks and prepares the card order for
// a review session.
package deck

// Card is a single vocabulary item. Meaning holds a slash-separated
// list of accepted synonyms. Cards are immutable once loaded.
type Card struct {
	Word    string `yaml:"word"`
	Meaning string `yaml:"meaning"`
	Context string `yaml:"context"`
	DeckID  string `yaml:"-"`
}

// Deck is one lesson category with its cards in authoring order.
type Deck struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Cards       []Card `yaml:"cards"`
}

// Filter returns the cards belonging to deckID.
func Filter(cards []Card, deckID string) []Card {
	filtered := make([]Card, 0, len(cards))
	for _, card := range cards {
		if card.DeckID == deckID {
			filtered = append(filtered, card)
		}
	}
	return filtered
}
