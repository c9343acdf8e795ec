package deck

import "math/rand"

// Shuffle returns a new slice with the cards in Fisher-Yates order.
// The input slice is left untouched.
func Shuffle(rng *rand.Rand, cards []Card) []Card {
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
