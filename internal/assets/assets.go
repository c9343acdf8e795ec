// Package assets carries the built-in decks, word pairs and stories
// used when no data directory is configured.
package assets

import _ "embed"

//go:embed decks.yml
var defaultDecks []byte

//go:embed pairs.yml
var defaultPairs []byte

//go:embed stories.yml
var defaultStories []byte

// DefaultDecks returns the embedded deck dataset.
func DefaultDecks() []byte { return defaultDecks }

// DefaultPairs returns the embedded word-pair dataset for the matching
// game.
func DefaultPairs() []byte { return defaultPairs }

// DefaultStories returns the embedded story dataset.
func DefaultStories() []byte { return defaultStories }
