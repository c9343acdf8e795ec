// Package testutil provides shared test helpers for creating config
// files and data fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a minimal config file and the data
// directories it points at. Returns the path to the generated config
// file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	for _, d := range []string{"decks", "stories"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`data:
  decks_directory: %s
  stories_directory: %s
`,
		filepath.Join(tmpDir, "decks"),
		filepath.Join(tmpDir, "stories"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// WriteDeckFile writes a deck fixture into the config's decks
// directory.
func WriteDeckFile(t *testing.T, tmpDir, name, content string) string {
	t.Helper()
	path := filepath.Join(tmpDir, "decks", name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// WriteStoryFile writes a story fixture into the config's stories
// directory.
func WriteStoryFile(t *testing.T, tmpDir, name, content string) string {
	t.Helper()
	path := filepath.Join(tmpDir, "stories", name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// SampleDeckYAML is a one-deck fixture in the repository's file format.
const SampleDeckYAML = `- id: animals
  title: Animals
  description: Common animals
  cards:
    - word: chien
      meaning: perro
      context: Le chien dort.
    - word: chat
      meaning: gato
      context: Le chat mange.
`

// SampleStoryYAML is a one-story fixture in the repository's file
// format.
const SampleStoryYAML = `- id: morning
  title: Un matin
  narrator: Claire
  kind: daily-life
  difficulty: beginner
  lines:
    - at: 0s
      text: Je me réveille.
      translation: I wake up.
    - at: 4s
      text: Je bois un café.
      translation: I drink a coffee.
`
