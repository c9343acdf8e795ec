package story

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/lexi-app/lexi/internal/speech"
)

func testStory() Story {
	return Story{
		ID:       "test-story",
		Title:    "Histoire de test",
		Narrator: "Marie",
		Lines: []Line{
			{At: 0, Text: "Bonjour.", Translation: "Hola."},
			{At: 8 * time.Second, Text: "Il fait beau.", Translation: "Hace buen tiempo."},
			{At: 15 * time.Second, Text: "Au revoir.", Translation: "Adiós."},
		},
	}
}

func TestNewRepository_FallsBackToEmbeddedStories(t *testing.T) {
	repo, err := NewRepository(t.TempDir())
	require.NoError(t, err)

	stories := repo.Stories()
	require.NotEmpty(t, stories)
	for _, s := range stories {
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.Lines)
	}

	first, err := repo.Story(stories[0].ID)
	require.NoError(t, err)
	assert.Equal(t, stories[0].Title, first.Title)

	_, err = repo.Story("missing")
	assert.Error(t, err)
}

func TestNewRepository_FromDirectory(t *testing.T) {
	dir := t.TempDir()
	content := `- id: courte
  title: Une histoire courte
  narrator: Jean
  kind: story
  difficulty: beginner
  lines:
    - at: 0s
      text: Premier segment.
      translation: Primer segmento.
    - at: 6s
      text: Deuxième segment.
      translation: Segundo segmento.
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "courte.yml"), []byte(content), 0644))

	repo, err := NewRepository(dir)
	require.NoError(t, err)

	s, err := repo.Story("courte")
	require.NoError(t, err)
	require.Len(t, s.Lines, 2)
	assert.Equal(t, 6*time.Second, s.Lines[1].At)
	assert.Equal(t, "Deuxième segment.", s.Lines[1].Text)
}

func TestLine_UnmarshalYAML_InvalidOffset(t *testing.T) {
	dir := t.TempDir()
	content := `- id: broken
  title: Broken
  lines:
    - at: not-a-duration
      text: Oups.
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yml"), []byte(content), 0644))

	_, err := NewRepository(dir)
	assert.Error(t, err)
}

func TestPlayer_LineFor(t *testing.T) {
	player := NewPlayer(testStory(), speech.NullSynthesizer{}, language.French, 1.0)

	tests := []struct {
		name     string
		position time.Duration
		want     int
	}{
		{name: "start of narration", position: 0, want: 0},
		{name: "middle of first line", position: 5 * time.Second, want: 0},
		{name: "second line boundary", position: 8 * time.Second, want: 1},
		{name: "past the last line", position: time.Minute, want: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, player.LineFor(tc.position))
		})
	}

	empty := NewPlayer(Story{}, speech.NullSynthesizer{}, language.French, 1.0)
	assert.Equal(t, -1, empty.LineFor(0))
}

func TestPlayer_PlayNarratesEveryLine(t *testing.T) {
	player := NewPlayer(testStory(), speech.NullSynthesizer{}, language.French, 0.8)

	var narrated []int
	err := player.Play(context.Background(), func(index int, line Line) {
		narrated = append(narrated, index)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, narrated)
	assert.Equal(t, 2, player.CurrentLine())
}

func TestPlayer_PlayStopsOnCanceledContext(t *testing.T) {
	player := NewPlayer(testStory(), speech.NullSynthesizer{}, language.French, 1.0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := player.Play(ctx, nil)
	assert.Error(t, err)
}

func TestPlayer_Skip(t *testing.T) {
	player := NewPlayer(testStory(), speech.NullSynthesizer{}, language.French, 1.0)

	player.SkipForward()
	assert.Equal(t, 1, player.CurrentLine())

	player.SkipForward()
	player.SkipForward() // clamped at the last line
	assert.Equal(t, 2, player.CurrentLine())

	player.SkipBack()
	assert.Equal(t, 1, player.CurrentLine())

	player.SkipBack()
	player.SkipBack() // clamped at the first line
	assert.Equal(t, 0, player.CurrentLine())
}

func TestPlayer_PlayLineAndAdvance(t *testing.T) {
	player := NewPlayer(testStory(), speech.NullSynthesizer{}, language.French, 1.0)

	var narrated []int
	err := player.PlayLine(context.Background(), func(index int, line Line) {
		narrated = append(narrated, index)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, narrated)
	assert.Equal(t, 0, player.CurrentLine())

	assert.True(t, player.Advance())
	assert.True(t, player.Advance())
	assert.False(t, player.Advance()) // already on the last line
	assert.Equal(t, 2, player.CurrentLine())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, player.PlayLine(ctx, nil))
}

type rateRecordingSynthesizer struct {
	speech.NullSynthesizer
	rates []float64
}

func (r *rateRecordingSynthesizer) Speak(_ context.Context, _ string, opts speech.Options) error {
	r.rates = append(r.rates, opts.Rate)
	return nil
}

func TestPlayer_SetRateAppliesToNextLine(t *testing.T) {
	synth := &rateRecordingSynthesizer{}
	player := NewPlayer(testStory(), synth, language.French, 1.0)

	require.NoError(t, player.PlayLine(context.Background(), nil))
	player.SetRate(0.5)
	player.Advance()
	require.NoError(t, player.PlayLine(context.Background(), nil))

	assert.Equal(t, []float64{1.0, 0.5}, synth.rates)
}
