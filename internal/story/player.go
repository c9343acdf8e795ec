package story

import (
	"context"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/lexi-app/lexi/internal/speech"
)

// Player narrates a story line by line and keeps the transcript in
// sync: the line whose offset most recently passed is the highlighted
// one.
type Player struct {
	story Story
	synth speech.Synthesizer

	mu      sync.Mutex
	lang    language.Tag
	rate    float64
	line    int
	playing bool
}

// NewPlayer prepares a stopped player at the first line.
func NewPlayer(s Story, synth speech.Synthesizer, lang language.Tag, rate float64) *Player {
	if rate <= 0 {
		rate = 1.0
	}
	return &Player{
		story: s,
		synth: synth,
		lang:  lang,
		rate:  rate,
	}
}

// LineFor returns the index of the transcript line active at the
// given playback position: the last line whose offset has passed.
// It returns -1 for an empty transcript.
func (p *Player) LineFor(position time.Duration) int {
	active := -1
	for index, line := range p.story.Lines {
		if line.At > position {
			break
		}
		active = index
	}
	if active == -1 && len(p.story.Lines) > 0 {
		active = 0
	}
	return active
}

// CurrentLine returns the highlighted transcript index.
func (p *Player) CurrentLine() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.story.Lines) == 0 {
		return -1
	}
	return p.line
}

// SetRate adjusts the narration speed for subsequent lines.
func (p *Player) SetRate(rate float64) {
	if rate <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rate = rate
}

// SkipForward advances the highlight by one line without narrating it.
func (p *Player) SkipForward() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.line < len(p.story.Lines)-1 {
		p.line++
	}
}

// SkipBack moves the highlight back one line.
func (p *Player) SkipBack() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.line > 0 {
		p.line--
	}
}

// PlayLine narrates only the highlighted line, invoking onLine before
// narration starts. Narration failures are ignored the same way Play
// ignores them.
func (p *Player) PlayLine(ctx context.Context, onLine func(index int, line Line)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	if len(p.story.Lines) == 0 {
		p.mu.Unlock()
		return nil
	}
	index := p.line
	lang, rate := p.lang, p.rate
	p.mu.Unlock()

	line := p.story.Lines[index]
	if onLine != nil {
		onLine(index, line)
	}
	_ = p.synth.Speak(ctx, line.Text, speech.Options{Language: lang, Rate: rate})
	return nil
}

// Advance moves the highlight to the next line. It reports false once
// the final line is the highlighted one.
func (p *Player) Advance() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.line >= len(p.story.Lines)-1 {
		return false
	}
	p.line++
	return true
}

// Play narrates from the current line to the end, invoking onLine as
// each line becomes the highlighted one. It returns early when the
// context is canceled; narration failures do not stop playback.
func (p *Player) Play(ctx context.Context, onLine func(index int, line Line)) error {
	p.mu.Lock()
	if p.playing {
		p.mu.Unlock()
		return nil
	}
	p.playing = true
	start := p.line
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.playing = false
		p.mu.Unlock()
	}()

	for index := start; index < len(p.story.Lines); index++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.mu.Lock()
		p.line = index
		lang, rate := p.lang, p.rate
		p.mu.Unlock()

		line := p.story.Lines[index]
		if onLine != nil {
			onLine(index, line)
		}
		_ = p.synth.Speak(ctx, line.Text, speech.Options{Language: lang, Rate: rate})
	}
	return nil
}

// Stop cancels the in-flight narration.
func (p *Player) Stop() {
	p.synth.Stop()
}
