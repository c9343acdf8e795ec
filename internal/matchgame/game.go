// Package matchgame implements the word-pair matching drill: two
// columns per page, one drag-style pairing attempt at a time, graded
// instantly.
package matchgame

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"
)

var (
	// ErrAttemptInFlight is returned while a previous attempt's
	// feedback window is still open.
	ErrAttemptInFlight = errors.New("an attempt is already being graded")
	// ErrAlreadyMatched is returned when either word of the attempt is
	// already completed.
	ErrAlreadyMatched = errors.New("word is already matched")
	// ErrNotOnPage is returned when an attempt references a word
	// outside the current page.
	ErrNotOnPage = errors.New("word is not on the current page")
	// ErrGameFinished is returned for attempts after the last page.
	ErrGameFinished = errors.New("game is finished")
)

// Pair couples a target-language word with its native translation.
type Pair struct {
	ID     uuid.UUID
	Target string
	Native string
}

// Config holds the matching game's paging and scoring knobs.
type Config struct {
	PageSize       int
	ScoreIncrement int
	XPReward       int
	XPPenalty      int
}

// DefaultConfig returns the shipped tuning.
func DefaultConfig() Config {
	return Config{
		PageSize:       5,
		ScoreIncrement: 10,
		XPReward:       10,
		XPPenalty:      2,
	}
}

// Result is the outcome of one pairing attempt.
type Result struct {
	Correct      bool
	PageComplete bool
}

// Hooks observe game-level side effects.
type Hooks struct {
	OnComplete func()
}

// Page is one fixed-size window over the word list. Targets keep their
// natural order; natives are independently permuted so the matching is
// non-trivial.
type Page struct {
	Index   int
	Count   int
	Targets []Pair
	Natives []Pair
}

// Game holds the state of one matching session. It is event-driven and
// expects to be called from a single goroutine.
type Game struct {
	cfg   Config
	hooks Hooks

	pairs  []Pair
	orders [][]int // per-page permutation of the native column

	page       int
	completed  map[uuid.UUID]bool
	matches    map[uuid.UUID]uuid.UUID
	inFlight   bool
	finished   bool
	celebrated bool

	score        int
	xp           int
	streak       int
	correctCount int
	errorCount   int
}

// NewGame precomputes every page's native-column shuffle order so that
// page transitions need no further randomness.
func NewGame(pairs []Pair, cfg Config, rng *rand.Rand, hooks Hooks) *Game {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultConfig().PageSize
	}

	pageCount := (len(pairs) + cfg.PageSize - 1) / cfg.PageSize
	orders := make([][]int, pageCount)
	for page := 0; page < pageCount; page++ {
		size := cfg.PageSize
		if remaining := len(pairs) - page*cfg.PageSize; remaining < size {
			size = remaining
		}
		order := make([]int, size)
		for i := range order {
			order[i] = i
		}
		for i := size - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			order[i], order[j] = order[j], order[i]
		}
		orders[page] = order
	}

	return &Game{
		cfg:       cfg,
		hooks:     hooks,
		pairs:     pairs,
		orders:    orders,
		completed: make(map[uuid.UUID]bool),
		matches:   make(map[uuid.UUID]uuid.UUID),
	}
}

// CurrentPage returns the page in play.
func (g *Game) CurrentPage() Page {
	targets := g.pagePairs(g.page)
	order := g.orders[g.page]
	natives := make([]Pair, len(targets))
	for i, j := range order {
		natives[i] = targets[j]
	}
	return Page{
		Index:   g.page,
		Count:   len(g.orders),
		Targets: targets,
		Natives: natives,
	}
}

func (g *Game) pagePairs(page int) []Pair {
	start := page * g.cfg.PageSize
	end := start + g.cfg.PageSize
	if end > len(g.pairs) {
		end = len(g.pairs)
	}
	return g.pairs[start:end]
}

// Attempt grades dropping the native word of nativeID onto the target
// word of targetID. Completed words cannot be re-matched, and one
// attempt at a time is graded: further drops are rejected until
// AcknowledgeFeedback closes the feedback window.
func (g *Game) Attempt(targetID, nativeID uuid.UUID) (Result, error) {
	if g.finished {
		return Result{}, ErrGameFinished
	}
	if g.inFlight {
		return Result{}, ErrAttemptInFlight
	}

	target, okTarget := g.findOnPage(targetID)
	native, okNative := g.findOnPage(nativeID)
	if !okTarget || !okNative {
		return Result{}, ErrNotOnPage
	}
	if g.completed[native.ID] || g.matches[target.ID] != uuid.Nil {
		return Result{}, ErrAlreadyMatched
	}

	g.inFlight = true

	correct := target.Native == native.Native
	if correct {
		g.matches[target.ID] = native.ID
		g.completed[native.ID] = true
		g.score += g.cfg.ScoreIncrement
		g.xp += g.cfg.XPReward
		g.streak++
		g.correctCount++
	} else {
		g.errorCount++
		g.streak = 0
		g.xp -= g.cfg.XPPenalty
		if g.xp < 0 {
			g.xp = 0
		}
	}

	return Result{
		Correct:      correct,
		PageComplete: g.pageComplete(),
	}, nil
}

// AcknowledgeFeedback closes the transient feedback window opened by
// the previous attempt.
func (g *Game) AcknowledgeFeedback() {
	g.inFlight = false
}

func (g *Game) findOnPage(id uuid.UUID) (Pair, bool) {
	for _, pair := range g.pagePairs(g.page) {
		if pair.ID == id {
			return pair, true
		}
	}
	return Pair{}, false
}

func (g *Game) pageComplete() bool {
	for _, pair := range g.pagePairs(g.page) {
		if !g.completed[pair.ID] {
			return false
		}
	}
	return true
}

// PageComplete reports whether every native word on the current page
// has a recorded match.
func (g *Game) PageComplete() bool {
	return g.pageComplete()
}

// AdvancePage moves to the next page once the current one is complete.
// On the last page it flags the whole game finished instead and fires
// the celebration hook exactly once.
func (g *Game) AdvancePage() error {
	if g.finished {
		return ErrGameFinished
	}
	if !g.pageComplete() {
		return errors.New("current page is not complete")
	}

	if g.page+1 < len(g.orders) {
		g.page++
		return nil
	}

	g.finished = true
	if !g.celebrated {
		g.celebrated = true
		if g.hooks.OnComplete != nil {
			g.hooks.OnComplete()
		}
	}
	return nil
}

// Matched reports whether the native side of the pair is completed.
func (g *Game) Matched(id uuid.UUID) bool { return g.completed[id] }

// TargetMatched reports whether the target side of the pair has a
// recorded match. With duplicate native words the two sides complete
// independently, so the columns track their own maps.
func (g *Game) TargetMatched(id uuid.UUID) bool { return g.matches[id] != uuid.Nil }

// Finished reports whether every page has been completed.
func (g *Game) Finished() bool { return g.finished }

// Score returns the accumulated score.
func (g *Game) Score() int { return g.score }

// XP returns the session XP counter.
func (g *Game) XP() int { return g.xp }

// Streak returns the current correct streak.
func (g *Game) Streak() int { return g.streak }

// CorrectCount returns the number of correct attempts.
func (g *Game) CorrectCount() int { return g.correctCount }

// ErrorCount returns the number of incorrect attempts.
func (g *Game) ErrorCount() int { return g.errorCount }

// TotalPairs returns the number of pairs in the game.
func (g *Game) TotalPairs() int { return len(g.pairs) }

// MatchedCount returns how many pairs are completed so far.
func (g *Game) MatchedCount() int { return len(g.completed) }
