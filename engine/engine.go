// Package engine keeps the set of dictionary words still consistent with
// every guess of one hangman game, and the letter tally over that set.
//
// Each guess outcome triggers one reduction: a single forward pass that reads
// the current generation of candidates, writes the survivors to the next
// generation and tallies them on the way. The next generation only becomes
// readable once it has been completely written.
package engine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/hangman/cache"
	"github.com/domino14/hangman/display"
	"github.com/domino14/hangman/letters"
	"github.com/domino14/hangman/lexicon"
)

var (
	// ErrInvariant marks logic defects. Callers should treat it as fatal.
	ErrInvariant = errors.New("internal invariant violated")
	// ErrNoPassParams is returned by Reduce when SetPassParams was not
	// called since the previous reduction.
	ErrNoPassParams = fmt.Errorf("%w: reduce called without pass params", ErrInvariant)
)

// Result is the state of the candidate set after Setup or a Reduce.
type Result struct {
	Tally letters.Tally
	Size  int
	// Word is the only remaining candidate, set when Size == 1.
	Word string
}

type Engine struct {
	corpus  *lexicon.Corpus
	length  int
	freq    *cache.FrequencyCache
	store   PassStore
	display *display.Display

	source Source
	params *GuessContext
	passes int
}

type Option func(*Engine)

// WithStore overrides the default in-memory pass store.
func WithStore(s PassStore) Option {
	return func(e *Engine) { e.store = s }
}

func WithDisplay(d *display.Display) Option {
	return func(e *Engine) { e.display = d }
}

// New creates the engine for one game with a secret of the given length.
func New(corpus *lexicon.Corpus, length int, freq *cache.FrequencyCache, opts ...Option) *Engine {
	e := &Engine{corpus: corpus, length: length, freq: freq}
	for _, o := range opts {
		o(e)
	}
	if e.store == nil {
		e.store = NewMemoryStore()
	}
	return e
}

func (e *Engine) Length() int {
	return e.length
}

// Passes returns how many reductions have run.
func (e *Engine) Passes() int {
	return e.passes
}

// Setup initializes the candidate set to every corpus word of the secret's
// length. The unfiltered tally is taken from the frequency cache, or
// computed by one scan of the length group and stored there.
func (e *Engine) Setup() (Result, error) {
	e.display.Chatty("Entering setup")
	group := e.corpus.Group(e.length)
	entry, cached, err := e.freq.GetOrCompute(e.length, func() (cache.Entry, error) {
		var b letters.TallyBuilder
		none := letters.NewSet()
		for w := range group {
			b.AddWord(w, none)
		}
		return cache.Entry{Size: b.Words(), Tally: b.Tally()}, nil
	})
	if err != nil {
		return Result{}, err
	}
	e.source = FromSeq(group)
	e.params = nil

	res := Result{Tally: entry.Tally, Size: entry.Size}
	if res.Size == 1 {
		for w := range group {
			res.Word = w
			break
		}
	}
	log.Debug().Int("length", e.length).Int("size", res.Size).Bool("cached", cached).Msg("engine-setup")
	e.display.Chatty("Finished setup")
	return res, nil
}

// SetPassParams records the outcome the next Reduce filters on.
func (e *Engine) SetPassParams(gc GuessContext) {
	e.params = &gc
}

// Reduce applies one filter to the candidate set. After a correct guess it
// keeps the words matching the revealed pattern; after a wrong guess it
// keeps the words without the guessed letter. The tally of the survivors
// ignores excluded letters. A Size of 0 means no dictionary word fits.
func (e *Engine) Reduce() (Result, error) {
	if e.params == nil {
		return Result{}, ErrNoPassParams
	}
	if e.source == nil {
		return Result{}, fmt.Errorf("%w: reduce called before setup", ErrInvariant)
	}
	gc := *e.params
	e.params = nil
	if err := gc.validate(); err != nil {
		return Result{}, err
	}

	keep := gc.Match
	if !gc.LastGuessCorrect {
		keep = Lacks(gc.Guessed)
	}
	excluded := gc.Excluded.Clone()

	w, err := e.store.Next()
	if err != nil {
		return Result{}, err
	}
	var b letters.TallyBuilder
	var last string
	for word, err := range e.source {
		if err != nil {
			w.Abort()
			return Result{}, err
		}
		if !keep(word) {
			continue
		}
		if err := w.Write(word); err != nil {
			w.Abort()
			return Result{}, fmt.Errorf("writing pass %d: %w", e.passes+1, err)
		}
		b.AddWord(word, excluded)
		last = word
	}
	next, err := w.Commit()
	if err != nil {
		return Result{}, err
	}
	e.source = next
	e.passes++

	res := Result{Tally: b.Tally(), Size: b.Words()}
	if res.Size == 1 {
		res.Word = last
	}
	if e.display.IsChatty() {
		e.display.Chatty("pass %d: correct=%v letter=%c pattern=%s size=%d",
			e.passes, gc.LastGuessCorrect, gc.Guessed, gc.Pattern, res.Size)
	}
	if res.Size > 1 && res.Tally.Empty() {
		return res, fmt.Errorf("%w: empty tally with %d candidates", ErrInvariant, res.Size)
	}
	return res, nil
}

// Candidates returns the current generation.
func (e *Engine) Candidates() Source {
	return e.source
}

// Close releases the pass store.
func (e *Engine) Close() error {
	e.source = nil
	return e.store.Close()
}
