package strategy

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/hangman/cache"
	"github.com/domino14/hangman/engine"
	"github.com/domino14/hangman/game"
	"github.com/domino14/hangman/letters"
	"github.com/domino14/hangman/lexicon"
)

type tallyCounts map[byte]int

// tallyFrom builds a tally with the given presence counts over a pool of
// size words.
func tallyFrom(size int, counts tallyCounts) letters.Tally {
	words := make([][]byte, size)
	for l, c := range counts {
		for i := 0; i < c; i++ {
			words[i] = append(words[i], l)
		}
	}
	var b letters.TallyBuilder
	for _, w := range words {
		b.AddWord(string(w), letters.NewSet())
	}
	return b.Tally()
}

func TestSelectLetterLargePool(t *testing.T) {
	is := is.New(t)
	// t leads on raw count but e wins once weighted by English frequency
	l, c, ok := SelectLetter(tallyFrom(100, tallyCounts{'t': 50, 'e': 40, 'a': 10}), 100, 9)
	is.True(ok)
	is.Equal(l, byte('e'))
	is.Equal(c, 40)

	// z never overtakes a clear leader
	l, _, ok = SelectLetter(tallyFrom(100, tallyCounts{'s': 60, 'z': 59}), 100, 9)
	is.True(ok)
	is.Equal(l, byte('s'))

	// only the top two are compared
	l, _, _ = SelectLetter(tallyFrom(100, tallyCounts{'q': 60, 'x': 59, 'e': 58}), 100, 9)
	is.Equal(l, byte('x'))

	// a single tallied letter is picked as is
	l, c, ok = SelectLetter(tallyFrom(20, tallyCounts{'k': 3}), 20, 9)
	is.True(ok)
	is.Equal(l, byte('k'))
	is.Equal(c, 3)
}

func TestSelectLetterSmallPool(t *testing.T) {
	is := is.New(t)
	tally := tallyFrom(6, tallyCounts{'a': 6, 'b': 3, 'c': 2})
	l, c, ok := SelectLetter(tally, 6, 9)
	is.True(ok)
	is.Equal(l, byte('b'))
	is.Equal(c, 3)

	// nothing at or under half, fall back to the overall leader
	l, _, _ = SelectLetter(tallyFrom(6, tallyCounts{'a': 6, 'b': 5}), 6, 9)
	is.Equal(l, byte('a'))

	// odd sizes round half down
	l, _, _ = SelectLetter(tallyFrom(5, tallyCounts{'a': 3, 'b': 2}), 5, 9)
	is.Equal(l, byte('b'))

	// equal counts resolve alphabetically
	l, _, _ = SelectLetter(tallyFrom(4, tallyCounts{'m': 1, 'b': 1, 'r': 4}), 4, 9)
	is.Equal(l, byte('b'))

	// the threshold is configurable
	l, _, _ = SelectLetter(tallyFrom(6, tallyCounts{'a': 6, 'b': 3}), 6, 5)
	is.Equal(l, byte('a'))
}

func TestSelectLetterEmpty(t *testing.T) {
	is := is.New(t)
	_, _, ok := SelectLetter(letters.Tally{}, 5, 9)
	is.True(!ok)
}

func TestSelectLetterDeterministic(t *testing.T) {
	is := is.New(t)
	tally := tallyFrom(40, tallyCounts{'a': 20, 'e': 20, 'i': 20, 'o': 20, 'u': 20})
	first, _, _ := SelectLetter(tally, 40, 9)
	for range 50 {
		l, _, _ := SelectLetter(tally, 40, 9)
		is.Equal(l, first)
	}
	is.Equal(first, byte('e'))
}

func TestEnglishFrequency(t *testing.T) {
	is := is.New(t)
	is.Equal(EnglishFrequency('e'), 12.702)
	is.Equal(EnglishFrequency('z'), 0.074)
	is.Equal(EnglishFrequency('!'), 0.0)
}

func newStrategy(t *testing.T, g *game.Game, words []string) *LetterStrategy {
	t.Helper()
	c := lexicon.NewCorpus("test", words)
	e := engine.New(c, g.SecretLength(), cache.NewFrequencyCache())
	t.Cleanup(func() { e.Close() })
	s, err := New(g, e)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func play(t *testing.T, g *game.Game, s *LetterStrategy) ([]string, error) {
	t.Helper()
	var guesses []string
	for g.Status() == game.StatusKeepGuessing {
		guess, err := s.NextGuess(g)
		if err != nil {
			return guesses, err
		}
		guesses = append(guesses, guess.String())
		if err := guess.Apply(g); err != nil {
			t.Fatal(err)
		}
	}
	return guesses, nil
}

var corpus = []string{"care", "core", "bore", "more"}

func TestPlayToForcedWord(t *testing.T) {
	is := is.New(t)
	g := game.NewGame("bore", 5)
	s := newStrategy(t, g, corpus)
	is.Equal(s.Size(), 4)

	guesses, err := play(t, g, s)
	is.NoErr(err)
	is.Equal(guesses, []string{"GuessLetter[c]", "GuessLetter[b]", "GuessWord[bore]"})
	is.Equal(g.Status(), game.StatusWon)
	is.Equal(g.Score(), 2)
	is.Equal(s.Guessed().String(), "bc")
}

func TestPlayCorrectFirstGuess(t *testing.T) {
	is := is.New(t)
	g := game.NewGame("care", 5)
	s := newStrategy(t, g, corpus)
	guesses, err := play(t, g, s)
	is.NoErr(err)
	is.Equal(guesses, []string{"GuessLetter[c]", "GuessLetter[a]", "GuessWord[care]"})
	is.Equal(g.Status(), game.StatusWon)
}

func TestPlayUnknownWordExhausts(t *testing.T) {
	is := is.New(t)
	g := game.NewGame("zzzz", 5)
	s := newStrategy(t, g, corpus)
	guesses, err := play(t, g, s)
	is.True(errors.Is(err, ErrCandidatesExhausted))
	is.Equal(guesses, []string{"GuessLetter[c]", "GuessLetter[b]", "GuessWord[more]"})
	is.Equal(g.Status(), game.StatusKeepGuessing)
}

func TestPlayNoWordsOfLength(t *testing.T) {
	is := is.New(t)
	g := game.NewGame("ab", 5)
	s := newStrategy(t, g, corpus)
	_, err := s.NextGuess(g)
	is.True(errors.Is(err, ErrCandidatesExhausted))
}

func TestPlayWrongPatternExhausts(t *testing.T) {
	is := is.New(t)
	// "cart" shares c with the corpus, then nothing fits
	g := game.NewGame("cart", 5)
	s := newStrategy(t, g, corpus)
	guesses, err := play(t, g, s)
	is.True(errors.Is(err, ErrCandidatesExhausted))
	is.Equal(guesses[0], "GuessLetter[c]")
}

// overrideParams feeds the engine a fixed outcome instead of the one the
// strategy computed.
type overrideParams struct {
	*engine.Engine
	gc engine.GuessContext
}

func (o overrideParams) SetPassParams(engine.GuessContext) {
	o.Engine.SetPassParams(o.gc)
}

func TestNextGuessReturnsEngineInvariantError(t *testing.T) {
	is := is.New(t)
	g := game.NewGame("abab", 5)
	e := engine.New(lexicon.NewCorpus("test", []string{"abab", "baba", "aabb"}), 4, cache.NewFrequencyCache())
	t.Cleanup(func() { e.Close() })
	// every letter of every candidate excluded, and the candidates all lack c
	r := overrideParams{Engine: e, gc: engine.NewGuessContext(false, 'c', "----", letters.NewSet('a', 'b', 'c'))}
	s, err := New(g, r)
	is.NoErr(err)

	guess, err := s.NextGuess(g)
	is.NoErr(err)
	is.NoErr(guess.Apply(g))

	guess, err = s.NextGuess(g)
	is.True(errors.Is(err, engine.ErrInvariant))
	is.True(!errors.Is(err, ErrCandidatesExhausted))
	is.Equal(guess, nil)
}
