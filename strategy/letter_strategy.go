package strategy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/hangman/display"
	"github.com/domino14/hangman/engine"
	"github.com/domino14/hangman/game"
	"github.com/domino14/hangman/letters"
)

// ErrCandidatesExhausted means no dictionary word is consistent with the
// guesses so far. It ends the game, not the run.
var ErrCandidatesExhausted = errors.New("game over, exhausted all words, word not in dictionary")

// View is the part of a game the strategy reads.
type View interface {
	GuessedSoFar() string
	NumWrongGuessesRemaining() int
}

// Reducer is the candidate-set engine a strategy drives. *engine.Engine
// implements it.
type Reducer interface {
	Setup() (engine.Result, error)
	SetPassParams(gc engine.GuessContext)
	Reduce() (engine.Result, error)
}

var _ Reducer = (*engine.Engine)(nil)

// LetterStrategy plays one game. It feeds the outcome of each guess to the
// engine and picks the next guess from the reduced candidate set.
type LetterStrategy struct {
	engine    Reducer
	display   *display.Display
	smallPool int

	wrongRemaining  int
	lastGuess       game.Guess
	guessed         letters.Set
	tally           letters.Tally
	size            int
	lastWord        string
	guessedLastWord bool
}

type Option func(*LetterStrategy)

func WithSmallPoolSize(n int) Option {
	return func(s *LetterStrategy) { s.smallPool = n }
}

func WithDisplay(d *display.Display) Option {
	return func(s *LetterStrategy) { s.display = d }
}

// New sets up the engine and takes the initial tally from it.
func New(view View, eng Reducer, opts ...Option) (*LetterStrategy, error) {
	s := &LetterStrategy{
		engine:         eng,
		smallPool:      DefaultSmallPoolSize,
		wrongRemaining: view.NumWrongGuessesRemaining(),
		guessed:        letters.NewSet(),
	}
	for _, o := range opts {
		o(s)
	}
	res, err := eng.Setup()
	if err != nil {
		return nil, err
	}
	s.adopt(res)
	return s, nil
}

func (s *LetterStrategy) adopt(res engine.Result) {
	s.tally = res.Tally
	s.size = res.Size
	s.lastWord = res.Word
}

// Size is the current number of candidates.
func (s *LetterStrategy) Size() int {
	return s.size
}

func (s *LetterStrategy) Tally() letters.Tally {
	return s.tally
}

// Guessed returns a copy of the letters guessed so far.
func (s *LetterStrategy) Guessed() letters.Set {
	return s.guessed.Clone()
}

// NextGuess updates the candidate set with the outcome of the previous
// guess and returns the next one.
func (s *LetterStrategy) NextGuess(view View) (game.Guess, error) {
	if s.lastGuess != nil {
		pattern := strings.ToLower(view.GuessedSoFar())
		correct := s.checkLastGuess(view)
		if lg, ok := s.lastGuess.(game.LetterGuess); ok {
			s.engine.SetPassParams(engine.NewGuessContext(correct, lg.Letter, pattern, s.guessed.Clone()))
			res, err := s.engine.Reduce()
			if err != nil {
				return nil, err
			}
			s.adopt(res)
		}
	}
	s.display.Chatty("All guessed letters so far are %s", view.GuessedSoFar())

	var guess game.Guess
	switch {
	case s.size == 0:
		return nil, ErrCandidatesExhausted
	case s.size == 1:
		if s.guessedLastWord {
			return nil, ErrCandidatesExhausted
		}
		guess = game.WordGuess{Word: s.lastWord}
		s.guessedLastWord = true
	default:
		l, count, ok := SelectLetter(s.tally, s.size, s.smallPool)
		if !ok {
			return nil, fmt.Errorf("%w: no letter to guess among %d candidates", engine.ErrInvariant, s.size)
		}
		if s.display.IsChatty() {
			s.display.Chatty("letter counts are %v", s.tally)
			s.display.Chatty("letter is %c, counts is %d, pass_size is %d", l, count, s.size)
		}
		log.Trace().Str("letter", string(l)).Int("count", count).Int("size", s.size).Msg("selected")
		s.guessed.Add(l)
		guess = game.LetterGuess{Letter: l}
	}
	s.lastGuess = guess
	s.display.Normal("%v", guess)
	return guess, nil
}

// checkLastGuess infers whether the previous guess was right from the
// wrong-guess budget: it only shrinks on a wrong guess.
func (s *LetterStrategy) checkLastGuess(view View) bool {
	remaining := view.NumWrongGuessesRemaining()
	if remaining == s.wrongRemaining {
		s.display.Chatty("<Correct guess>")
		return true
	}
	s.wrongRemaining = remaining
	s.display.Chatty("<Wrong guess>")
	return false
}
