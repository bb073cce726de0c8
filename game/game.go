// Package game tracks the state of a single hangman game: the secret, the
// revealed pattern, the guesses made and the resulting score.
package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/hangman/letters"
)

// MysteryLetter marks a letter of the secret that is not yet revealed.
const MysteryLetter = '-'

// LostScore is the score of a lost game.
const LostScore = 25

var ErrGameOver = errors.New("cannot keep guessing in current game state")

type Status int

const (
	StatusWon Status = iota
	StatusLost
	StatusKeepGuessing
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "GAME_WON"
	case StatusLost:
		return "GAME_LOST"
	case StatusKeepGuessing:
		return "KEEP_GUESSING"
	}
	return "UNKNOWN"
}

// State is the view of a game a guesser needs: it can read the pattern and
// the remaining wrong-guess budget, and apply guesses.
type State interface {
	GuessedSoFar() string
	NumWrongGuessesRemaining() int
	GuessLetter(l byte) error
	GuessWord(w string) error
}

type Game struct {
	secret       string
	maxWrong     int
	guessedSoFar []byte
	correct      letters.Set
	incorrect    letters.Set
	wrongWords   map[string]struct{}
	guesses      int
}

// NewGame starts a game. A game is lost once more than maxWrong wrong
// guesses have been made.
func NewGame(secret string, maxWrong int) *Game {
	g := &Game{
		secret:       strings.ToUpper(secret),
		maxWrong:     maxWrong,
		guessedSoFar: []byte(strings.Repeat(string(MysteryLetter), len(secret))),
		correct:      letters.NewSet(),
		incorrect:    letters.NewSet(),
		wrongWords:   make(map[string]struct{}),
	}
	return g
}

func (g *Game) canKeepGuessing() error {
	if st := g.Status(); st != StatusKeepGuessing {
		return fmt.Errorf("%w %v", ErrGameOver, st)
	}
	return nil
}

// GuessLetter reveals every occurrence of l in the secret, or records a
// wrong guess.
func (g *Game) GuessLetter(l byte) error {
	if err := g.canKeepGuessing(); err != nil {
		return err
	}
	lower := l | 0x20
	if _, ok := letters.Index(lower); !ok {
		return fmt.Errorf("not a letter: %q", l)
	}
	upper := lower - 0x20
	g.guesses++
	good := false
	for i := 0; i < len(g.secret); i++ {
		if g.secret[i] == upper {
			g.guessedSoFar[i] = upper
			good = true
		}
	}
	if good {
		g.correct.Add(lower)
	} else {
		g.incorrect.Add(lower)
	}
	return nil
}

// GuessWord reveals the whole secret if w is it, or records a wrong guess.
func (g *Game) GuessWord(w string) error {
	if err := g.canKeepGuessing(); err != nil {
		return err
	}
	g.guesses++
	w = strings.ToUpper(w)
	if w == g.secret {
		copy(g.guessedSoFar, g.secret)
	} else {
		g.wrongWords[w] = struct{}{}
	}
	return nil
}

func (g *Game) Status() Status {
	switch {
	case g.secret == string(g.guessedSoFar):
		return StatusWon
	case g.NumWrongGuessesMade() > g.maxWrong:
		return StatusLost
	}
	return StatusKeepGuessing
}

// Score is the number of wrong guesses plus distinct correct letters, or
// LostScore for a lost game.
func (g *Game) Score() int {
	if g.Status() == StatusLost {
		return LostScore
	}
	return g.NumWrongGuessesMade() + g.correct.Len()
}

func (g *Game) NumWrongGuessesMade() int {
	return g.incorrect.Len() + len(g.wrongWords)
}

func (g *Game) NumWrongGuessesRemaining() int {
	return g.maxWrong - g.NumWrongGuessesMade()
}

func (g *Game) MaxWrongGuesses() int {
	return g.maxWrong
}

// GuessedSoFar returns the revealed pattern, upper case, with MysteryLetter
// at unrevealed positions.
func (g *Game) GuessedSoFar() string {
	return string(g.guessedSoFar)
}

// Guesses is the number of guesses applied, letters and words.
func (g *Game) Guesses() int {
	return g.guesses
}

func (g *Game) SecretLength() int {
	return len(g.secret)
}

func (g *Game) Secret() string {
	return g.secret
}

func (g *Game) CorrectlyGuessedLetters() letters.Set {
	return g.correct.Clone()
}

func (g *Game) IncorrectlyGuessedLetters() letters.Set {
	return g.incorrect.Clone()
}

func (g *Game) String() string {
	return fmt.Sprintf("%s; score=%d; status=%v", g.GuessedSoFar(), g.Score(), g.Status())
}

var _ State = (*Game)(nil)
