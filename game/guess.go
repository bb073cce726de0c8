package game

import "fmt"

// Guess is either a letter or a whole word.
type Guess interface {
	Apply(s State) error
	fmt.Stringer
}

type LetterGuess struct {
	Letter byte
}

func (g LetterGuess) Apply(s State) error {
	return s.GuessLetter(g.Letter)
}

func (g LetterGuess) String() string {
	return "GuessLetter[" + string(g.Letter) + "]"
}

type WordGuess struct {
	Word string
}

func (g WordGuess) Apply(s State) error {
	return s.GuessWord(g.Word)
}

func (g WordGuess) String() string {
	return "GuessWord[" + g.Word + "]"
}
