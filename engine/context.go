package engine

import (
	"fmt"

	"github.com/domino14/hangman/letters"
)

// MysteryLetter marks a position of the pattern that is not yet revealed.
const MysteryLetter = '-'

// Predicate decides whether a candidate word survives a reduction.
type Predicate func(word string) bool

// GuessContext describes the outcome of the previous guess. It is built
// fresh for every reduction and not modified afterwards.
type GuessContext struct {
	LastGuessCorrect bool
	// Guessed is the letter the previous turn guessed.
	Guessed byte
	// Pattern is the revealed word so far, lowercase, with MysteryLetter in
	// unrevealed positions.
	Pattern string
	// PatternTally counts occurrences of each revealed letter in Pattern.
	PatternTally map[byte]int
	Match        Predicate
	// Excluded holds every letter guessed so far, right or wrong.
	Excluded letters.Set
}

// NewGuessContext fills in the derived fields from the pattern.
func NewGuessContext(correct bool, guessed byte, pattern string, excluded letters.Set) GuessContext {
	return GuessContext{
		LastGuessCorrect: correct,
		Guessed:          guessed,
		Pattern:          pattern,
		PatternTally:     PatternTally(pattern, MysteryLetter),
		Match:            MatchPattern(pattern, MysteryLetter, excluded),
		Excluded:         excluded,
	}
}

func (gc GuessContext) validate() error {
	if _, ok := letters.Index(gc.Guessed); !ok {
		return fmt.Errorf("%w: guessed symbol %q is not a letter", ErrInvariant, gc.Guessed)
	}
	if gc.LastGuessCorrect && gc.Match == nil {
		return fmt.Errorf("%w: correct guess without a match predicate", ErrInvariant)
	}
	return nil
}

// PatternTally counts the revealed letters of a pattern.
func PatternTally(pattern string, mystery byte) map[byte]int {
	t := make(map[byte]int)
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != mystery {
			t[pattern[i]]++
		}
	}
	return t
}

// MatchPattern returns a predicate accepting words of the pattern's length
// where every revealed position holds the revealed letter, and every
// mystery position holds a letter not in excluded.
func MatchPattern(pattern string, mystery byte, excluded letters.Set) Predicate {
	excluded = excluded.Clone()
	return func(word string) bool {
		if len(word) != len(pattern) {
			return false
		}
		for i := 0; i < len(pattern); i++ {
			if pattern[i] == mystery {
				if excluded.Has(word[i]) {
					return false
				}
			} else if pattern[i] != word[i] {
				return false
			}
		}
		return true
	}
}

// Lacks returns a predicate accepting words that do not contain l.
func Lacks(l byte) Predicate {
	return func(word string) bool {
		for i := 0; i < len(word); i++ {
			if word[i] == l {
				return false
			}
		}
		return true
	}
}
