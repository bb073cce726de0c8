// Package strategy decides each hangman guess from the state of the
// candidate engine.
package strategy

import (
	"slices"

	"github.com/samber/lo"

	"github.com/domino14/hangman/letters"
)

// DefaultSmallPoolSize is the candidate count at or below which the
// small-pool rule applies.
const DefaultSmallPoolSize = 9

// englishLetterFrequency is the relative frequency, in percent, of each
// letter in English text.
var englishLetterFrequency = [letters.AlphabetSize]float64{
	8.167, 1.492, 2.782, 4.253, 12.702, 2.228, 2.015, 6.094, 6.966, 0.153,
	0.772, 4.025, 2.406, 6.749, 7.507, 1.929, 0.095, 5.987, 6.327, 9.056,
	2.758, 0.978, 2.360, 0.150, 1.974, 0.074,
}

// EnglishFrequency returns the percent frequency of l in English text.
func EnglishFrequency(l byte) float64 {
	i, ok := letters.Index(l)
	if !ok {
		return 0
	}
	return englishLetterFrequency[i]
}

type letterCount struct {
	letter byte
	count  int
}

// ranked orders the tallied letters by count, highest first. Equal counts
// are ordered alphabetically.
func ranked(t letters.Tally) []letterCount {
	lcs := lo.Map(t.Letters(), func(l byte, _ int) letterCount {
		return letterCount{letter: l, count: t.Count(l)}
	})
	slices.SortStableFunc(lcs, func(a, b letterCount) int {
		return b.count - a.count
	})
	return lcs
}

// SelectLetter picks the next letter to guess from tally t over a candidate
// set of the given size.
//
// For pools larger than small, the two most frequent letters are compared
// after weighting each count by 1 + its English frequency; the runner-up
// only wins when its weighted score is strictly higher.
//
// For small pools, letters present in more than half of the candidates tell
// us little, so the most frequent letter present in at most half of them is
// preferred, falling back to the most frequent letter overall.
func SelectLetter(t letters.Tally, size, small int) (byte, int, bool) {
	lcs := ranked(t)
	if len(lcs) == 0 {
		return 0, 0, false
	}
	if size > small {
		best := lcs[0]
		if len(lcs) > 1 {
			second := lcs[1]
			x1 := (1 + EnglishFrequency(best.letter)) * float64(best.count)
			x2 := (1 + EnglishFrequency(second.letter)) * float64(second.count)
			if x2 > x1 {
				best = second
			}
		}
		return best.letter, best.count, true
	}
	half := size / 2
	pool := lo.Filter(lcs, func(lc letterCount, _ int) bool {
		return lc.count <= half
	})
	if len(pool) == 0 {
		pool = lcs
	}
	return pool[0].letter, pool[0].count, true
}
