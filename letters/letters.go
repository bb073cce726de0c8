// Package letters holds the small value types shared by the corpus, the
// candidate engine and the strategy: a letter set and an immutable letter
// tally over the lowercase latin alphabet.
package letters

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// AlphabetSize is the number of distinct letters a word may contain.
const AlphabetSize = 26

// Index returns the 0-based alphabet index of a lowercase letter.
func Index(b byte) (int, bool) {
	if b < 'a' || b > 'z' {
		return 0, false
	}
	return int(b - 'a'), true
}

// Letter is the inverse of Index.
func Letter(i int) byte {
	return byte('a' + i)
}

// WellFormed reports whether w is non-empty and consists only of a..z.
func WellFormed(w string) bool {
	if len(w) == 0 {
		return false
	}
	for i := 0; i < len(w); i++ {
		if _, ok := Index(w[i]); !ok {
			return false
		}
	}
	return true
}

// Set is a set of letters. The zero value is not usable; use NewSet.
type Set struct {
	bits *bitset.BitSet
}

func NewSet(ls ...byte) Set {
	s := Set{bits: bitset.New(AlphabetSize)}
	for _, l := range ls {
		s.Add(l)
	}
	return s
}

// Add inserts l; anything outside a..z is ignored.
func (s Set) Add(l byte) {
	if i, ok := Index(l); ok {
		s.bits.Set(uint(i))
	}
}

func (s Set) Has(l byte) bool {
	i, ok := Index(l)
	if !ok || s.bits == nil {
		return false
	}
	return s.bits.Test(uint(i))
}

func (s Set) Len() int {
	if s.bits == nil {
		return 0
	}
	return int(s.bits.Count())
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	if s.bits == nil {
		return NewSet()
	}
	return Set{bits: s.bits.Clone()}
}

// Letters returns the members in alphabetical order.
func (s Set) Letters() []byte {
	out := make([]byte, 0, s.Len())
	if s.bits == nil {
		return out
	}
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		out = append(out, Letter(int(i)))
	}
	return out
}

func (s Set) String() string {
	return string(s.Letters())
}

// Tally maps each letter to the number of words containing it at least once.
// A Tally is a value; copies never alias.
type Tally struct {
	counts [AlphabetSize]int
}

// Count returns the tally for l, 0 for letters outside a..z.
func (t Tally) Count(l byte) int {
	i, ok := Index(l)
	if !ok {
		return 0
	}
	return t.counts[i]
}

// Size is the number of letters with a non-zero count.
func (t Tally) Size() int {
	n := 0
	for _, c := range t.counts {
		if c > 0 {
			n++
		}
	}
	return n
}

func (t Tally) Empty() bool {
	return t.Size() == 0
}

// Letters returns the letters with a non-zero count, alphabetically.
func (t Tally) Letters() []byte {
	out := make([]byte, 0, AlphabetSize)
	for i, c := range t.counts {
		if c > 0 {
			out = append(out, Letter(i))
		}
	}
	return out
}

// Map returns the non-zero counts keyed by letter.
func (t Tally) Map() map[byte]int {
	m := make(map[byte]int)
	for i, c := range t.counts {
		if c > 0 {
			m[Letter(i)] = c
		}
	}
	return m
}

// Without returns a copy of t with the given letters zeroed.
func (t Tally) Without(s Set) Tally {
	for _, l := range s.Letters() {
		i, _ := Index(l)
		t.counts[i] = 0
	}
	return t
}

func (t Tally) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, l := range t.Letters() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(l)
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(t.Count(l)))
	}
	sb.WriteByte('}')
	return sb.String()
}

// TallyBuilder accumulates a Tally one word at a time.
type TallyBuilder struct {
	t     Tally
	words int
}

// AddWord counts every letter of word not in exclude, at most once per word.
func (b *TallyBuilder) AddWord(word string, exclude Set) {
	var seen uint32
	for i := 0; i < len(word); i++ {
		idx, ok := Index(word[i])
		if !ok || exclude.Has(word[i]) {
			continue
		}
		if seen&(1<<idx) != 0 {
			continue
		}
		seen |= 1 << idx
		b.t.counts[idx]++
	}
	b.words++
}

// Words returns how many words were added.
func (b *TallyBuilder) Words() int {
	return b.words
}

// Tally returns a snapshot of the counts so far.
func (b *TallyBuilder) Tally() Tally {
	return b.t
}
