// Package lexicon provides the word corpus the solver draws candidates from:
// an ordered, lowercase, de-duplicated list of words grouped by length.
package lexicon

import (
	"iter"
	"slices"
)

// Corpus is immutable once built and safe for concurrent readers.
type Corpus struct {
	name   string
	words  []string
	groups map[int][]string
	index  map[string]struct{}
}

// NewCorpus builds a corpus from already-normalized words. Duplicates are
// dropped, keeping the first occurrence. Words are ordered by length, and
// keep their input order within a length.
func NewCorpus(name string, words []string) *Corpus {
	c := &Corpus{
		name:   name,
		groups: make(map[int][]string),
		index:  make(map[string]struct{}, len(words)),
	}
	for _, w := range words {
		if _, ok := c.index[w]; ok {
			continue
		}
		c.index[w] = struct{}{}
		c.groups[len(w)] = append(c.groups[len(w)], w)
	}
	c.words = make([]string, 0, len(c.index))
	for _, l := range c.Lengths() {
		c.words = append(c.words, c.groups[l]...)
	}
	return c
}

func (c *Corpus) Name() string {
	return c.name
}

// Len is the total number of words.
func (c *Corpus) Len() int {
	return len(c.words)
}

// Lengths returns every word length present, ascending.
func (c *Corpus) Lengths() []int {
	ls := make([]int, 0, len(c.groups))
	for l := range c.groups {
		ls = append(ls, l)
	}
	slices.Sort(ls)
	return ls
}

func (c *Corpus) Contains(w string) bool {
	_, ok := c.index[w]
	return ok
}

// GroupSize returns the number of words of the given length.
func (c *Corpus) GroupSize(length int) int {
	return len(c.groups[length])
}

// GroupBytes estimates the storage needed for one length group, one word
// per line.
func (c *Corpus) GroupBytes(length int) int64 {
	return int64(len(c.groups[length])) * int64(length+1)
}

// Group returns a restartable sequence over the words of one length.
func (c *Corpus) Group(length int) iter.Seq[string] {
	g := c.groups[length]
	return func(yield func(string) bool) {
		for _, w := range g {
			if !yield(w) {
				return
			}
		}
	}
}

// Words returns a restartable sequence over the whole corpus, shortest
// words first.
func (c *Corpus) Words() iter.Seq[string] {
	return slices.Values(c.words)
}

// At returns the i-th word of the given length.
func (c *Corpus) At(length, i int) string {
	return c.groups[length][i]
}
