// Package cache holds the frequency cache: for each secret-word length, the
// candidate count and letter tally of the full, unfiltered length group.
// Entries are written once and shared by every game played in the session.
package cache

import (
	"slices"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/domino14/hangman/letters"
)

// Entry is the zero-guess state of a length group.
type Entry struct {
	Size  int
	Tally letters.Tally
}

type loadFunc func() (Entry, error)

// FrequencyCache is safe for concurrent use. Reads do not lock.
type FrequencyCache struct {
	entries sync.Map // int -> Entry
	group   singleflight.Group
}

func NewFrequencyCache() *FrequencyCache {
	return &FrequencyCache{}
}

func (c *FrequencyCache) Get(length int) (Entry, bool) {
	v, ok := c.entries.Load(length)
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

type flight struct {
	entry Entry
	hit   bool
}

// GetOrCompute returns the entry for length, running load to populate it if
// absent. Concurrent callers for the same length share a single load. The
// boolean result is true when the entry was already cached and false when
// this call, or the flight it joined, ran load. A failed load caches
// nothing.
func (c *FrequencyCache) GetOrCompute(length int, load loadFunc) (Entry, bool, error) {
	if e, ok := c.Get(length); ok {
		log.Debug().Int("length", length).Msg("getting tally from cache")
		return e, true, nil
	}
	v, err, _ := c.group.Do(strconv.Itoa(length), func() (interface{}, error) {
		// Another flight may have finished between Get and Do.
		if e, ok := c.Get(length); ok {
			return flight{entry: e, hit: true}, nil
		}
		log.Debug().Int("length", length).Msg("loading tally into cache")
		e, err := load()
		if err != nil {
			return nil, err
		}
		actual, loaded := c.entries.LoadOrStore(length, e)
		return flight{entry: actual.(Entry), hit: loaded}, nil
	})
	if err != nil {
		return Entry{}, false, err
	}
	f := v.(flight)
	return f.entry, f.hit, nil
}

func (c *FrequencyCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Lengths returns the cached lengths in ascending order.
func (c *FrequencyCache) Lengths() []int {
	var ls []int
	c.entries.Range(func(k, _ any) bool {
		ls = append(ls, k.(int))
		return true
	})
	slices.Sort(ls)
	return ls
}

// Reset drops every entry. It is an operator reset for the shell; the next
// game of each length recomputes the same entry from the corpus.
func (c *FrequencyCache) Reset() {
	c.entries.Clear()
}
