package letters

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matryer/is"
)

func TestSet(t *testing.T) {
	is := is.New(t)
	s := NewSet('r', 'b', 'b')
	is.Equal(s.Len(), 2)
	is.True(s.Has('b'))
	is.True(!s.Has('a'))
	is.True(!s.Has('-'))
	is.Equal(s.String(), "br")

	c := s.Clone()
	c.Add('a')
	is.Equal(s.Len(), 2)
	is.Equal(c.String(), "abr")
}

func TestZeroSet(t *testing.T) {
	is := is.New(t)
	var s Set
	is.Equal(s.Len(), 0)
	is.True(!s.Has('a'))
	is.Equal(s.String(), "")
}

func TestTallyCountsPresence(t *testing.T) {
	is := is.New(t)
	var b TallyBuilder
	for _, w := range []string{"care", "core", "bore", "more", "mississippi"} {
		b.AddWord(w, NewSet())
	}
	tally := b.Tally()
	is.Equal(b.Words(), 5)
	is.Equal(tally.Count('s'), 1)
	is.Equal(tally.Count('i'), 1)
	is.Equal(tally.Count('r'), 4)
	is.Equal(tally.Count('e'), 4)
	is.Equal(tally.Count('o'), 3)
	is.Equal(tally.Count('z'), 0)
	is.Equal(tally.Count('?'), 0)
}

func TestTallyExclusion(t *testing.T) {
	is := is.New(t)
	var b TallyBuilder
	for _, w := range []string{"care", "core", "bore", "more"} {
		b.AddWord(w, NewSet('r'))
	}
	want := map[byte]int{'e': 4, 'o': 3, 'c': 2, 'a': 1, 'b': 1, 'm': 1}
	if diff := cmp.Diff(want, b.Tally().Map()); diff != "" {
		t.Errorf("tally mismatch (-want +got):\n%s", diff)
	}
	is.Equal(b.Tally().Size(), 6)
	is.Equal(string(b.Tally().Letters()), "abcemo")
}

func TestTallyIsAValue(t *testing.T) {
	is := is.New(t)
	var b TallyBuilder
	b.AddWord("ab", NewSet())
	snap := b.Tally()
	b.AddWord("ab", NewSet())
	is.Equal(snap.Count('a'), 1)
	is.Equal(b.Tally().Count('a'), 2)

	w := snap.Without(NewSet('a'))
	is.Equal(w.Count('a'), 0)
	is.Equal(snap.Count('a'), 1)
	is.Equal(snap.String(), "{a:1 b:1}")
}

func TestWellFormed(t *testing.T) {
	is := is.New(t)
	is.True(WellFormed("hangman"))
	is.True(!WellFormed(""))
	is.True(!WellFormed("don't"))
	is.True(!WellFormed("Caps"))
}
