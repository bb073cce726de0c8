package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/domino14/hangman/letters"
)

func tallyOf(words ...string) letters.Tally {
	var b letters.TallyBuilder
	for _, w := range words {
		b.AddWord(w, letters.NewSet())
	}
	return b.Tally()
}

func TestGetOrComputeOnce(t *testing.T) {
	is := is.New(t)
	c := NewFrequencyCache()
	calls := 0
	load := func() (Entry, error) {
		calls++
		return Entry{Size: 2, Tally: tallyOf("ab", "bc")}, nil
	}
	e, cached, err := c.GetOrCompute(2, load)
	is.NoErr(err)
	is.True(!cached)
	is.Equal(e.Size, 2)
	is.Equal(e.Tally.Count('b'), 2)

	e, cached, err = c.GetOrCompute(2, load)
	is.NoErr(err)
	is.True(cached)
	is.Equal(e.Size, 2)
	is.Equal(calls, 1)
	is.Equal(c.Len(), 1)
	is.Equal(c.Lengths(), []int{2})
}

func TestFailedLoadCachesNothing(t *testing.T) {
	is := is.New(t)
	c := NewFrequencyCache()
	boom := errors.New("boom")
	_, _, err := c.GetOrCompute(5, func() (Entry, error) { return Entry{}, boom })
	is.True(errors.Is(err, boom))
	_, ok := c.Get(5)
	is.True(!ok)

	e, _, err := c.GetOrCompute(5, func() (Entry, error) { return Entry{Size: 7}, nil })
	is.NoErr(err)
	is.Equal(e.Size, 7)
}

func TestConcurrentSingleWriter(t *testing.T) {
	is := is.New(t)
	c := NewFrequencyCache()
	var calls atomic.Int32
	release := make(chan struct{})
	load := func() (Entry, error) {
		calls.Add(1)
		<-release
		return Entry{Size: 3}, nil
	}
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, _, err := c.GetOrCompute(4, load)
			if err != nil || e.Size != 3 {
				t.Errorf("unexpected %v %v", e, err)
			}
		}()
	}
	close(release)
	wg.Wait()
	// singleflight may run a second flight only after the first stored its
	// entry, and that flight returns the stored entry without loading.
	is.Equal(calls.Load(), int32(1))
}

func TestLoaderNotReportedCachedWhenJoined(t *testing.T) {
	is := is.New(t)
	c := NewFrequencyCache()
	started := make(chan struct{})
	release := make(chan struct{})
	load := func() (Entry, error) {
		close(started)
		<-release
		return Entry{Size: 3}, nil
	}

	type outcome struct {
		cached bool
		err    error
	}
	leader := make(chan outcome, 1)
	go func() {
		_, cached, err := c.GetOrCompute(6, load)
		leader <- outcome{cached, err}
	}()
	<-started

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, _, err := c.GetOrCompute(6, load)
			if err != nil || e.Size != 3 {
				t.Errorf("unexpected %v %v", e, err)
			}
		}()
	}
	// give the other callers time to join the running flight
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	got := <-leader
	is.NoErr(got.err)
	is.True(!got.cached)

	_, cached, err := c.GetOrCompute(6, load)
	is.NoErr(err)
	is.True(cached)
}

func TestReset(t *testing.T) {
	is := is.New(t)
	c := NewFrequencyCache()
	_, _, err := c.GetOrCompute(3, func() (Entry, error) { return Entry{Size: 1}, nil })
	is.NoErr(err)
	c.Reset()
	is.Equal(c.Len(), 0)
}
