package engine

import (
	"fmt"
	"iter"
	"os"
	"strings"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hangman/lexicon"
)

// Source is one generation of candidates. It can be ranged over more than
// once, until the store overwrites it two reductions later.
type Source = iter.Seq2[string, error]

// PassStore keeps the two alternating generations of a reduction: the one
// being read and the one being written.
type PassStore interface {
	// Next starts writing the generation after the current one.
	Next() (PassWriter, error)
	Close() error
}

// PassWriter receives the survivors of one reduction. Nothing written is
// readable until Commit returns.
type PassWriter interface {
	Write(word string) error
	Commit() (Source, error)
	Abort()
}

const (
	StoreMemory = "memory"
	StoreDisk   = "disk"
	StoreAuto   = "auto"
)

// autoDiskFraction is the share of physical memory a length group may take
// before the auto store spools passes to disk.
const autoDiskFraction = 16

// NewStore builds the pass store named by kind for one game.
func NewStore(kind, spoolDir string, corpus *lexicon.Corpus, length int) (PassStore, error) {
	switch strings.ToLower(kind) {
	case "", StoreMemory:
		return NewMemoryStore(), nil
	case StoreDisk:
		return NewDiskStore(spoolDir, corpus.Name(), length)
	case StoreAuto:
		need := corpus.GroupBytes(length) * 2
		total := memory.TotalMemory()
		if total > 0 && uint64(need) > total/autoDiskFraction {
			log.Debug().Int64("need", need).Uint64("total", total).Msg("spooling passes to disk")
			return NewDiskStore(spoolDir, corpus.Name(), length)
		}
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown pass store %q", kind)
}

// FromSeq adapts an error-free sequence to a Source.
func FromSeq(seq iter.Seq[string]) Source {
	return func(yield func(string, error) bool) {
		for w := range seq {
			if !yield(w, nil) {
				return
			}
		}
	}
}

// MemoryStore double-buffers generations in two slices. An aborted pass
// leaves the write buffer where it was.
type MemoryStore struct {
	bufs [2][]string
	next int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Next() (PassWriter, error) {
	i := s.next
	s.bufs[i] = s.bufs[i][:0]
	return &memoryWriter{store: s, idx: i}, nil
}

func (s *MemoryStore) Close() error {
	s.bufs = [2][]string{}
	return nil
}

type memoryWriter struct {
	store *MemoryStore
	idx   int
	done  bool
}

func (w *memoryWriter) Write(word string) error {
	if w.done {
		return os.ErrClosed
	}
	w.store.bufs[w.idx] = append(w.store.bufs[w.idx], word)
	return nil
}

func (w *memoryWriter) Commit() (Source, error) {
	if w.done {
		return nil, os.ErrClosed
	}
	w.done = true
	// Only a committed pass becomes the source; the next pass writes the
	// other buffer.
	w.store.next = 1 - w.idx
	gen := w.store.bufs[w.idx]
	return func(yield func(string, error) bool) {
		for _, word := range gen {
			if !yield(word, nil) {
				return
			}
		}
	}, nil
}

func (w *memoryWriter) Abort() {
	w.done = true
	w.store.bufs[w.idx] = w.store.bufs[w.idx][:0]
}

var _ PassStore = (*MemoryStore)(nil)
