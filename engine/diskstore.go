package engine

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
)

var diskStoreSeq atomic.Uint64

// DiskStore spools generations to two files in a directory, alternating
// between them, so a reduction holds only one word in memory at a time.
type DiskStore struct {
	paths [2]string
	next  int
}

// NewDiskStore names its pass files after a hash of the corpus, the word
// length and a per-process sequence number, so concurrent games never
// share files.
func NewDiskStore(dir, corpusName string, length int) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating spool dir: %w", err)
	}
	id := fmt.Sprintf("%s:%d:%d:%d", corpusName, length, os.Getpid(), diskStoreSeq.Add(1))
	h := xxhash.Sum64String(id)
	s := &DiskStore{}
	for i, suffix := range []string{"A", "B"} {
		s.paths[i] = filepath.Join(dir, fmt.Sprintf("pass_%016x_%s.txt", h, suffix))
	}
	return s, nil
}

// Paths returns the two pass file names.
func (s *DiskStore) Paths() [2]string {
	return s.paths
}

func (s *DiskStore) Next() (PassWriter, error) {
	idx := s.next
	path := s.paths[idx]
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating pass file: %w", err)
	}
	return &diskWriter{store: s, idx: idx, f: f, w: bufio.NewWriter(f), path: path}, nil
}

// Close removes the pass files.
func (s *DiskStore) Close() error {
	var errs []error
	for _, p := range s.paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type diskWriter struct {
	store *DiskStore
	idx   int
	f     *os.File
	w     *bufio.Writer
	path  string
}

func (w *diskWriter) Write(word string) error {
	if w.f == nil {
		return os.ErrClosed
	}
	if _, err := w.w.WriteString(word); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *diskWriter) Commit() (Source, error) {
	if w.f == nil {
		return nil, os.ErrClosed
	}
	err := w.w.Flush()
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	w.f = nil
	if err != nil {
		return nil, fmt.Errorf("writing pass file: %w", err)
	}
	w.store.next = 1 - w.idx
	return readPassFile(w.path), nil
}

func (w *diskWriter) Abort() {
	if w.f == nil {
		return
	}
	if err := w.f.Close(); err != nil {
		log.Debug().Err(err).Str("path", w.path).Msg("closing aborted pass file")
	}
	w.f = nil
}

func readPassFile(path string) Source {
	return func(yield func(string, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield("", fmt.Errorf("opening pass file: %w", err))
			return
		}
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			if !yield(sc.Text(), nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield("", fmt.Errorf("reading pass file: %w", err))
		}
	}
}

var _ PassStore = (*DiskStore)(nil)
