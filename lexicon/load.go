package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/domino14/word-golib/cache"
	wglconfig "github.com/domino14/word-golib/config"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/domino14/hangman/config"
	"github.com/domino14/hangman/letters"
)

// ErrCorpusAccess is returned when the dictionary cannot be opened or read.
var ErrCorpusAccess = errors.New("corpus access failure")

const CacheKeyPrefix = "corpus:"

const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
)

// Scan reads one word per line. Lines are trimmed and lowercased; blank
// lines and anything that is not purely a..z are skipped.
func Scan(name string, r io.Reader) (*Corpus, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	var words []string
	skipped := 0
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" {
			continue
		}
		if !letters.WellFormed(w) {
			skipped++
			continue
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrCorpusAccess, name, err)
	}
	c := NewCorpus(name, words)
	log.Debug().Str("corpus", name).Int("words", c.Len()).Int("skipped", skipped).
		Int("duplicates", len(words)-c.Len()).Msg("scanned corpus")
	return c, nil
}

func decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingLatin1, "iso-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	}
	return nil, fmt.Errorf("unsupported corpus encoding %q", encoding)
}

// Load reads a corpus from a file path.
func Load(path, encoding string) (*Corpus, error) {
	f, _, err := cache.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorpusAccess, err)
	}
	defer f.Close()
	r, err := decoder(f, encoding)
	if err != nil {
		return nil, err
	}
	return Scan(path, r)
}

// CacheLoadFunc loads a corpus into the word-golib object cache. Keys look
// like corpus:<encoding>:<path>.
func CacheLoadFunc(cfg *wglconfig.Config, key string) (interface{}, error) {
	fields := strings.SplitN(strings.TrimPrefix(key, CacheKeyPrefix), ":", 2)
	if len(fields) != 2 {
		return nil, errors.New("corpus cache key missing fields: " + key)
	}
	return Load(fields[1], fields[0])
}

// Get returns the process-wide corpus for the configured dictionary,
// loading it on first use.
func Get(cfg *config.Config) (*Corpus, error) {
	path := cfg.GetString(config.ConfigDictionary)
	if path == "" {
		return nil, fmt.Errorf("%w: no dictionary configured", ErrCorpusAccess)
	}
	key := CacheKeyPrefix + cfg.GetString(config.ConfigCorpusEncoding) + ":" + path
	obj, err := cache.Load(cfg.WGLConfig(), key, CacheLoadFunc)
	if err != nil {
		return nil, err
	}
	c, ok := obj.(*Corpus)
	if !ok {
		return nil, errors.New("cached object is not a corpus")
	}
	return c, nil
}
