package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matryer/is"

	"github.com/domino14/hangman/config"
)

func TestScanNormalizes(t *testing.T) {
	is := is.New(t)
	src := "CARE\n  core \nbore\n\nMore\ncare\ndon't\nx-ray\nat\n"
	c, err := Scan("test", strings.NewReader(src))
	is.NoErr(err)
	is.Equal(c.Len(), 5)
	is.Equal(c.Name(), "test")
	want := []string{"at", "care", "core", "bore", "more"}
	if diff := cmp.Diff(want, slices.Collect(c.Words())); diff != "" {
		t.Errorf("words mismatch (-want +got):\n%s", diff)
	}
	is.True(c.Contains("bore"))
	is.True(!c.Contains("x-ray"))
}

func TestGroups(t *testing.T) {
	is := is.New(t)
	c := NewCorpus("g", []string{"three", "a", "four", "bb", "five", "cc", "four"})
	is.Equal(c.Lengths(), []int{1, 2, 4, 5})
	is.Equal(c.GroupSize(4), 2)
	is.Equal(c.GroupSize(7), 0)
	is.Equal(c.GroupBytes(2), int64(6))
	is.Equal(c.At(2, 1), "cc")

	g := c.Group(4)
	is.Equal(slices.Collect(g), []string{"four", "five"})
	// restartable
	is.Equal(slices.Collect(g), []string{"four", "five"})
	is.Equal(len(slices.Collect(c.Group(9))), 0)
}

func TestGroupEarlyStop(t *testing.T) {
	is := is.New(t)
	c := NewCorpus("g", []string{"ab", "cd", "ef"})
	n := 0
	for range c.Group(2) {
		n++
		if n == 2 {
			break
		}
	}
	is.Equal(n, 2)
}

func TestLoadFile(t *testing.T) {
	is := is.New(t)
	p := filepath.Join(t.TempDir(), "words.txt")
	is.NoErr(os.WriteFile(p, []byte("Hangman\nasterisk\n"), 0o644))
	c, err := Load(p, EncodingUTF8)
	is.NoErr(err)
	is.Equal(slices.Collect(c.Words()), []string{"hangman", "asterisk"})
}

func TestLoadLatin1(t *testing.T) {
	is := is.New(t)
	p := filepath.Join(t.TempDir(), "words.txt")
	// "naïve" in ISO-8859-1, then a plain word
	is.NoErr(os.WriteFile(p, []byte("na\xefve\nplain\n"), 0o644))
	c, err := Load(p, EncodingLatin1)
	is.NoErr(err)
	is.Equal(slices.Collect(c.Words()), []string{"plain"})

	_, err = Load(p, "ebcdic")
	is.True(err != nil)
}

func TestLoadMissing(t *testing.T) {
	is := is.New(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), EncodingUTF8)
	is.True(errors.Is(err, ErrCorpusAccess))
}

func TestGetCachesCorpus(t *testing.T) {
	is := is.New(t)
	p := filepath.Join(t.TempDir(), "words.txt")
	is.NoErr(os.WriteFile(p, []byte("alpha\nbeta\n"), 0o644))
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDictionary, p)

	c1, err := Get(cfg)
	is.NoErr(err)
	c2, err := Get(cfg)
	is.NoErr(err)
	is.True(c1 == c2)

	_, err = Get(config.DefaultConfig())
	is.True(errors.Is(err, ErrCorpusAccess))
}
