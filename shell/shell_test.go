package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/hangman/automatic"
	"github.com/domino14/hangman/config"
	"github.com/domino14/hangman/display"
	"github.com/domino14/hangman/lexicon"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"play bore care",
			&shellcmd{"play", []string{"bore", "care"}, map[string]string{}},
			nil},
		{"batch -threads 4 words.txt",
			&shellcmd{"batch", []string{"words.txt"}, map[string]string{"threads": "4"}},
			nil},
		{`summary "my summary.yaml"`,
			&shellcmd{"summary", []string{"my summary.yaml"}, map[string]string{}},
			nil},
		{"baseline -threads",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func newController(t *testing.T) (*ShellController, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigSpoolDir, t.TempDir())
	corpus := lexicon.NewCorpus("test", []string{"care", "core", "bore", "more"})
	s := automatic.NewSession(cfg, corpus, automatic.WithDisplay(display.New(display.LevelNone, out, false)))
	return &ShellController{out: out, session: s, ctx: context.Background()}, out
}

func TestPlayAndSummary(t *testing.T) {
	sc, out := newController(t)

	resp, err := sc.Execute("summary")
	require.NoError(t, err)
	assert.Equal(t, "no games played yet", resp.message)

	_, err = sc.Execute("play bore care")
	require.NoError(t, err)
	assert.Equal(t, "BORE: 2\nCARE: 2\nGiven 2 words, average word score is 2\n", out.String())

	resp, err = sc.Execute("summary")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.message, "games=2 aborted=0"))

	path := filepath.Join(t.TempDir(), "summary.yaml")
	_, err = sc.Execute("summary " + path)
	require.NoError(t, err)
	dat, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(dat), "secret: bore")
}

func TestCacheCommand(t *testing.T) {
	is := is.New(t)
	sc, _ := newController(t)
	_, err := sc.Execute("play more")
	is.NoErr(err)

	resp, err := sc.Execute("cache")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "1 lengths cached"))

	_, err = sc.Execute("cache clear")
	is.NoErr(err)
	is.Equal(sc.session.Cache().Len(), 0)

	_, err = sc.Execute("cache everything")
	is.True(err != nil)
}

func TestDisplayAndSet(t *testing.T) {
	is := is.New(t)
	sc, _ := newController(t)

	resp, err := sc.Execute("display chatty")
	is.NoErr(err)
	is.Equal(resp.message, "display set to chatty")
	is.Equal(sc.session.Display().Level(), display.LevelChatty)

	_, err = sc.Execute("display loud")
	is.True(err != nil)

	_, err = sc.Execute("set threads 2")
	is.NoErr(err)
	is.Equal(sc.session.Config().GetInt(config.ConfigThreads), 2)

	_, err = sc.Execute("set dictionary /tmp/x")
	is.True(err != nil)
}

func TestMisc(t *testing.T) {
	is := is.New(t)
	sc, _ := newController(t)

	_, err := sc.Execute("exit")
	is.Equal(err, io.EOF)

	_, err = sc.Execute("dance")
	is.True(err != nil)

	resp, err := sc.Execute("help")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "Commands:"))

	resp, err = sc.Execute("help nothing")
	is.NoErr(err)
	is.Equal(resp.message, "There is no help text for the topic nothing")

	_, err = sc.Execute("random 3 12")
	is.True(err != nil)
}
