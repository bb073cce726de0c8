package results

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestSQLiteStore(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "results.db"))
	is.NoErr(err)
	defer s.Close()

	now := time.Now()
	is.NoErr(s.Record(ctx, GameResult{Secret: "bore", Score: 2, Status: "GAME_WON",
		Guesses: []string{"GuessLetter[c]", "GuessWord[bore]"}, PlayedAt: now}))
	is.NoErr(s.Record(ctx, GameResult{Secret: "bore", Score: 5, Status: "GAME_WON", PlayedAt: now}))
	is.NoErr(s.Record(ctx, GameResult{Secret: "zzz", Score: 0, Error: "exhausted", PlayedAt: now}))

	scores, err := s.Scores(ctx, "bore")
	is.NoErr(err)
	is.Equal(scores, []int{2, 5})
}

type failing struct{ closed bool }

func (f *failing) Record(context.Context, GameResult) error { return errors.New("nope") }
func (f *failing) Close() error {
	f.closed = true
	return nil
}

func TestMulti(t *testing.T) {
	is := is.New(t)
	f := &failing{}
	m := Multi{Discard{}, f}
	is.True(m.Record(context.Background(), GameResult{}) != nil)
	is.NoErr(m.Close())
	is.True(f.closed)
	is.True(GameResult{Error: "x"}.Aborted())
	is.True(!GameResult{}.Aborted())
}

func TestIsBusy(t *testing.T) {
	is := is.New(t)
	is.True(isBusy(errors.New("database is locked (5) (SQLITE_BUSY)")))
	is.True(!isBusy(errors.New("no such table")))
}
