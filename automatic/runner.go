package automatic

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/hangman/config"
	"github.com/domino14/hangman/results"
	"github.com/domino14/hangman/stats"
)

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

var playing atomic.Bool

// Run is the outcome of PlayAll. Results are in the order of the secrets
// given; a game that was never finished has a zero result. Games that could
// not start, such as malformed secrets, are listed in Failed and left out
// of the Summary.
type Run struct {
	Results []results.GameResult
	Failed  []results.GameResult
	Summary *stats.Summary
}

// emitter prints finished games in input order even when workers finish
// out of order.
type emitter struct {
	mu     sync.Mutex
	done   []bool
	failed []bool
	res    []results.GameResult
	next   int
	emit   func(r results.GameResult, failed bool)
}

func (e *emitter) finish(i int, r results.GameResult, failed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.res[i] = r
	e.done[i] = true
	e.failed[i] = failed
	for e.next < len(e.done) && e.done[e.next] {
		e.emit(e.res[e.next], e.failed[e.next])
		e.next++
	}
}

// PlayAll plays every secret using the configured number of threads and
// prints a "SECRET: score" line per game plus the average. The first fatal
// error stops the run and is returned along with whatever was finished.
func (s *Session) PlayAll(ctx context.Context, secrets []string) (*Run, error) {
	if !playing.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	IsPlaying.Set(1)
	defer func() {
		IsPlaying.Set(0)
		playing.Store(false)
	}()

	threads := max(1, s.cfg.GetInt(config.ConfigThreads))
	log.Debug().Int("games", len(secrets)).Int("threads", threads).Msg("starting-games")

	var bar *progressbar.ProgressBar
	if s.cfg.GetBool(config.ConfigProgress) && len(secrets) > 1 {
		bar = progressbar.Default(int64(len(secrets)), "playing")
	}

	summary := stats.NewSummary()
	var failed []results.GameResult
	em := &emitter{
		done:   make([]bool, len(secrets)),
		failed: make([]bool, len(secrets)),
		res:    make([]results.GameResult, len(secrets)),
		emit: func(r results.GameResult, notPlayed bool) {
			if notPlayed {
				failed = append(failed, r)
				s.display.Bare("%s: not played [%s]", strings.ToUpper(r.Secret), r.Error)
				return
			}
			summary.Add(stats.GameRow{
				Secret:  r.Secret,
				Score:   r.Score,
				Status:  r.Status,
				Guesses: len(r.Guesses),
				Error:   r.Error,
			})
			s.display.Bare("%s: %d", strings.ToUpper(r.Secret), r.Score)
		},
	}

	s.display.Clock("Start time")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, secret := range secrets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := s.PlayGame(gctx, secret)
			if err != nil {
				if IsFatal(err) || errors.Is(err, context.Canceled) {
					return err
				}
				// A malformed secret or a store failure only loses this game.
				log.Err(err).Str("secret", secret).Msg("game-failed")
				r.Error = err.Error()
			}
			em.finish(i, r, err != nil)
			if bar != nil {
				bar.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()
	if bar != nil {
		bar.Finish()
	}
	s.display.Clock("End time")

	run := &Run{Results: em.res, Failed: failed, Summary: summary}
	if err != nil {
		return run, err
	}
	if n := summary.Count(); n > 1 {
		s.display.Bare("Given %d words, average word score is %s", n,
			strconv.FormatFloat(summary.Average(), 'f', -1, 64))
	}
	return run, nil
}
