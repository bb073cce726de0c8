// Package automatic plays hangman games without a human: one secret at a
// time, or a whole batch across a pool of workers.
package automatic

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/hangman/cache"
	"github.com/domino14/hangman/config"
	"github.com/domino14/hangman/display"
	"github.com/domino14/hangman/engine"
	"github.com/domino14/hangman/game"
	"github.com/domino14/hangman/letters"
	"github.com/domino14/hangman/lexicon"
	"github.com/domino14/hangman/results"
	"github.com/domino14/hangman/strategy"
)

var (
	GamesPlayed  *expvar.Int
	GamesAborted *expvar.Int
	IsPlaying    *expvar.Int
)

func init() {
	GamesPlayed = expvar.NewInt("gamesPlayed")
	GamesAborted = expvar.NewInt("gamesAborted")
	IsPlaying = expvar.NewInt("isPlaying")
}

// Session holds what games share for the life of the process: the corpus,
// its frequency cache and the output sinks.
type Session struct {
	cfg      *config.Config
	corpus   *lexicon.Corpus
	freq     *cache.FrequencyCache
	display  *display.Display
	recorder results.Recorder
}

type SessionOption func(*Session)

func WithDisplay(d *display.Display) SessionOption {
	return func(s *Session) { s.display = d }
}

func WithRecorder(r results.Recorder) SessionOption {
	return func(s *Session) { s.recorder = r }
}

// WithCache shares a frequency cache between sessions over the same corpus.
func WithCache(c *cache.FrequencyCache) SessionOption {
	return func(s *Session) { s.freq = c }
}

func NewSession(cfg *config.Config, corpus *lexicon.Corpus, opts ...SessionOption) *Session {
	s := &Session{
		cfg:      cfg,
		corpus:   corpus,
		recorder: results.Discard{},
	}
	for _, o := range opts {
		o(s)
	}
	if s.freq == nil {
		s.freq = cache.NewFrequencyCache()
	}
	return s
}

func (s *Session) Corpus() *lexicon.Corpus {
	return s.corpus
}

func (s *Session) Cache() *cache.FrequencyCache {
	return s.freq
}

func (s *Session) Display() *display.Display {
	return s.display
}

func (s *Session) Config() *config.Config {
	return s.cfg
}

// IsFatal reports whether err should stop a whole run rather than one game.
func IsFatal(err error) bool {
	return errors.Is(err, engine.ErrInvariant) || errors.Is(err, lexicon.ErrCorpusAccess)
}

// PlayGame plays secret to the end. A game whose candidates run out is
// aborted: the result carries the error text and the score reached so far,
// and the returned error is nil. Any other error is returned.
func (s *Session) PlayGame(ctx context.Context, secret string) (results.GameResult, error) {
	secret = strings.ToLower(strings.TrimSpace(secret))
	res := results.GameResult{Secret: secret, PlayedAt: time.Now()}
	if !letters.WellFormed(secret) {
		return res, fmt.Errorf("secret %q must be made of the letters a-z", secret)
	}
	maxWrong := s.cfg.GetInt(config.ConfigMaxIncorrect)

	s.display.Normal("(SHHH!!) hangman secret: %s\n", secret)
	g := game.NewGame(secret, maxWrong)

	store, err := engine.NewStore(s.cfg.GetString(config.ConfigPassStore),
		s.cfg.GetString(config.ConfigSpoolDir), s.corpus, len(secret))
	if err != nil {
		return res, err
	}
	eng := engine.New(s.corpus, len(secret), s.freq,
		engine.WithStore(store), engine.WithDisplay(s.display))
	defer func() {
		if err := eng.Close(); err != nil {
			log.Err(err).Str("secret", secret).Msg("closing-pass-store")
		}
	}()

	strat, err := strategy.New(g, eng,
		strategy.WithSmallPoolSize(s.cfg.GetInt(config.ConfigSmallPoolSize)),
		strategy.WithDisplay(s.display))
	if err != nil {
		return res, err
	}

	for g.Status() == game.StatusKeepGuessing {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		guess, err := strat.NextGuess(g)
		if errors.Is(err, strategy.ErrCandidatesExhausted) {
			s.display.Simple("Aborting current game... [%v]", err)
			res.Error = err.Error()
			break
		}
		if err != nil {
			return res, err
		}
		if err := guess.Apply(g); err != nil {
			return res, err
		}
		res.Guesses = append(res.Guesses, guess.String())
		s.display.Simple("%v\n\n", g)
	}

	res.Score = g.Score()
	res.Status = g.Status().String()
	GamesPlayed.Add(1)
	if res.Aborted() {
		GamesAborted.Add(1)
	}
	log.Debug().Str("secret", secret).Int("score", res.Score).Str("status", res.Status).
		Int("passes", eng.Passes()).Msg("game-finished")

	if err := s.recorder.Record(ctx, res); err != nil {
		log.Warn().Err(err).Str("secret", secret).Msg("could not record result")
	}
	return res, nil
}
