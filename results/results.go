// Package results records the outcome of each played game to optional
// external sinks.
package results

import (
	"context"
	"errors"
	"time"
)

// GameResult is the outcome of one game.
type GameResult struct {
	Secret   string    `json:"secret"`
	Score    int       `json:"score"`
	Status   string    `json:"status"`
	Guesses  []string  `json:"guesses"`
	Error    string    `json:"error,omitempty"`
	PlayedAt time.Time `json:"played_at"`
}

// Aborted reports whether the game ended without a win or a loss.
func (r GameResult) Aborted() bool {
	return r.Error != ""
}

type Recorder interface {
	Record(ctx context.Context, r GameResult) error
	Close() error
}

// Multi fans a result out to several recorders.
type Multi []Recorder

func (m Multi) Record(ctx context.Context, r GameResult) error {
	var errs []error
	for _, rec := range m {
		if err := rec.Record(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, rec := range m {
		if err := rec.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every result.
type Discard struct{}

func (Discard) Record(context.Context, GameResult) error { return nil }
func (Discard) Close() error                             { return nil }
