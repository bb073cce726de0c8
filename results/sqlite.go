package results

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	secret TEXT NOT NULL,
	score INTEGER NOT NULL,
	status TEXT NOT NULL,
	guesses TEXT NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	played_at TIMESTAMP NOT NULL
)`

// SQLiteStore appends results to a games table.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating games table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func (s *SQLiteStore) Record(ctx context.Context, r GameResult) error {
	return retry.Do(
		func() error {
			_, err := s.db.ExecContext(ctx,
				`INSERT INTO games (secret, score, status, guesses, error, played_at) VALUES (?, ?, ?, ?, ?, ?)`,
				r.Secret, r.Score, r.Status, strings.Join(r.Guesses, " "), r.Error, r.PlayedAt.UTC())
			return err
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(20*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(isBusy),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().Err(err).Uint("n", n).Msg("sqlite-busy-retrying")
		}),
	)
}

// Scores returns the recorded scores for secret, oldest first.
func (s *SQLiteStore) Scores(ctx context.Context, secret string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT score FROM games WHERE secret = ? ORDER BY id`, secret)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var sc int
		if err := rows.Scan(&sc); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
