package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/matzehuels/coalition/pkg/ballot"
)

// SQLiteSink appends records to a SQLite database.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens (or creates) the database at path.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	if path == "" {
		path = "coalition.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS manipulations (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL, -- Unix nanoseconds
		candidates INTEGER NOT NULL,
		coalition_size INTEGER NOT NULL,
		attempt INTEGER NOT NULL,
		original_winner INTEGER NOT NULL,
		new_winner INTEGER NOT NULL,
		elimination_order TEXT NOT NULL,
		coalition BLOB NOT NULL,
		changed INTEGER NOT NULL,
		manipulated TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create manipulations table: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// Save inserts rec in a transaction.
func (s *SQLiteSink) Save(ctx context.Context, rec Record) (retErr error) {
	coalition, err := json.Marshal(rec.Coalition)
	if err != nil {
		return fmt.Errorf("encode coalition: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `INSERT INTO manipulations
		(id, created_at, candidates, coalition_size, attempt, original_winner, new_winner,
		 elimination_order, coalition, changed, manipulated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt.UnixNano(), rec.Candidates, rec.CoalitionSize,
		rec.Attempt, int(rec.OriginalWinner), int(rec.NewWinner), rec.Order.String(),
		coalition, rec.Changed, strings.Join(profileLines(rec.Manipulated), "\n"),
	); err != nil {
		return fmt.Errorf("insert manipulation: %w", err)
	}
	return tx.Commit()
}

// List returns all stored records, oldest first. Profiles are not loaded
// except for the manipulated ballots.
func (s *SQLiteSink) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at, candidates, coalition_size, attempt,
		original_winner, new_winner, elimination_order, coalition, changed, manipulated
		FROM manipulations ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("select manipulations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var (
			rec            Record
			created        int64
			order, ballots string
			coalition      []byte
		)
		if err := rows.Scan(&rec.ID, &created, &rec.Candidates, &rec.CoalitionSize, &rec.Attempt,
			&rec.OriginalWinner, &rec.NewWinner, &order, &coalition, &rec.Changed, &ballots); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		rec.CreatedAt = time.Unix(0, created).UTC()
		if err := json.Unmarshal(coalition, &rec.Coalition); err != nil {
			return nil, fmt.Errorf("decode coalition: %w", err)
		}
		if rec.Order, err = parseOrder(order); err != nil {
			return nil, err
		}
		if rec.Manipulated, err = parseLines(ballots); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteSink) Close() error { return s.db.Close() }

var _ Sink = (*SQLiteSink)(nil)

func parseOrder(s string) (ballot.Order, error) {
	fields := strings.Fields(s)
	out := make(ballot.Order, len(fields))
	for i, f := range fields {
		tok, err := ballot.ParseToken(f)
		if err != nil {
			return nil, err
		}
		out[i] = tok.Candidate
	}
	return out, nil
}

func parseLines(s string) (ballot.Profile, error) {
	if s == "" {
		return nil, nil
	}
	lines := strings.Split(s, "\n")
	out := make(ballot.Profile, len(lines))
	for i, l := range lines {
		b, err := ballot.ParseBallot(l)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}
