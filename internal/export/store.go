package export

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"
)

//go:embed schema.sql
var schemaSQL string

// Store keeps generated prompts in a DuckDB database so runs can be
// compared and queried after the fact.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the database at path and applies the schema.
// An empty path opens an in-memory database.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run identifies one generation run.
type Run struct {
	ID          uuid.UUID
	Mode        string
	Perspective string
	Input       string
	Seed        int64
}

// NewRun mints a run with a fresh identifier.
func NewRun(mode, perspective, input string, seed int64) Run {
	return Run{ID: uuid.New(), Mode: mode, Perspective: perspective, Input: input, Seed: seed}
}

// PromptRecord is one stored prompt with its expected answer.
type PromptRecord struct {
	RespondentID string
	Target       string
	Prompt       string
	Answer       string
}

// SaveRun writes the run row and its prompts in one transaction.
func (s *Store) SaveRun(ctx context.Context, run Run, prompts []PromptRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, created_at, mode, perspective, input, seed) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID.String(), time.Now().UTC(), run.Mode, run.Perspective, run.Input, run.Seed)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO prompts (run_id, respondent_id, target, prompt, answer) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare prompt insert: %w", err)
	}
	defer stmt.Close()

	for _, prompt := range prompts {
		if _, err := stmt.ExecContext(ctx, run.ID.String(), prompt.RespondentID, prompt.Target, prompt.Prompt, prompt.Answer); err != nil {
			return fmt.Errorf("insert prompt for respondent %s: %w", prompt.RespondentID, err)
		}
	}
	return tx.Commit()
}

// CountPrompts returns the number of stored prompts for a run.
func (s *Store) CountPrompts(ctx context.Context, runID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM prompts WHERE run_id = ?`, runID.String()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count prompts: %w", err)
	}
	return count, nil
}
