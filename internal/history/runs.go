package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const runColumns = `id, created_at, input_path, dialogue_column, language, constraints_json,
    interventions, blocks, scenes, failed_scenes, takes, characters, detail_lines, problems, duration_ms`

// Record stores run and its takes in one transaction. An empty run.ID is
// replaced with a new UUID and a zero CreatedAt with the current time; the
// stored run is returned.
func (s *Store) Record(ctx context.Context, run Run, takes []RunTake) (Run, error) {
	ctx = ensureContext(ctx)
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = run.CreatedAt.UTC()

	constraintsJSON, err := json.Marshal(run.Constraints)
	if err != nil {
		return Run{}, fmt.Errorf("marshal constraints: %w", err)
	}

	err = retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			run.CreatedAt.Format(time.RFC3339Nano),
			run.InputPath,
			run.DialogueColumn,
			nullableString(run.Language),
			string(constraintsJSON),
			run.Stats.Interventions,
			run.Stats.Blocks,
			run.Stats.Scenes,
			run.Stats.FailedScenes,
			run.Stats.Takes,
			run.Stats.Characters,
			run.Stats.DetailLines,
			run.Problems,
			run.Duration.Milliseconds(),
		); err != nil {
			return err
		}

		for _, take := range takes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO run_takes (run_id, take, scene, in_code, out_code, duration_seconds, lines, characters)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				run.ID,
				take.Take,
				take.Scene,
				take.In,
				take.Out,
				take.Duration,
				take.Lines,
				strings.Join(take.Characters, ","),
			); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

// List returns the most recent runs, newest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns the run whose id equals or uniquely starts with id, and its takes.
func (s *Store) Get(ctx context.Context, id string) (Run, []RunTake, error) {
	ctx = ensureContext(ctx)
	id = strings.TrimSpace(id)
	if id == "" {
		return Run{}, nil, ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		id, escapeLike(id)+"%")
	if err != nil {
		return Run{}, nil, fmt.Errorf("get run: %w", err)
	}
	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return Run{}, nil, err
		}
		matches = append(matches, run)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Run{}, nil, err
	}

	var run Run
	switch {
	case len(matches) == 0:
		return Run{}, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case len(matches) == 1:
		run = matches[0]
	default:
		exact := false
		for _, m := range matches {
			if m.ID == id {
				run, exact = m, true
			}
		}
		if !exact {
			return Run{}, nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
		}
	}

	takes, err := s.takes(ctx, run.ID)
	if err != nil {
		return Run{}, nil, err
	}
	return run, takes, nil
}

func (s *Store) takes(ctx context.Context, runID string) ([]RunTake, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT take, scene, in_code, out_code, duration_seconds, lines, characters
         FROM run_takes WHERE run_id = ? ORDER BY take`, runID)
	if err != nil {
		return nil, fmt.Errorf("list run takes: %w", err)
	}
	defer rows.Close()

	var out []RunTake
	for rows.Next() {
		var take RunTake
		var characters string
		if err := rows.Scan(&take.Take, &take.Scene, &take.In, &take.Out, &take.Duration, &take.Lines, &characters); err != nil {
			return nil, err
		}
		if characters != "" {
			take.Characters = strings.Split(characters, ",")
		}
		out = append(out, take)
	}
	return out, rows.Err()
}

// Purge deletes runs created before cutoff and returns how many were removed.
func (s *Store) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx = ensureContext(ctx)
	stamp := cutoff.UTC().Format(time.RFC3339Nano)
	if _, err := s.execWithRetry(ctx,
		`DELETE FROM run_takes WHERE run_id IN (SELECT id FROM runs WHERE created_at < ?)`, stamp); err != nil {
		return 0, fmt.Errorf("purge run takes: %w", err)
	}
	res, err := s.execWithRetry(ctx, `DELETE FROM runs WHERE created_at < ?`, stamp)
	if err != nil {
		return 0, fmt.Errorf("purge runs: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run             Run
		createdRaw      string
		language        sql.NullString
		constraintsJSON string
		durationMS      int64
	)
	if err := scanner.Scan(
		&run.ID,
		&createdRaw,
		&run.InputPath,
		&run.DialogueColumn,
		&language,
		&constraintsJSON,
		&run.Stats.Interventions,
		&run.Stats.Blocks,
		&run.Stats.Scenes,
		&run.Stats.FailedScenes,
		&run.Stats.Takes,
		&run.Stats.Characters,
		&run.Stats.DetailLines,
		&run.Problems,
		&durationMS,
	); err != nil {
		return Run{}, err
	}
	created, err := parseTimeString(createdRaw)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
	}
	run.CreatedAt = created
	run.Language = language.String
	run.Duration = time.Duration(durationMS) * time.Millisecond
	if err := json.Unmarshal([]byte(constraintsJSON), &run.Constraints); err != nil {
		return Run{}, fmt.Errorf("decode constraints: %w", err)
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func escapeLike(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(value)
}
