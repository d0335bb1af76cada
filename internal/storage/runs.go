package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run outcomes.
const (
	OutcomeClear = "CLEAR"
	OutcomeDead  = "DEAD"
)

// Run is the record of one finished run.
type Run struct {
	ID        string    `db:"id"`
	GameID    string    `db:"game_id"`
	Outcome   string    `db:"outcome"`
	Reason    string    `db:"reason"`
	Money     int       `db:"money"`
	Launches  int       `db:"launches"`
	Seed      int64     `db:"seed"`
	Duration  int       `db:"duration_secs"` // seconds of play
	CreatedAt time.Time `db:"-"`
}

// Won reports whether the run reached the goal.
func (r Run) Won() bool {
	return r.Outcome == OutcomeClear
}

type runRow struct {
	Run
	Created dbTime `db:"created_at"`
}

const runColumns = `id, game_id, outcome, reason, money, launches, seed, duration_secs, created_at`

// SaveRun records a finished run and its final money as a score, in one
// transaction. An empty ID is replaced with a new UUID, which is returned.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Outcome != OutcomeClear && run.Outcome != OutcomeDead {
		return "", fmt.Errorf("storage: invalid run outcome %q", run.Outcome)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.NamedExec(
		`INSERT INTO runs (id, game_id, outcome, reason, money, launches, seed, duration_secs)
		 VALUES (:id, :game_id, :outcome, :reason, :money, :launches, :seed, :duration_secs)`,
		run,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	if _, err := saveScore(tx, run.GameID, run.Money); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return run.ID, nil
}

// RunByID returns a stored run, or nil if it does not exist.
func (s *Store) RunByID(id string) (*Run, error) {
	var rows []runRow
	err := s.db.Select(&rows, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	run := rows[0].toRun()
	return &run, nil
}

// RecentRuns returns the latest finished runs, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.selectRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

// BestRuns returns the best runs: cleared tables first, then by money,
// then by the shortest play time.
func (s *Store) BestRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.selectRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY (outcome = 'CLEAR') DESC, money DESC, duration_secs ASC, rowid ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

func (s *Store) selectRuns(query string, args ...any) ([]Run, error) {
	var rows []runRow
	if err := s.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}

	runs := make([]Run, 0, len(rows))
	for _, r := range rows {
		runs = append(runs, r.toRun())
	}
	return runs, nil
}

func (r runRow) toRun() Run {
	run := r.Run
	run.CreatedAt = r.Created.Time
	return run
}
