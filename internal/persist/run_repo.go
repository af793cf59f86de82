package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// RunRow is one finished run.
type RunRow struct {
	ID                 int64
	Seed               uint64
	Ruleset            string // config fingerprint
	Score              int64
	Wave               int
	AsteroidsDestroyed int
	EnemiesDestroyed   int
	BossesDefeated     int
	ShotsFired         int
	BombsDropped       int
	ShipsLost          int
	PlaySeconds        float64
	EndedAt            time.Time
}

// Milestone is a notable moment of a run: a cleared wave or a boss
// entering a new phase.
type Milestone struct {
	Kind  string // "wave_cleared", "boss_phase"
	Wave  int
	Value int64   // clear bonus, or the phase index entered
	At    float64 // seconds of play
}

type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// Record writes the run and its milestones in a single transaction and
// returns the new run id.
func (r *RunRepo) Record(ctx context.Context, run RunRow, milestones []Milestone) (int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("record begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO runs (seed, ruleset, score, wave, asteroids_destroyed, enemies_destroyed,
		                   bosses_defeated, shots_fired, bombs_dropped, ships_lost, play_seconds)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		int64(run.Seed), run.Ruleset, run.Score, run.Wave, run.AsteroidsDestroyed, run.EnemiesDestroyed,
		run.BossesDefeated, run.ShotsFired, run.BombsDropped, run.ShipsLost, run.PlaySeconds,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	if len(milestones) > 0 {
		batch := &pgx.Batch{}
		for _, m := range milestones {
			batch.Queue(
				`INSERT INTO run_milestones (run_id, kind, wave, value, at_secs)
				 VALUES ($1, $2, $3, $4, $5)`,
				id, m.Kind, m.Wave, m.Value, m.At,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return 0, fmt.Errorf("insert milestones: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("record commit: %w", err)
	}
	return id, nil
}

// Top returns the highest scoring runs played under ruleset, best first.
func (r *RunRepo) Top(ctx context.Context, ruleset string, limit int) ([]RunRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, seed, ruleset, score, wave, asteroids_destroyed, enemies_destroyed, bosses_defeated,
		        shots_fired, bombs_dropped, ships_lost, play_seconds, ended_at
		 FROM runs WHERE ruleset = $1 ORDER BY score DESC, id ASC LIMIT $2`, ruleset, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var row RunRow
		var seed int64
		if err := rows.Scan(
			&row.ID, &seed, &row.Ruleset, &row.Score, &row.Wave, &row.AsteroidsDestroyed, &row.EnemiesDestroyed,
			&row.BossesDefeated, &row.ShotsFired, &row.BombsDropped, &row.ShipsLost,
			&row.PlaySeconds, &row.EndedAt,
		); err != nil {
			return nil, err
		}
		row.Seed = uint64(seed)
		out = append(out, row)
	}
	return out, rows.Err()
}

// Best returns the top score under ruleset, or 0 when none is recorded.
func (r *RunRepo) Best(ctx context.Context, ruleset string) (int64, error) {
	var best int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT score FROM runs WHERE ruleset = $1 ORDER BY score DESC LIMIT 1`, ruleset,
	).Scan(&best)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return best, nil
}
