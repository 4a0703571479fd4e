package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/cardver/internal/application/port"
	"github.com/bnema/cardver/internal/domain/entity"
	"github.com/bnema/cardver/internal/logging"
)

const checkRunColumns = `id, card_type, manifest_path, artifact_path,
	manifest_version, embedded_version, registration_version,
	ok, problems, started_at, duration_ns`

type checkRunRepo struct {
	db *sql.DB
}

// NewCheckRunRepository creates a new SQLite-backed check run repository.
func NewCheckRunRepository(db *sql.DB) port.CheckRunRepository {
	return &checkRunRepo{db: db}
}

func (r *checkRunRepo) Save(ctx context.Context, run *entity.CheckRun) error {
	if run == nil || run.ID == "" {
		return errors.New("check run must have an id")
	}

	problems := run.Problems
	if problems == nil {
		problems = []string{}
	}
	encoded, err := json.Marshal(problems)
	if err != nil {
		return fmt.Errorf("failed to encode problems: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO check_runs (`+checkRunColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	ok = excluded.ok,
	problems = excluded.problems,
	duration_ns = excluded.duration_ns`,
		run.ID, run.CardType, run.ManifestPath, run.ArtifactPath,
		run.ManifestVersion, run.EmbeddedVersion, run.RegistrationVersion,
		boolToInt(run.OK), string(encoded), run.StartedAt.UnixNano(), int64(run.Duration),
	)
	if err != nil {
		return fmt.Errorf("failed to save check run %s: %w", run.ID, err)
	}

	logging.FromContext(ctx).Debug().Str("run_id", run.ID).Bool("ok", run.OK).Msg("check run recorded")
	return nil
}

func (r *checkRunRepo) GetRecent(ctx context.Context, limit int) ([]*entity.CheckRun, error) {
	if limit <= 0 {
		return []*entity.CheckRun{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT `+checkRunColumns+`
FROM check_runs
ORDER BY started_at DESC, rowid DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query check runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs := make([]*entity.CheckRun, 0, limit)
	for rows.Next() {
		run, err := scanCheckRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate check runs: %w", err)
	}
	return runs, nil
}

func (r *checkRunRepo) FindByID(ctx context.Context, id string) (*entity.CheckRun, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+checkRunColumns+` FROM check_runs WHERE id = ?`, id)
	run, err := scanCheckRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheckRun(s rowScanner) (*entity.CheckRun, error) {
	var (
		run        entity.CheckRun
		ok         int64
		problems   string
		startedAt  int64
		durationNS int64
	)
	err := s.Scan(
		&run.ID, &run.CardType, &run.ManifestPath, &run.ArtifactPath,
		&run.ManifestVersion, &run.EmbeddedVersion, &run.RegistrationVersion,
		&ok, &problems, &startedAt, &durationNS,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan check run: %w", err)
	}

	run.OK = ok != 0
	run.StartedAt = time.Unix(0, startedAt)
	run.Duration = time.Duration(durationNS)
	if err := json.Unmarshal([]byte(problems), &run.Problems); err != nil {
		return nil, fmt.Errorf("failed to decode problems of run %s: %w", run.ID, err)
	}
	return &run, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
