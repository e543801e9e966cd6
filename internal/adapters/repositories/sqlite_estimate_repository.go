package repositories

import (
	"context"
	"database/sql"
	"intersection-estimator-service/internal/domain"
	"intersection-estimator-service/internal/platform/obs"
	"intersection-estimator-service/internal/ports"

	"github.com/pkg/errors"
)

// SQLite-backed implementation of the EstimateRepository port.
type SqliteEstimateRepository struct{ DB *sql.DB }

func NewSqliteEstimateRepository(db *sql.DB) *SqliteEstimateRepository {
	return &SqliteEstimateRepository{DB: db}
}

// Store a single estimate. Saving an existing id replaces it.
func (s *SqliteEstimateRepository) Save(ctx context.Context, e *domain.Estimate) (err error) {
	defer obs.Time(ctx, "estimate.sqlite.Save")(&err)

	if s.DB == nil {
		return errors.New("sqlite estimate repository: DB is nil")
	}

	row, err := toRow(e)
	if err != nil {
		return errors.Wrap(err, "save estimate")
	}

	query := `
	INSERT OR REPLACE INTO intersection_estimates (` + estimateColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query,
		row.id, row.dimension, row.segmentA, row.segmentB, row.point, row.endpoint, row.createdAt,
	); err != nil {
		return errors.Wrapf(err, "save estimate: insert estimate_id=%s", row.id)
	}

	return nil
}

// Return one estimate by id, or ports.ErrNotFound.
func (s *SqliteEstimateRepository) Get(ctx context.Context, estimateID string) (_ *domain.Estimate, err error) {
	defer obs.Time(ctx, "estimate.sqlite.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite estimate repository: DB is nil")
	}

	query := `
	SELECT ` + estimateColumns + `
	FROM intersection_estimates
	WHERE estimate_id = ?;
	`
	e, err := scanEstimate(s.DB.QueryRowContext(ctx, query, estimateID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ports.ErrNotFound, "get estimate %q", estimateID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get estimate %q", estimateID)
	}

	return e, nil
}

// Return up to limit estimates, newest first.
func (s *SqliteEstimateRepository) List(ctx context.Context, limit int) (_ []*domain.Estimate, err error) {
	defer obs.Time(ctx, "estimate.sqlite.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite estimate repository: DB is nil")
	}
	if limit <= 0 {
		return []*domain.Estimate{}, nil
	}

	query := `
	SELECT ` + estimateColumns + `
	FROM intersection_estimates
	ORDER BY created_at DESC, estimate_id
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list estimates: query intersection_estimates table")
	}
	defer rows.Close()

	estimates := make([]*domain.Estimate, 0, limit)
	for rows.Next() {
		e, err := scanEstimate(rows)
		if err != nil {
			return nil, errors.Wrap(err, "list estimates: scan row")
		}
		estimates = append(estimates, e)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list estimates: row iteration")
	}

	return estimates, nil
}
