package repositories

import (
	"context"
	"database/sql"
	"intersection-estimator-service/internal/domain"
	"intersection-estimator-service/internal/platform/obs"
	"intersection-estimator-service/internal/ports"

	"github.com/pkg/errors"
)

// SQLEstimateRepository is a postgres-backed EstimateRepository.
type SQLEstimateRepository struct {
	DB *sql.DB
}

func NewSQLEstimateRepository(db *sql.DB) *SQLEstimateRepository {
	return &SQLEstimateRepository{DB: db}
}

// Store a single estimate. Saving an existing id replaces it.
func (s *SQLEstimateRepository) Save(ctx context.Context, e *domain.Estimate) (err error) {
	defer obs.Time(ctx, "estimate.repo.Save")(&err)

	if s.DB == nil {
		return errors.New("estimate repository: db is nil")
	}

	row, err := toRow(e)
	if err != nil {
		return errors.Wrap(err, "save estimate")
	}

	q := `
	INSERT INTO intersection_estimates (` + estimateColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (estimate_id) DO UPDATE SET
		dimension = EXCLUDED.dimension,
		segment_a = EXCLUDED.segment_a,
		segment_b = EXCLUDED.segment_b,
		point = EXCLUDED.point,
		endpoint = EXCLUDED.endpoint,
		created_at = EXCLUDED.created_at;
	`
	if _, err := s.DB.ExecContext(ctx, q,
		row.id, row.dimension, row.segmentA, row.segmentB, row.point, row.endpoint, row.createdAt,
	); err != nil {
		return errors.Wrapf(err, "save estimate: insert estimate_id=%s", row.id)
	}

	return nil
}

// Return one estimate by id, or ports.ErrNotFound.
func (s *SQLEstimateRepository) Get(ctx context.Context, estimateID string) (_ *domain.Estimate, err error) {
	defer obs.Time(ctx, "estimate.repo.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("estimate repository: db is nil")
	}

	q := `
	SELECT ` + estimateColumns + `
	FROM intersection_estimates
	WHERE estimate_id = $1;
	`
	e, err := scanEstimate(s.DB.QueryRowContext(ctx, q, estimateID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ports.ErrNotFound, "get estimate %q", estimateID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get estimate %q", estimateID)
	}

	return e, nil
}

// Return up to limit estimates, newest first.
func (s *SQLEstimateRepository) List(ctx context.Context, limit int) (_ []*domain.Estimate, err error) {
	defer obs.Time(ctx, "estimate.repo.List")(&err)

	if s.DB == nil {
		return nil, errors.New("estimate repository: db is nil")
	}
	if limit <= 0 {
		return []*domain.Estimate{}, nil
	}

	q := `
	SELECT ` + estimateColumns + `
	FROM intersection_estimates
	ORDER BY created_at DESC, estimate_id
	LIMIT $1;
	`
	rows, err := s.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list estimates: query intersection_estimates table")
	}
	defer rows.Close()

	out := make([]*domain.Estimate, 0, limit)
	for rows.Next() {
		e, err := scanEstimate(rows)
		if err != nil {
			return nil, errors.Wrap(err, "list estimates: scan row")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list estimates: row iteration")
	}

	return out, nil
}
