package repositories

import (
	"database/sql"
	"encoding/json"
	"intersection-estimator-service/internal/adapters/coords"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Initialize the estimates schema. The DDL is shared by SQLite and postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "init schema: begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	createEstimatesQuery := `
	CREATE TABLE IF NOT EXISTS intersection_estimates (
		estimate_id TEXT PRIMARY KEY,
		dimension INTEGER NOT NULL,
		segment_a TEXT NOT NULL,
		segment_b TEXT NOT NULL,
		point TEXT NOT NULL,
		endpoint TEXT NOT NULL,
		created_at BIGINT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_intersection_estimates_created_at
	ON intersection_estimates(created_at);
	`

	statements := []string{
		createEstimatesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return errors.Wrapf(err, "init schema: exec statement #%d", i+1)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "init schema: commit tx")
	}

	return nil
}

// A segment pair to replay through the estimator, as WKT LINESTRINGs.
type SegmentPairSeed struct {
	SegmentA string `json:"segment_a"`
	SegmentB string `json:"segment_b"`
}

// Read and validate segment pairs from a JSON file.
func SeedFromJSON(jsonPath string) ([]SegmentPairSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, errors.Wrapf(err, "seed segments: read %q", jsonPath)
	}

	var data []SegmentPairSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, errors.Wrap(err, "seed segments: parse json")
	}

	rows := make([]SegmentPairSeed, 0, len(data))
	for i, item := range data {
		a := strings.TrimSpace(item.SegmentA)
		b := strings.TrimSpace(item.SegmentB)
		if a == "" || b == "" {
			return nil, errors.Errorf("seed segments: item at index %d: both segments are required", i+1)
		}

		if _, err := coords.ParseSegmentWKT(a); err != nil {
			return nil, errors.Wrapf(err, "seed segments: segment_a at index %d", i+1)
		}
		if _, err := coords.ParseSegmentWKT(b); err != nil {
			return nil, errors.Wrapf(err, "seed segments: segment_b at index %d", i+1)
		}

		rows = append(rows, SegmentPairSeed{SegmentA: a, SegmentB: b})
	}

	return rows, nil
}
