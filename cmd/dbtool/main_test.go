package main

import (
	"context"
	"intersection-estimator-service/internal/adapters/repositories"
	"intersection-estimator-service/internal/platform/db"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaySeeds(t *testing.T) {
	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, repositories.InitSchema(conn))

	repo := repositories.NewSqliteEstimateRepository(conn)
	ctx := context.Background()

	n, err := replaySeeds(ctx, repo, filepath.Join("..", "..", "data", "seeds", "segments.json"), 2)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	stored, err := repo.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, stored, 4)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"segment_a": "LINESTRING (0 0, 1 1)", "segment_b": ""}]`), 0o644))
	_, err = replaySeeds(ctx, repo, bad, 2)
	assert.Error(t, err)
}
