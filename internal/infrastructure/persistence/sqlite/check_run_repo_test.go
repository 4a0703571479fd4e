package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/cardver/internal/domain/entity"
	"github.com/bnema/cardver/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/cardver/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func newRepo(t *testing.T) (context.Context, *sqlite.LazyDB) {
	t.Helper()
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "history", "cardver.sqlite"))
	t.Cleanup(func() { _ = lazy.Close() })
	return ctx, lazy
}

func TestCheckRunRepository_SaveAndFind(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "cardver.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewCheckRunRepository(db)
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	run := &entity.CheckRun{
		ID:                  "run-1",
		CardType:            "demo-card",
		ManifestPath:        "package.json",
		ArtifactPath:        "dist/demo-card.js",
		ManifestVersion:     "1.4.0",
		EmbeddedVersion:     "1.3.9",
		RegistrationVersion: "1.4.0",
		OK:                  false,
		Problems:            []string{`embedded version "1.3.9" does not match manifest version "1.4.0"`},
		StartedAt:           started,
		Duration:            150 * time.Millisecond,
	}
	require.NoError(t, repo.Save(ctx, run))

	got, err := repo.FindByID(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, run.CardType, got.CardType)
	assert.Equal(t, run.ManifestPath, got.ManifestPath)
	assert.Equal(t, run.EmbeddedVersion, got.EmbeddedVersion)
	assert.False(t, got.OK)
	assert.Equal(t, run.Problems, got.Problems)
	assert.True(t, started.Equal(got.StartedAt))
	assert.Equal(t, 150*time.Millisecond, got.Duration)
}

func TestCheckRunRepository_FindByID_NotFound(t *testing.T) {
	ctx, lazy := newRepo(t)
	repo := sqlite.NewLazyCheckRunRepository(lazy)

	got, err := repo.FindByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCheckRunRepository_SaveRequiresID(t *testing.T) {
	ctx, lazy := newRepo(t)
	repo := sqlite.NewLazyCheckRunRepository(lazy)

	assert.Error(t, repo.Save(ctx, &entity.CheckRun{}))
	assert.Error(t, repo.Save(ctx, nil))
}

func TestCheckRunRepository_GetRecent(t *testing.T) {
	ctx, lazy := newRepo(t)
	repo := sqlite.NewLazyCheckRunRepository(lazy)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Save(ctx, &entity.CheckRun{
			ID:        id,
			CardType:  "demo-card",
			OK:        true,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	runs, err := repo.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
	assert.True(t, runs[0].OK)
	assert.Empty(t, runs[0].Problems)

	none, err := repo.GetRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCheckRunRepository_SaveTwiceUpdates(t *testing.T) {
	ctx, lazy := newRepo(t)
	repo := sqlite.NewLazyCheckRunRepository(lazy)

	run := &entity.CheckRun{ID: "run-1", StartedAt: time.Now()}
	require.NoError(t, repo.Save(ctx, run))

	run.OK = true
	require.NoError(t, repo.Save(ctx, run))

	runs, err := repo.GetRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].OK)
}
