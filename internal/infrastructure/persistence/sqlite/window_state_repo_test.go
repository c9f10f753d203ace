package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/nativewindow/internal/application/port"
	"github.com/bnema/nativewindow/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/nativewindow/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openRepo(t *testing.T) port.WindowStateRepository {
	t.Helper()
	db, err := sqlite.NewConnection(testCtx(), filepath.Join(t.TempDir(), "state", "nativewindow.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlite.NewWindowStateRepository(db)
}

func ptr(v float64) *float64 { return &v }

func TestWindowStateRepository_CRUD(t *testing.T) {
	ctx := testCtx()
	repo := openRepo(t)

	got, err := repo.Get(ctx, "main")
	require.NoError(t, err)
	assert.Nil(t, got, "missing key returns nil without error")

	updatedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, &port.WindowGeometry{
		Key: "main", Width: 1024, Height: 768, X: ptr(10), Y: ptr(-20), UpdatedAt: updatedAt,
	}))

	got, err = repo.Get(ctx, "main")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "main", got.Key)
	assert.InDelta(t, 1024, got.Width, 0)
	assert.InDelta(t, 768, got.Height, 0)
	require.NotNil(t, got.X)
	require.NotNil(t, got.Y)
	assert.InDelta(t, 10, *got.X, 0)
	assert.InDelta(t, -20, *got.Y, 0)
	assert.True(t, got.UpdatedAt.Equal(updatedAt))

	// Upsert replaces the row and clears the position
	require.NoError(t, repo.Save(ctx, &port.WindowGeometry{Key: "main", Width: 640, Height: 480}))
	got, err = repo.Get(ctx, "main")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 640, got.Width, 0)
	assert.Nil(t, got.X)
	assert.Nil(t, got.Y)
	assert.False(t, got.UpdatedAt.IsZero())

	require.NoError(t, repo.Delete(ctx, "main"))
	got, err = repo.Get(ctx, "main")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, repo.Delete(ctx, "main"), "deleting a missing key is not an error")
}

func TestWindowStateRepository_List(t *testing.T) {
	ctx := testCtx()
	repo := openRepo(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, &port.WindowGeometry{Key: "old", Width: 1, Height: 1, UpdatedAt: base}))
	require.NoError(t, repo.Save(ctx, &port.WindowGeometry{Key: "new", Width: 2, Height: 2, UpdatedAt: base.Add(time.Hour)}))

	states, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, "new", states[0].Key)
	assert.Equal(t, "old", states[1].Key)
}

func TestWindowStateRepository_SaveRequiresKey(t *testing.T) {
	ctx := testCtx()
	repo := openRepo(t)

	assert.Error(t, repo.Save(ctx, &port.WindowGeometry{Width: 1, Height: 1}))
	assert.Error(t, repo.Save(ctx, nil))
}

func TestNewConnection_ReopenKeepsData(t *testing.T) {
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "nativewindow.sqlite")

	db, err := sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, sqlite.NewWindowStateRepository(db).Save(ctx, &port.WindowGeometry{Key: "main", Width: 5, Height: 6}))
	require.NoError(t, db.Close())

	db, err = sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	version, err := sqlite.GetMigrationStatus(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	got, err := sqlite.NewWindowStateRepository(db).Get(ctx, "main")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 6, got.Height, 0)
}

func TestNewConnection_EmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(testCtx(), "")
	assert.Error(t, err)
}

func TestLazyDB_NotInitializedByDefault(t *testing.T) {
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "test.db"))

	assert.False(t, lazy.IsInitialized(), "LazyDB should not be initialized before DB() is called")
	assert.NoError(t, lazy.Close(), "closing before init is a no-op")
}

func TestLazyDB_ConcurrentAccess(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() { _ = lazy.Close() })

	const goroutines = 10
	var wg sync.WaitGroup
	dbs := make([]any, goroutines)
	errs := make([]error, goroutines)
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dbs[i], errs[i] = lazy.DB(ctx)
		}()
	}
	wg.Wait()

	for i := range goroutines {
		require.NoError(t, errs[i])
		assert.Same(t, dbs[0], dbs[i], "all callers share one connection")
	}
	assert.True(t, lazy.IsInitialized())
}

func TestLazyWindowStateRepository(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "lazy.sqlite"))
	t.Cleanup(func() { _ = lazy.Close() })

	repo := sqlite.NewLazyWindowStateRepository(lazy)
	assert.False(t, lazy.IsInitialized())

	require.NoError(t, repo.Save(ctx, &port.WindowGeometry{Key: "main", Width: 300, Height: 200}))
	assert.True(t, lazy.IsInitialized())

	states, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "main", states[0].Key)
}

func TestLazyWindowStateRepository_InitError(t *testing.T) {
	repo := sqlite.NewLazyWindowStateRepository(sqlite.NewLazyDB(""))

	_, err := repo.Get(testCtx(), "main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database initialization failed")
}
