package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/giftbox/internal/db"
	"github.com/alexanderramin/giftbox/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteSettingsRepo(testutil.NewTestDB(t))
	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettingsRepo_SetOverwrites(t *testing.T) {
	repo := NewSQLiteSettingsRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "k", "v1"))
	require.NoError(t, repo.Set(ctx, "k", "v2"))
	v, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
}

func TestSettingsRepo_SessionIDIsStable(t *testing.T) {
	repo := NewSQLiteSettingsRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	id, err := repo.GetOrCreateSessionID(ctx)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	again, err := repo.GetOrCreateSessionID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

// TestSettingsRepo_SessionIDConcurrentFirstUse uses a file-backed database so
// every pooled connection sees the same rows.
func TestSettingsRepo_SessionIDConcurrentFirstUse(t *testing.T) {
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	repo := NewSQLiteSettingsRepo(database)

	const workers = 8
	ids := make([]string, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i], errs[i] = repo.GetOrCreateSessionID(context.Background())
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
}
