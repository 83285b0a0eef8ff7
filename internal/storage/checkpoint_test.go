package storage

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/dual-count/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "moneycount::data"

func setupCheckpoints(t *testing.T) (*SQLiteStorage, *CheckpointManager) {
	t.Helper()
	store, cleanup := createTestStorage(t)
	t.Cleanup(cleanup)

	cm := store.NewCheckpointManager()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	cm.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	return store, cm
}

func TestCheckpointManager_Create(t *testing.T) {
	ctx := context.Background()
	store, cm := setupCheckpoints(t)

	_, err := cm.Create(ctx, testKey, "", "")
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.SaveBlob(ctx, testKey, []byte(`{"v":1}`)))

	info, err := cm.Create(ctx, testKey, "", "first")
	require.NoError(t, err)
	assert.Equal(t, "checkpoint-2024-03-01-120200", info.ID)
	assert.Equal(t, testKey, info.Key)
	assert.Equal(t, "first", info.Description)
	assert.Equal(t, int64(7), info.Size)

	named, err := cm.Create(ctx, testKey, "before-import", "")
	require.NoError(t, err)
	assert.Equal(t, "before-import", named.ID)

	_, err = cm.Create(ctx, testKey, "before-import", "")
	require.ErrorIs(t, err, ErrCheckpointExists)

	_, err = cm.Create(ctx, testKey, "../escape", "")
	require.ErrorIs(t, err, ErrInvalidTag)
}

func TestCheckpointManager_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store, cm := setupCheckpoints(t)
	require.NoError(t, store.SaveBlob(ctx, testKey, []byte("x")))

	for _, tag := range []string{"one", "two", "three"} {
		_, err := cm.Create(ctx, testKey, tag, "")
		require.NoError(t, err)
	}

	list, err := cm.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "three", list[0].ID)
	assert.Equal(t, "two", list[1].ID)
	assert.Equal(t, "one", list[2].ID)
	assert.Equal(t, int64(1), list[0].Size)
	assert.Nil(t, list[0].Data)
}

func TestCheckpointManager_Restore(t *testing.T) {
	ctx := context.Background()
	store, cm := setupCheckpoints(t)

	require.NoError(t, store.SaveBlob(ctx, testKey, []byte("before")))
	_, err := cm.Create(ctx, testKey, "snap", "")
	require.NoError(t, err)
	require.NoError(t, store.SaveBlob(ctx, testKey, []byte("after")))

	info, err := cm.Restore(ctx, "snap")
	require.NoError(t, err)
	assert.Equal(t, "before", string(info.Data))

	data, err := store.LoadBlob(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, "before", string(data))

	_, err = cm.Restore(ctx, "missing")
	require.ErrorIs(t, err, ErrCheckpointNotFound)
}

func TestCheckpointManager_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	store, cm := setupCheckpoints(t)
	require.NoError(t, store.SaveBlob(ctx, testKey, []byte("data")))
	_, err := cm.Create(ctx, testKey, "snap", "desc")
	require.NoError(t, err)

	info, err := cm.Get(ctx, "snap")
	require.NoError(t, err)
	assert.Equal(t, "data", string(info.Data))
	assert.Equal(t, "desc", info.Description)

	require.NoError(t, cm.Delete(ctx, "snap"))
	require.ErrorIs(t, cm.Delete(ctx, "snap"), ErrCheckpointNotFound)

	_, err = cm.Get(ctx, "snap")
	require.ErrorIs(t, err, ErrCheckpointNotFound)
}
