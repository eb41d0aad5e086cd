package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCacheHelper_SetGet(t *testing.T) {
	_, client := newTestCache(t)
	helper := NewCacheHelper(client, "report:")
	ctx := context.Background()

	type payload struct {
		Total int64  `json:"total"`
		Name  string `json:"name"`
	}

	err := helper.Set(ctx, "stats", payload{Total: 42, Name: "system"}, time.Minute)
	require.NoError(t, err)

	var got payload
	require.NoError(t, helper.Get(ctx, "stats", &got))
	assert.Equal(t, int64(42), got.Total)
	assert.Equal(t, "system", got.Name)
}

func TestCacheHelper_GetMissing(t *testing.T) {
	_, client := newTestCache(t)
	helper := NewCacheHelper(client, "report:")

	var dest map[string]any
	err := helper.Get(context.Background(), "absent", &dest)
	assert.ErrorIs(t, err, ErrCacheNotFound)
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "report:")
	ctx := context.Background()

	assert.NoError(t, helper.Set(ctx, "k", "v", time.Minute))
	assert.NoError(t, helper.Delete(ctx, "k"))

	var dest string
	assert.ErrorIs(t, helper.Get(ctx, "k", &dest), ErrCacheNotAvailable)
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	mr, client := newTestCache(t)
	helper := NewCacheHelper(client, "report:")
	ctx := context.Background()

	require.NoError(t, helper.Set(ctx, "students:all", "a", time.Minute))
	require.NoError(t, helper.Set(ctx, "students:career:1", "b", time.Minute))
	require.NoError(t, helper.Set(ctx, "teachers:all", "c", time.Minute))

	require.NoError(t, helper.InvalidatePattern(ctx, "students:*"))

	assert.False(t, mr.Exists("report:students:all"))
	assert.False(t, mr.Exists("report:students:career:1"))
	assert.True(t, mr.Exists("report:teachers:all"))
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	_, client := newTestCache(t)
	helper := NewCacheHelper(client, "stats:")
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return map[string]int64{"total": 7}, nil
	}

	var first map[string]int64
	require.NoError(t, helper.CacheOrExecute(ctx, "system", &first, time.Minute, fetch))
	assert.Equal(t, int64(7), first["total"])
	assert.Equal(t, 1, calls)

	// The async cache write may still be in flight; give it a moment.
	assert.Eventually(t, func() bool {
		ok, err := helper.Exists(ctx, "system")
		return err == nil && ok
	}, time.Second, 10*time.Millisecond)

	var second map[string]int64
	require.NoError(t, helper.CacheOrExecute(ctx, "system", &second, time.Minute, fetch))
	assert.Equal(t, int64(7), second["total"])
	assert.Equal(t, 1, calls)
}

func TestCacheManager_InvalidateReports(t *testing.T) {
	mr, client := newTestCache(t)
	manager := NewCacheManager(client)
	ctx := context.Background()

	require.NoError(t, manager.Report.Set(ctx, "students:all", "x", time.Minute))
	require.NoError(t, manager.Stats.Set(ctx, "system", "y", time.Minute))
	require.NoError(t, manager.Subject.Set(ctx, "list:1", "z", time.Minute))

	require.NoError(t, manager.InvalidateReports(ctx))

	assert.False(t, mr.Exists("report:students:all"))
	assert.False(t, mr.Exists("stats:system"))
	assert.True(t, mr.Exists("subject:list:1"))
}
