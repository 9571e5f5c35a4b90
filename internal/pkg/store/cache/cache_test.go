package cache

import (
	"context"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/store"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/store/inmem"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strconv"
	"sync"
	"testing"
	"time"
)

type fakeRedis struct {
	mx   sync.Mutex
	data map[string]string
	sets int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mx.Lock()
	defer f.mx.Unlock()
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.sets++
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	f.mx.Lock()
	defer f.mx.Unlock()
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func TestListAwardDocuments_ReadThrough(t *testing.T) {
	ctx := context.Background()
	backing := inmem.New()
	require.NoError(t, backing.PutAwardDocument(ctx, "school", domain.AwardDocument{ID: "2506_a", OrderingParty: "a"}))

	rdb := newFakeRedis()
	s := New(backing, rdb, time.Minute)
	prefix := "2506_"
	opts := store.ListAwardDocumentsOpts{Collection: "school", IDPrefix: &prefix}

	docs, err := s.ListAwardDocuments(ctx, opts)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 1, rdb.sets)

	// served from cache: a write that bypasses the decorator is not visible
	require.NoError(t, backing.PutAwardDocument(ctx, "school", domain.AwardDocument{ID: "2506_b", OrderingParty: "b"}))
	docs, err = s.ListAwardDocuments(ctx, opts)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, 1, rdb.sets)
}

func TestPutAwardDocument_BumpsGeneration(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	s := New(inmem.New(), rdb, time.Minute)
	opts := store.ListAwardDocumentsOpts{Collection: "school"}

	docs, err := s.ListAwardDocuments(ctx, opts)
	require.NoError(t, err)
	assert.Empty(t, docs)
	staleKey := listKey(opts, 0)

	require.NoError(t, s.PutAwardDocument(ctx, "school", domain.AwardDocument{ID: "2506_a"}))
	assert.Equal(t, "1", rdb.data[generationKey("school")])

	docs, err = s.ListAwardDocuments(ctx, opts)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.NotEqual(t, staleKey, listKey(opts, 1))
	assert.Contains(t, rdb.data, listKey(opts, 1))
}

func TestListKey(t *testing.T) {
	prefix, ym := "2506_", "2025-06"
	assert.Equal(t, "tkschool:docs:school:2506_:2025-06:3",
		listKey(store.ListAwardDocumentsOpts{Collection: "school", IDPrefix: &prefix, YearMonth: &ym}, 3))
	assert.Equal(t, "tkschool:docs:school:::0", listKey(store.ListAwardDocumentsOpts{Collection: "school"}, 0))
}
