package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportKey = "analysis_report"

// reportPayload stands in for an encoded analysis snapshot.
var reportPayload = []byte(`{"summary":{"total_records":3,"average_weight":2.5}}`)

func newTestAdapter(t *testing.T) (*RedisAdapter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	adapter, err := NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return adapter, mr
}

func TestRedisAdapter_GetSet(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	err := adapter.Set(ctx, reportKey, reportPayload, 5*time.Minute)
	assert.NoError(t, err)

	retrieved, err := adapter.Get(ctx, reportKey)
	assert.NoError(t, err)
	assert.Equal(t, reportPayload, retrieved)
}

func TestRedisAdapter_GetNotFound(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	_, err := adapter.Get(context.Background(), "missing_report")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "key not found")
}

func TestRedisAdapter_Delete(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	err := adapter.Set(ctx, reportKey, reportPayload, 0)
	require.NoError(t, err)

	err = adapter.Delete(ctx, reportKey)
	assert.NoError(t, err)

	_, err = adapter.Get(ctx, reportKey)
	assert.Error(t, err)
}

func TestRedisAdapter_TTL(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	err := adapter.Set(ctx, reportKey, reportPayload, 1*time.Second)
	require.NoError(t, err)

	// Still cached before the TTL elapses.
	_, err = adapter.Get(ctx, reportKey)
	assert.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = adapter.Get(ctx, reportKey)
	assert.Error(t, err)
}

func TestRedisAdapter_Ping(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	err := adapter.Ping(context.Background())
	assert.NoError(t, err)
}

func TestRedisAdapter_InvalidURL(t *testing.T) {
	_, err := NewRedisAdapter("invalid://url")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}
