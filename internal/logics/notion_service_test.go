package logics

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeNotionAPI counts origin fetches for cache behaviour assertions.
type fakeNotionAPI struct {
	calls   int
	payload json.RawMessage
	err     error
}

func (f *fakeNotionAPI) GetPageBlocks(ctx context.Context, pageID string) (json.RawMessage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func setupNotionTest(t *testing.T, api *fakeNotionAPI, ttl time.Duration) (*NotionService, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	return NewNotionService(client, api, ttl, zap.NewNop()), server
}

func TestNotionService_GetPage(t *testing.T) {
	t.Run("cache hit skips the origin fetch", func(t *testing.T) {
		api := &fakeNotionAPI{payload: json.RawMessage(`{"results":["fresh"]}`)}
		service, server := setupNotionTest(t, api, time.Minute)
		require.NoError(t, server.Set("notion:page:page-1", `{"results":["cached"]}`))

		blocks, err := service.GetPage(context.Background(), "page-1")

		require.NoError(t, err)
		assert.JSONEq(t, `{"results":["cached"]}`, string(blocks))
		assert.Equal(t, 0, api.calls)
	})

	t.Run("cache miss fetches the origin and stores the result with ttl", func(t *testing.T) {
		api := &fakeNotionAPI{payload: json.RawMessage(`{"results":["fresh"]}`)}
		service, server := setupNotionTest(t, api, time.Minute)

		blocks, err := service.GetPage(context.Background(), "page-2")

		require.NoError(t, err)
		assert.JSONEq(t, `{"results":["fresh"]}`, string(blocks))
		assert.Equal(t, 1, api.calls)

		cached, err := server.Get("notion:page:page-2")
		require.NoError(t, err)
		assert.JSONEq(t, `{"results":["fresh"]}`, cached)
		assert.Equal(t, time.Minute, server.TTL("notion:page:page-2"))
	})

	t.Run("origin failure on a miss surfaces the error", func(t *testing.T) {
		api := &fakeNotionAPI{err: errors.New("notion unavailable")}
		service, _ := setupNotionTest(t, api, time.Minute)

		_, err := service.GetPage(context.Background(), "page-3")

		require.Error(t, err)
		assert.Equal(t, 1, api.calls)
	})
}
