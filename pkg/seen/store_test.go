package seen_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/csvbind/pkg/seen"
)

func TestSession(t *testing.T) {
	t.Parallel()

	assert.Equal(t, seen.DefaultSession, seen.SessionID(context.Background()))
	assert.Equal(t, "run-1", seen.SessionID(seen.WithSession(context.Background(), "run-1")))

	a := seen.SessionID(seen.NewSession(context.Background()))
	b := seen.SessionID(seen.NewSession(context.Background()))
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}

func testStore(t *testing.T, store seen.Store) {
	t.Helper()
	ctx := seen.NewSession(context.Background())

	first, dup, err := store.Seen(ctx, "email", "a@example.com", 2)
	require.NoError(t, err)
	assert.False(t, dup)
	assert.Equal(t, 2, first)

	first, dup, err = store.Seen(ctx, "email", "b@example.com", 3)
	require.NoError(t, err)
	assert.False(t, dup)
	assert.Equal(t, 3, first)

	first, dup, err = store.Seen(ctx, "email", "a@example.com", 4)
	require.NoError(t, err)
	assert.True(t, dup)
	assert.Equal(t, 2, first)

	// Fields have separate tables.
	_, dup, err = store.Seen(ctx, "login", "a@example.com", 4)
	require.NoError(t, err)
	assert.False(t, dup)

	// So do sessions.
	other := seen.NewSession(context.Background())
	_, dup, err = store.Seen(other, "email", "a@example.com", 9)
	require.NoError(t, err)
	assert.False(t, dup)

	require.NoError(t, store.Reset(ctx))
	_, dup, err = store.Seen(ctx, "email", "a@example.com", 5)
	require.NoError(t, err)
	assert.False(t, dup)

	_, dup, err = store.Seen(other, "email", "a@example.com", 10)
	require.NoError(t, err)
	assert.True(t, dup, "reset must not touch other sessions")

	require.NoError(t, store.Reset(ctx))
	require.NoError(t, store.Reset(other))
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	testStore(t, seen.NewMemoryStore())
}

func TestMemoryStoreConcurrentSessions(t *testing.T) {
	t.Parallel()

	store := seen.NewMemoryStore()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := seen.NewSession(context.Background())
			for row := 1; row <= 50; row++ {
				_, dup, err := store.Seen(ctx, "id", "same", row)
				assert.NoError(t, err)
				assert.Equal(t, row > 1, dup)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, store.Sessions())
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("CSVBIND_REDIS_URL")
	if url == "" || testing.Short() {
		t.Skip("CSVBIND_REDIS_URL is not set")
	}

	client, err := seen.ConnectRedis(context.Background(), seen.RedisConfig{
		ConnectionURL:  url,
		RetryAttempts:  3,
		RetryInterval:  time.Second,
		ConnectTimeout: 10 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, seen.Healthcheck(client)(context.Background()))
	testStore(t, seen.NewRedisStore(client, seen.WithKeyPrefix("csvbind:test"), seen.WithTTL(time.Minute)))
}

func TestConnectRedisInvalidURL(t *testing.T) {
	t.Parallel()

	_, err := seen.ConnectRedis(context.Background(), seen.RedisConfig{
		ConnectionURL:  "not a url",
		ConnectTimeout: time.Second,
	})
	require.ErrorIs(t, err, seen.ErrFailedToParseRedisURL)
}
