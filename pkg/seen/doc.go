// Package seen remembers which values a column has already produced during
// one processing session. The unique constraint uses it to report the row a
// duplicate was first seen in.
//
// A session is carried in the context. Stores keep one table per session and
// unique column, so concurrent sessions never see each other's values:
//
//	ctx := seen.NewSession(context.Background())
//	store := seen.NewMemoryStore()
//	first, dup, err := store.Seen(ctx, "users/read/email", "a@example.com", 2)
//
// RedisStore shares the table between processes that read parts of the same
// stream; ConnectRedis opens a client with retries.
package seen
