package seen

import (
	"context"

	"github.com/google/uuid"
)

type sessionKey struct{}

// DefaultSession is used when the context carries no session.
const DefaultSession = "default"

// WithSession returns a context bound to session id.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// NewSession binds a freshly generated session id to ctx.
func NewSession(ctx context.Context) context.Context {
	return WithSession(ctx, uuid.NewString())
}

// SessionID returns the session bound to ctx, or DefaultSession.
func SessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionKey{}).(string); ok && id != "" {
		return id
	}
	return DefaultSession
}
