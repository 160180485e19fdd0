package auth

import (
	"context"
	"time"
)

// Session is the authenticated admin of one request. It is built from a
// verified token by the HTTP middleware; handlers only ever read it.
type Session struct {
	AdminID   uint64
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
