package http

import (
	"context"

	"github.com/tai160903/viet-coffee-server/internal/auth"
)

type contextKey int

const (
	claimsKey contextKey = iota
	tokenKey
)

// WithSession stores the verified session claims and raw bearer token on the
// request context; the transport middleware calls this once per request.
func WithSession(ctx context.Context, claims auth.Claims, token string) context.Context {
	ctx = context.WithValue(ctx, claimsKey, claims)
	return context.WithValue(ctx, tokenKey, token)
}

func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(auth.Claims)
	return claims, ok
}

func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}
