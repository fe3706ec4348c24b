package service

import "context"

// Principal is the authenticated actor behind a request, built from a
// validated token. It travels through the call chain on the request context
// rather than through any ambient global.
type Principal struct {
	UserID  string
	Email   string
	Role    Role
	TokenID string
}

type principalKey struct{}

// ContextWithPrincipal returns a context carrying the principal.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext extracts the principal set by the authentication
// middleware, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}
