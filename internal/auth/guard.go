package auth

import (
	"errors"
	"time"

	"github.com/sambathreasmey/library-management-system/pkg/redis"
	"github.com/sambathreasmey/library-management-system/pkg/token"
	"github.com/valyala/fasthttp"
)

// Cookie names follow the double-cookie session layout: the short-lived
// access token rides on every request, the refresh token is only read
// by the refresh endpoints.
const (
	AccessCookie  = "access_token_cookie"
	RefreshCookie = "refresh_token_cookie"
)

var (
	// ErrUnauthenticated means no usable identity: missing token, bad
	// signature, revoked, or wrong token class.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrExpiredAccess means the access token was valid but aged out,
	// the caller may still hold a live refresh token.
	ErrExpiredAccess = errors.New("access token expired")
	// ErrForbidden means the identity is known but lacks the admin bit.
	ErrForbidden = errors.New("admin privileges required")
)

// Principal is the request identity resolved from a verified token.
type Principal struct {
	UserID   string
	Username string
	IsAdmin  bool
}

// Guard resolves and enforces request identity. Revoked token ids live
// in redis until their natural expiry.
type Guard struct {
	tokens *token.Manager
	store  redis.RedisAdapter
}

func NewGuard(tokens *token.Manager, store redis.RedisAdapter) *Guard {
	return &Guard{
		tokens: tokens,
		store:  store,
	}
}

// Authenticate resolves the caller from the access cookie, falling back
// to an Authorization bearer header for API clients. Expired tokens are
// reported distinctly so the silent refresh flow can take over.
func (g *Guard) Authenticate(ctx *fasthttp.RequestCtx) (*Principal, error) {
	raw := accessToken(ctx)
	if raw == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := g.tokens.Verify(raw)
	if err != nil {
		if errors.Is(err, token.ErrExpired) && claims != nil && claims.TokenType == token.TypeAccess {
			return nil, ErrExpiredAccess
		}
		return nil, ErrUnauthenticated
	}
	if claims.TokenType != token.TypeAccess {
		return nil, ErrUnauthenticated
	}

	revoked, err := g.isRevoked(claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrUnauthenticated
	}

	return &Principal{
		UserID:   claims.Subject,
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
	}, nil
}

// RequireAdmin authenticates and additionally demands the admin bit.
func (g *Guard) RequireAdmin(ctx *fasthttp.RequestCtx) (*Principal, error) {
	principal, err := g.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	if !principal.IsAdmin {
		return nil, ErrForbidden
	}
	return principal, nil
}

// VerifyRefresh validates the refresh cookie. Refresh tokens get no
// expired-grace: once stale the caller logs in again.
func (g *Guard) VerifyRefresh(ctx *fasthttp.RequestCtx) (*token.Claims, error) {
	raw := string(ctx.Request.Header.Cookie(RefreshCookie))
	if raw == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := g.tokens.Verify(raw)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if claims.TokenType != token.TypeRefresh {
		return nil, ErrUnauthenticated
	}

	revoked, err := g.isRevoked(claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

// Revoke denylists one token id for the remainder of its lifetime.
func (g *Guard) Revoke(claims *token.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	ttl := time.Hour
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return g.store.Set(denyKey(claims.ID), []byte("1"), ttl)
}

// RevokeRequest denylists whatever tokens the request still carries,
// used on logout. Expired tokens are revoked too since their ids can
// be extracted from the parse error path.
func (g *Guard) RevokeRequest(ctx *fasthttp.RequestCtx) error {
	for _, raw := range []string{accessToken(ctx), string(ctx.Request.Header.Cookie(RefreshCookie))} {
		if raw == "" {
			continue
		}
		claims, err := g.tokens.Verify(raw)
		if err != nil && !errors.Is(err, token.ErrExpired) {
			continue
		}
		if err := g.Revoke(claims); err != nil {
			return err
		}
	}
	return nil
}

func (g *Guard) isRevoked(jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	n, err := g.store.Exist(denyKey(jti))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func denyKey(jti string) string {
	return "denylist:" + jti
}

func accessToken(ctx *fasthttp.RequestCtx) string {
	if v := ctx.Request.Header.Cookie(AccessCookie); len(v) > 0 {
		return string(v)
	}
	auth := string(ctx.Request.Header.Peek("Authorization"))
	const prefix = "Bearer "
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}
