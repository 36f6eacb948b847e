package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fasthttp/router"
	"github.com/sambathreasmey/library-management-system/internal/auth"
	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*model.User, *services.TokenPair, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.User), args.Get(1).(*services.TokenPair), args.Error(2)
}

func (m *MockAuthService) Refresh(ctx context.Context, subject string) (*model.User, *services.TokenPair, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.User), args.Get(1).(*services.TokenPair), args.Error(2)
}

func responseCookie(t *testing.T, ctx *fasthttp.RequestCtx, name string) *fasthttp.Cookie {
	t.Helper()
	raw := ctx.Response.Header.PeekCookie(name)
	require.NotEmpty(t, raw, "missing cookie %q", name)
	c := &fasthttp.Cookie{}
	require.NoError(t, c.ParseBytes(raw))
	return c
}

func TestAuthHandler_Login(t *testing.T) {
	user := &model.User{ID: 1, Username: "admin", IsAdmin: true}
	pair := &services.TokenPair{Access: "access-jwt", Refresh: "refresh-jwt"}

	t.Run("browser form sets cookies and redirects", func(t *testing.T) {
		svc := new(MockAuthService)
		guard, _ := newTestGuard(t)
		h := NewAuthHandler(svc, guard, 15*time.Minute, time.Hour, false)

		svc.On("Login", mock.Anything, "admin", "admin123").Return(user, pair, nil)

		ctx := setupTestContext("POST", "/auth/login?next=/books", []byte("username=admin&password=admin123"))
		ctx.Request.Header.SetContentType("application/x-www-form-urlencoded")
		h.Login(ctx)

		assert.Equal(t, fasthttp.StatusSeeOther, ctx.Response.StatusCode())
		assert.Equal(t, "/books", string(ctx.Response.Header.Peek("Location")))

		access := responseCookie(t, ctx, auth.AccessCookie)
		assert.Equal(t, "access-jwt", string(access.Value()))
		assert.True(t, access.HTTPOnly())
		assert.Equal(t, "/", string(access.Path()))

		refresh := responseCookie(t, ctx, auth.RefreshCookie)
		assert.Equal(t, "refresh-jwt", string(refresh.Value()))

		assert.NotEmpty(t, ctx.Response.Header.PeekCookie(flashCookie))
	})

	t.Run("json client gets the access token back", func(t *testing.T) {
		svc := new(MockAuthService)
		guard, _ := newTestGuard(t)
		h := NewAuthHandler(svc, guard, 15*time.Minute, time.Hour, false)

		svc.On("Login", mock.Anything, "admin", "admin123").Return(user, pair, nil)

		body, _ := json.Marshal(map[string]string{"username": "admin", "password": "admin123"})
		ctx := setupTestContext("POST", "/auth/login-json", body)
		h.LoginJSON(ctx)

		assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

		var resp loginResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
		assert.Equal(t, "access-jwt", resp.AccessToken)
		assert.Equal(t, "admin", resp.User.Username)
	})

	t.Run("bad credentials in the browser flow flash back to login", func(t *testing.T) {
		svc := new(MockAuthService)
		guard, _ := newTestGuard(t)
		h := NewAuthHandler(svc, guard, 15*time.Minute, time.Hour, false)

		svc.On("Login", mock.Anything, "admin", "wrong").Return(nil, nil, services.ErrBadCredentials)

		ctx := setupTestContext("POST", "/auth/login", []byte("username=admin&password=wrong"))
		ctx.Request.Header.SetContentType("application/x-www-form-urlencoded")
		h.Login(ctx)

		assert.Equal(t, fasthttp.StatusSeeOther, ctx.Response.StatusCode())
		assert.Equal(t, loginPath, string(ctx.Response.Header.Peek("Location")))
		assert.Empty(t, ctx.Response.Header.PeekCookie(auth.AccessCookie))
	})

	t.Run("bad credentials via json are a 401", func(t *testing.T) {
		svc := new(MockAuthService)
		guard, _ := newTestGuard(t)
		h := NewAuthHandler(svc, guard, 15*time.Minute, time.Hour, false)

		svc.On("Login", mock.Anything, "admin", "wrong").Return(nil, nil, services.ErrBadCredentials)

		body, _ := json.Marshal(map[string]string{"username": "admin", "password": "wrong"})
		ctx := setupTestContext("POST", "/auth/login-json", body)
		h.LoginJSON(ctx)

		assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := new(MockAuthService)
	guard, mgr := newTestGuard(t)
	h := NewAuthHandler(svc, guard, 15*time.Minute, time.Hour, false)

	ctx := setupTestContext("POST", "/auth/logout", nil)
	withAccessCookie(ctx, mgr, false)
	ctx.Request.Header.Set("Accept", "application/json")
	h.Logout(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	// both cookies are cleared with an expiry in the past
	access := responseCookie(t, ctx, auth.AccessCookie)
	assert.Empty(t, string(access.Value()))
	assert.True(t, access.Expire().Before(time.Now()))

	refresh := responseCookie(t, ctx, auth.RefreshCookie)
	assert.Empty(t, string(refresh.Value()))
}

func TestAuthHandler_RefreshSilent(t *testing.T) {
	user := &model.User{ID: 1, Username: "admin"}
	pair := &services.TokenPair{Access: "new-access", Refresh: "new-refresh"}

	t.Run("live refresh cookie continues the navigation", func(t *testing.T) {
		svc := new(MockAuthService)
		guard, mgr := newTestGuard(t)
		h := NewAuthHandler(svc, guard, 15*time.Minute, time.Hour, false)

		svc.On("Refresh", mock.Anything, "1").Return(user, pair, nil)

		refresh, err := mgr.IssueRefresh("1", "admin", true)
		require.NoError(t, err)

		ctx := setupTestContext("GET", "/auth/refresh-silent?next=/reports", nil)
		ctx.Request.Header.SetCookie(auth.RefreshCookie, refresh)
		h.RefreshSilent(ctx)

		assert.Equal(t, fasthttp.StatusFound, ctx.Response.StatusCode())
		assert.Equal(t, "/reports", string(ctx.Response.Header.Peek("Location")))

		access := responseCookie(t, ctx, auth.AccessCookie)
		assert.Equal(t, "new-access", string(access.Value()))
	})

	t.Run("used refresh token is dead on the second call", func(t *testing.T) {
		svc := new(MockAuthService)
		guard, mgr := newTestGuard(t)
		h := NewAuthHandler(svc, guard, 15*time.Minute, time.Hour, false)

		svc.On("Refresh", mock.Anything, "1").Return(user, pair, nil)

		refresh, err := mgr.IssueRefresh("1", "admin", true)
		require.NoError(t, err)

		first := setupTestContext("GET", "/auth/refresh-silent?next=/reports", nil)
		first.Request.Header.SetCookie(auth.RefreshCookie, refresh)
		h.RefreshSilent(first)
		require.Equal(t, "/reports", string(first.Response.Header.Peek("Location")))

		second := setupTestContext("GET", "/auth/refresh-silent?next=/reports", nil)
		second.Request.Header.SetCookie(auth.RefreshCookie, refresh)
		h.RefreshSilent(second)
		assert.Contains(t, string(second.Response.Header.Peek("Location")), loginPath)
	})

	t.Run("missing cookie falls back to the login page", func(t *testing.T) {
		svc := new(MockAuthService)
		guard, _ := newTestGuard(t)
		h := NewAuthHandler(svc, guard, 15*time.Minute, time.Hour, false)

		ctx := setupTestContext("GET", "/auth/refresh-silent?next=/reports", nil)
		h.RefreshSilent(ctx)

		assert.Equal(t, fasthttp.StatusFound, ctx.Response.StatusCode())
		assert.Contains(t, string(ctx.Response.Header.Peek("Location")), loginPath)
		assert.Contains(t, string(ctx.Response.Header.Peek("Location")), "next=")
	})
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/books", safeNext("/books"))
	assert.Equal(t, "/dashboard", safeNext(""))
	assert.Equal(t, "/dashboard", safeNext("https://evil.example"))
	assert.Equal(t, "/dashboard", safeNext("//evil.example"))
}

func TestExpiredAccessDetoursThroughSilentRefresh(t *testing.T) {
	guard := auth.NewGuard(newExpiredManager(), newTestCache(t))

	r := router.New()
	r.GET("/dashboard", requireAuth(guard, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
	}))

	ctx := setupTestContext("GET", "/dashboard", nil)
	access, _ := newExpiredManager().IssueAccess("1", "admin", false)
	ctx.Request.Header.SetCookie(auth.AccessCookie, access)
	r.Handler(ctx)

	assert.Equal(t, fasthttp.StatusFound, ctx.Response.StatusCode())
	location := string(ctx.Response.Header.Peek("Location"))
	assert.Contains(t, location, refreshPath)
	assert.Contains(t, location, "next=%2Fdashboard")
}
