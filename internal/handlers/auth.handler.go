package handlers

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fasthttp/router"
	"github.com/sambathreasmey/library-management-system/internal/auth"
	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/internal/services"
	xhttp "github.com/sambathreasmey/library-management-system/pkg/http"
	"github.com/valyala/fasthttp"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.User, *services.TokenPair, error)
	Refresh(ctx context.Context, subject string) (*model.User, *services.TokenPair, error)
}

type AuthHandler struct {
	svc    AuthService
	guard  *auth.Guard
	access time.Duration
	refr   time.Duration
	secure bool
}

func NewAuthHandler(svc AuthService, guard *auth.Guard, accessTTL, refreshTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		guard:  guard,
		access: accessTTL,
		refr:   refreshTTL,
		secure: secureCookies,
	}
}

func RegisterAuthRoutes(r *router.Router, h *AuthHandler) {
	r.GET("/auth/login", h.LoginPage)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/login-json", h.LoginJSON)
	r.POST("/auth/logout", h.Logout)
	r.POST("/auth/refresh", h.Refresh)
	r.GET("/auth/refresh-silent", h.RefreshSilent)
}

// LoginPage is a JSON placeholder for the login form, the browser UI
// is served elsewhere.
func (h *AuthHandler) LoginPage(ctx *xhttp.RequestCtx) {
	writeJSON(ctx, xhttp.StatusOK, map[string]string{
		"message": "authentication required",
		"next":    query(ctx, "next"),
	})
}

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	username := formValue(ctx, "username")
	password := formValue(ctx, "password")

	user, pair, err := h.svc.Login(ctx, username, password)
	if err != nil {
		if wantsJSON(ctx) {
			handleError(ctx, err)
			return
		}
		flashRedirect(ctx, "danger", "invalid username or password", loginPath)
		return
	}

	h.setAuthCookies(ctx, pair)

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusOK, loginResponse{AccessToken: pair.Access, User: user})
		return
	}
	flashRedirect(ctx, "success", "welcome back, "+user.Username, safeNext(query(ctx, "next")))
}

func (h *AuthHandler) LoginJSON(ctx *xhttp.RequestCtx) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	user, pair, err := h.svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		handleError(ctx, err)
		return
	}

	h.setAuthCookies(ctx, pair)
	writeJSON(ctx, xhttp.StatusOK, loginResponse{AccessToken: pair.Access, User: user})
}

// Logout revokes whatever tokens the request carries and clears both
// cookies.
func (h *AuthHandler) Logout(ctx *xhttp.RequestCtx) {
	_ = h.guard.RevokeRequest(ctx)
	h.clearAuthCookies(ctx)

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "logged out"})
		return
	}
	flashRedirect(ctx, "success", "you have been logged out", loginPath)
}

// Refresh rotates the session off a live refresh token. The identity
// is re-read from storage, so role changes take effect here.
func (h *AuthHandler) Refresh(ctx *xhttp.RequestCtx) {
	claims, err := h.guard.VerifyRefresh(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}

	user, pair, err := h.svc.Refresh(ctx, claims.Subject)
	if err != nil {
		handleError(ctx, err)
		return
	}

	// old refresh token is single-use
	_ = h.guard.Revoke(claims)

	h.setAuthCookies(ctx, pair)
	writeJSON(ctx, xhttp.StatusOK, loginResponse{AccessToken: pair.Access, User: user})
}

// RefreshSilent is the browser detour for an expired access token: a
// live refresh cookie buys a new pair and the navigation continues to
// its original destination.
func (h *AuthHandler) RefreshSilent(ctx *xhttp.RequestCtx) {
	next := safeNext(query(ctx, "next"))

	claims, err := h.guard.VerifyRefresh(ctx)
	if err != nil {
		redirect(ctx, loginPath+"?next="+url.QueryEscape(next), xhttp.StatusFound)
		return
	}

	_, pair, err := h.svc.Refresh(ctx, claims.Subject)
	if err != nil {
		redirect(ctx, loginPath+"?next="+url.QueryEscape(next), xhttp.StatusFound)
		return
	}

	_ = h.guard.Revoke(claims)

	h.setAuthCookies(ctx, pair)
	redirect(ctx, next, xhttp.StatusFound)
}

type loginResponse struct {
	AccessToken string      `json:"access_token"`
	User        *model.User `json:"user"`
}

func (h *AuthHandler) setAuthCookies(ctx *xhttp.RequestCtx, pair *services.TokenPair) {
	h.setCookie(ctx, auth.AccessCookie, pair.Access, h.access)
	h.setCookie(ctx, auth.RefreshCookie, pair.Refresh, h.refr)
}

func (h *AuthHandler) clearAuthCookies(ctx *xhttp.RequestCtx) {
	h.setCookie(ctx, auth.AccessCookie, "", -time.Hour)
	h.setCookie(ctx, auth.RefreshCookie, "", -time.Hour)
}

func (h *AuthHandler) setCookie(ctx *xhttp.RequestCtx, name, value string, ttl time.Duration) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(name)
	c.SetValue(value)
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetSecure(h.secure)
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	c.SetExpire(time.Now().Add(ttl))
	ctx.Response.Header.SetCookie(c)
}

// safeNext only allows same-site relative destinations.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/dashboard"
	}
	return next
}
