package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sambathreasmey/library-management-system/internal/auth"
	"github.com/sambathreasmey/library-management-system/internal/services"
	xhttp "github.com/sambathreasmey/library-management-system/pkg/http"
	"github.com/sambathreasmey/library-management-system/pkg/logger"
	"github.com/sambathreasmey/library-management-system/pkg/prom"
	"github.com/valyala/fasthttp"
)

const (
	flashCookie = "flash"
	loginPath   = "/auth/login"
	refreshPath = "/auth/refresh-silent"
)

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	return json.Unmarshal(ctx.PostBody(), dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

// formValue reads from the POST body first and falls back to the query
// string, mirroring how browser form posts arrive.
func formValue(ctx *xhttp.RequestCtx, key string) string {
	if v := ctx.PostArgs().Peek(key); len(v) > 0 {
		return string(v)
	}
	return string(ctx.QueryArgs().Peek(key))
}

// pathID parses the {id} route segment.
func pathID(ctx *xhttp.RequestCtx) (int64, error) {
	v, _ := ctx.UserValue("id").(string)
	return strconv.ParseInt(v, 10, 64)
}

// wantsJSON is true for the /api surface and for clients that ask for
// JSON explicitly; everything else gets the flash+redirect flow.
func wantsJSON(ctx *xhttp.RequestCtx) bool {
	if strings.HasPrefix(string(ctx.Path()), "/api/") {
		return true
	}
	accept := string(ctx.Request.Header.Peek("Accept"))
	return strings.Contains(accept, "application/json")
}

func redirect(ctx *xhttp.RequestCtx, location string, status int) {
	ctx.Response.Header.Set("Location", location)
	ctx.Response.SetStatusCode(status)
}

// flash stores a one-shot "category:message" note for the next page
// load. The cookie is read and cleared by the frontend.
func flash(ctx *xhttp.RequestCtx, category, message string) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(flashCookie)
	c.SetValue(url.QueryEscape(category + ":" + message))
	c.SetPath("/")
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	ctx.Response.Header.SetCookie(c)
}

// flashRedirect is the terminal step of every browser-form mutation.
func flashRedirect(ctx *xhttp.RequestCtx, category, message, location string) {
	flash(ctx, category, message)
	redirect(ctx, location, xhttp.StatusSeeOther)
}

// handleError maps service and guard errors onto the response. Browser
// navigation with an expired access token detours through the silent
// refresh endpoint with the original destination in next.
func handleError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, auth.ErrExpiredAccess):
		if wantsJSON(ctx) {
			writeError(ctx, xhttp.StatusUnauthorized, "token expired")
			return
		}
		redirect(ctx, refreshPath+"?next="+url.QueryEscape(string(ctx.RequestURI())), xhttp.StatusFound)
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, services.ErrBadCredentials):
		if wantsJSON(ctx) {
			writeError(ctx, xhttp.StatusUnauthorized, err.Error())
			return
		}
		redirect(ctx, loginPath+"?next="+url.QueryEscape(string(ctx.RequestURI())), xhttp.StatusFound)
	case errors.Is(err, auth.ErrForbidden):
		if wantsJSON(ctx) {
			writeError(ctx, xhttp.StatusForbidden, err.Error())
			return
		}
		flashRedirect(ctx, "danger", err.Error(), "/dashboard")
	case errors.Is(err, services.ErrNotFound):
		writeError(ctx, xhttp.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInUse),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrSelfDelete),
		errors.Is(err, services.ErrSelfDemote):
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
	default:
		logger.Error("[handlers] request failed", "path", string(ctx.Path()), "error", err)
		writeError(ctx, xhttp.StatusInternalServerError, "internal error")
	}
}

func errBadIntParam(key string) error {
	return fmt.Errorf("%w: %s must be an integer", services.ErrValidation, key)
}

func errBadDateParam(key string) error {
	return fmt.Errorf("%w: %s must be a YYYY-MM-DD date", services.ErrValidation, key)
}

// mutationFailed records the failed operation and renders the error in
// whichever flow the client is using.
func mutationFailed(ctx *xhttp.RequestCtx, entity, op string, err error, backTo string) {
	prom.CountMutation(entity, op, "error")
	mutationError(ctx, err, backTo)
}

// mutationError is handleError for the browser-form flow: recoverable
// failures flash and bounce back instead of rendering a JSON error.
func mutationError(ctx *xhttp.RequestCtx, err error, backTo string) {
	if wantsJSON(ctx) {
		handleError(ctx, err)
		return
	}
	switch {
	case errors.Is(err, auth.ErrExpiredAccess),
		errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, auth.ErrForbidden):
		handleError(ctx, err)
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInUse),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrSelfDelete),
		errors.Is(err, services.ErrSelfDemote):
		// user-recoverable refusals warn, danger is for failures
		flashRedirect(ctx, "warning", err.Error(), backTo)
	default:
		logger.Error("[handlers] mutation failed", "path", string(ctx.Path()), "error", err)
		flashRedirect(ctx, "danger", "something went wrong", backTo)
	}
}
