package handlers

import (
	"github.com/sambathreasmey/library-management-system/internal/auth"
	xhttp "github.com/sambathreasmey/library-management-system/pkg/http"
)

const principalKey = "principal"

// requireAuth resolves the caller before the handler runs and stashes
// the principal on the request.
func requireAuth(g *auth.Guard, next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		principal, err := g.Authenticate(ctx)
		if err != nil {
			handleError(ctx, err)
			return
		}
		ctx.SetUserValue(principalKey, principal)
		next(ctx)
	}
}

func requireAdmin(g *auth.Guard, next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		principal, err := g.RequireAdmin(ctx)
		if err != nil {
			handleError(ctx, err)
			return
		}
		ctx.SetUserValue(principalKey, principal)
		next(ctx)
	}
}

func principalFrom(ctx *xhttp.RequestCtx) *auth.Principal {
	if p, ok := ctx.UserValue(principalKey).(*auth.Principal); ok {
		return p
	}
	return &auth.Principal{}
}
