package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/sambathreasmey/library-management-system/internal/auth"
	"github.com/sambathreasmey/library-management-system/internal/model"
	xhttp "github.com/sambathreasmey/library-management-system/pkg/http"
	"github.com/sambathreasmey/library-management-system/pkg/prom"
)

type GameService interface {
	Create(ctx context.Context, p model.GameCreateRequest, userID, createdBy string) (*model.Game, error)
	Update(ctx context.Context, id int64, name *string, updatedBy string) (*model.Game, error)
	Delete(ctx context.Context, id int64) error
}

type GameHandler struct {
	svc GameService
}

func NewGameHandler(svc GameService) *GameHandler {
	return &GameHandler{
		svc: svc,
	}
}

func RegisterGameRoutes(r *router.Router, g *auth.Guard, h *GameHandler) {
	r.POST("/manage/games/create", requireAuth(g, h.Create))
	r.POST("/manage/games/{id}/update", requireAdmin(g, h.Update))
	r.POST("/manage/games/{id}/delete", requireAdmin(g, h.Delete))
}

const gamesPage = "/games"

func (h *GameHandler) Create(ctx *xhttp.RequestCtx) {
	p := model.GameCreateRequest{
		Name: formValue(ctx, "name"),
	}

	principal := principalFrom(ctx)
	game, err := h.svc.Create(ctx, p, principal.UserID, principal.Username)
	if err != nil {
		mutationFailed(ctx, "games", "create", err, gamesPage)
		return
	}
	prom.CountMutation("games", "create", "ok")

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusCreated, game)
		return
	}
	flashRedirect(ctx, "success", "game created", gamesPage)
}

func (h *GameHandler) Update(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		mutationFailed(ctx, "games", "update", errBadIntParam("id"), gamesPage)
		return
	}

	var name *string
	if v := formValue(ctx, "name"); v != "" {
		name = &v
	}

	game, err := h.svc.Update(ctx, id, name, principalFrom(ctx).Username)
	if err != nil {
		mutationFailed(ctx, "games", "update", err, gamesPage)
		return
	}
	prom.CountMutation("games", "update", "ok")

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusOK, game)
		return
	}
	flashRedirect(ctx, "success", "game updated", gamesPage)
}

func (h *GameHandler) Delete(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		mutationFailed(ctx, "games", "delete", errBadIntParam("id"), gamesPage)
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		mutationFailed(ctx, "games", "delete", err, gamesPage)
		return
	}
	prom.CountMutation("games", "delete", "ok")

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "game deleted"})
		return
	}
	flashRedirect(ctx, "success", "game deleted", gamesPage)
}
