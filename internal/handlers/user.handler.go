package handlers

import (
	"context"
	"strconv"

	"github.com/fasthttp/router"
	"github.com/sambathreasmey/library-management-system/internal/auth"
	"github.com/sambathreasmey/library-management-system/internal/model"
	xhttp "github.com/sambathreasmey/library-management-system/pkg/http"
	"github.com/sambathreasmey/library-management-system/pkg/prom"
)

type UserService interface {
	Create(ctx context.Context, p model.UserCreateRequest) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	ChangePassword(ctx context.Context, id int64, password string) error
	SetAdmin(ctx context.Context, actor *model.User, id int64, isAdmin bool) error
	Delete(ctx context.Context, actor *model.User, id int64) error
}

// UserHandler is the account management surface, admin-only end to end.
type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

func RegisterUserRoutes(r *router.Router, g *auth.Guard, h *UserHandler) {
	r.POST("/manage/users/create", requireAdmin(g, h.Create))
	r.POST("/manage/users/{id}/delete", requireAdmin(g, h.Delete))
	r.POST("/manage/users/{id}/password", requireAdmin(g, h.ChangePassword))
	r.POST("/manage/users/{id}/toggle-admin", requireAdmin(g, h.ToggleAdmin))
}

const usersPage = "/users"

func (h *UserHandler) Create(ctx *xhttp.RequestCtx) {
	p := model.UserCreateRequest{
		FullName: formValue(ctx, "fullname"),
		Username: formValue(ctx, "username"),
		Password: formValue(ctx, "password"),
		IsAdmin:  formValue(ctx, "is_admin") == "true" || formValue(ctx, "is_admin") == "on",
	}

	user, err := h.svc.Create(ctx, p)
	if err != nil {
		mutationFailed(ctx, "users", "create", err, usersPage)
		return
	}
	prom.CountMutation("users", "create", "ok")

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusCreated, user)
		return
	}
	flashRedirect(ctx, "success", "user created", usersPage)
}

func (h *UserHandler) Delete(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		mutationFailed(ctx, "users", "delete", errBadIntParam("id"), usersPage)
		return
	}

	if err := h.svc.Delete(ctx, actorFrom(ctx), id); err != nil {
		mutationFailed(ctx, "users", "delete", err, usersPage)
		return
	}
	prom.CountMutation("users", "delete", "ok")

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "user deleted"})
		return
	}
	flashRedirect(ctx, "success", "user deleted", usersPage)
}

func (h *UserHandler) ChangePassword(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		mutationFailed(ctx, "users", "password", errBadIntParam("id"), usersPage)
		return
	}

	if err := h.svc.ChangePassword(ctx, id, formValue(ctx, "password")); err != nil {
		mutationFailed(ctx, "users", "password", err, usersPage)
		return
	}
	prom.CountMutation("users", "password", "ok")

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "password changed"})
		return
	}
	flashRedirect(ctx, "success", "password changed", usersPage)
}

// ToggleAdmin flips the target's admin bit to its opposite.
func (h *UserHandler) ToggleAdmin(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		mutationFailed(ctx, "users", "toggle-admin", errBadIntParam("id"), usersPage)
		return
	}

	target, err := h.svc.Get(ctx, id)
	if err != nil {
		mutationFailed(ctx, "users", "toggle-admin", err, usersPage)
		return
	}

	if err := h.svc.SetAdmin(ctx, actorFrom(ctx), id, !target.IsAdmin); err != nil {
		mutationFailed(ctx, "users", "toggle-admin", err, usersPage)
		return
	}
	prom.CountMutation("users", "toggle-admin", "ok")

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusOK, map[string]bool{"is_admin": !target.IsAdmin})
		return
	}
	flashRedirect(ctx, "success", "user role updated", usersPage)
}

// actorFrom reconstructs the acting account from the request identity,
// enough for the self-mutation guards.
func actorFrom(ctx *xhttp.RequestCtx) *model.User {
	p := principalFrom(ctx)
	id, _ := strconv.ParseInt(p.UserID, 10, 64)
	return &model.User{
		ID:       id,
		Username: p.Username,
		IsAdmin:  p.IsAdmin,
	}
}
