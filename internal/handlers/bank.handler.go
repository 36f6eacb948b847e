package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/sambathreasmey/library-management-system/internal/auth"
	"github.com/sambathreasmey/library-management-system/internal/model"
	xhttp "github.com/sambathreasmey/library-management-system/pkg/http"
	"github.com/sambathreasmey/library-management-system/pkg/prom"
)

type BankService interface {
	Create(ctx context.Context, p model.BankCreateRequest, userID, createdBy string) (*model.Bank, error)
	Update(ctx context.Context, id int64, name *string, updatedBy string) (*model.Bank, error)
	Delete(ctx context.Context, id int64) error
}

type BankHandler struct {
	svc BankService
}

func NewBankHandler(svc BankService) *BankHandler {
	return &BankHandler{
		svc: svc,
	}
}

func RegisterBankRoutes(r *router.Router, g *auth.Guard, h *BankHandler) {
	r.POST("/manage/banks/create", requireAuth(g, h.Create))
	r.POST("/manage/banks/{id}/update", requireAdmin(g, h.Update))
	r.POST("/manage/banks/{id}/delete", requireAdmin(g, h.Delete))
}

const banksPage = "/banks"

func (h *BankHandler) Create(ctx *xhttp.RequestCtx) {
	p := model.BankCreateRequest{
		Name: formValue(ctx, "name"),
	}

	principal := principalFrom(ctx)
	bank, err := h.svc.Create(ctx, p, principal.UserID, principal.Username)
	if err != nil {
		mutationFailed(ctx, "banks", "create", err, banksPage)
		return
	}
	prom.CountMutation("banks", "create", "ok")

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusCreated, bank)
		return
	}
	flashRedirect(ctx, "success", "bank created", banksPage)
}

func (h *BankHandler) Update(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		mutationFailed(ctx, "banks", "update", errBadIntParam("id"), banksPage)
		return
	}

	var name *string
	if v := formValue(ctx, "name"); v != "" {
		name = &v
	}

	bank, err := h.svc.Update(ctx, id, name, principalFrom(ctx).Username)
	if err != nil {
		mutationFailed(ctx, "banks", "update", err, banksPage)
		return
	}
	prom.CountMutation("banks", "update", "ok")

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusOK, bank)
		return
	}
	flashRedirect(ctx, "success", "bank updated", banksPage)
}

func (h *BankHandler) Delete(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		mutationFailed(ctx, "banks", "delete", errBadIntParam("id"), banksPage)
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		mutationFailed(ctx, "banks", "delete", err, banksPage)
		return
	}
	prom.CountMutation("banks", "delete", "ok")

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "bank deleted"})
		return
	}
	flashRedirect(ctx, "success", "bank deleted", banksPage)
}
