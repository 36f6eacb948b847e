package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/sambathreasmey/library-management-system/internal/auth"
	"github.com/sambathreasmey/library-management-system/internal/model"
	xhttp "github.com/sambathreasmey/library-management-system/pkg/http"
	"github.com/sambathreasmey/library-management-system/pkg/prom"
)

type CustomerService interface {
	Create(ctx context.Context, p model.CustomerCreateRequest, userID, createdBy string) (*model.Customer, error)
	Update(ctx context.Context, id int64, p model.CustomerUpdateRequest, updatedBy string) (*model.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type CustomerHandler struct {
	svc CustomerService
}

func NewCustomerHandler(svc CustomerService) *CustomerHandler {
	return &CustomerHandler{
		svc: svc,
	}
}

func RegisterCustomerRoutes(r *router.Router, g *auth.Guard, h *CustomerHandler) {
	r.POST("/manage/customers/create", requireAuth(g, h.Create))
	r.POST("/manage/customers/{id}/update", requireAdmin(g, h.Update))
	r.POST("/manage/customers/{id}/delete", requireAdmin(g, h.Delete))
}

const customersPage = "/customers"

func (h *CustomerHandler) Create(ctx *xhttp.RequestCtx) {
	p := model.CustomerCreateRequest{
		Name:      formValue(ctx, "name"),
		AccountID: formValue(ctx, "acc_id"),
	}

	principal := principalFrom(ctx)
	customer, err := h.svc.Create(ctx, p, principal.UserID, principal.Username)
	if err != nil {
		mutationFailed(ctx, "customers", "create", err, customersPage)
		return
	}
	prom.CountMutation("customers", "create", "ok")

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusCreated, customer)
		return
	}
	flashRedirect(ctx, "success", "customer created", customersPage)
}

func (h *CustomerHandler) Update(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		mutationFailed(ctx, "customers", "update", errBadIntParam("id"), customersPage)
		return
	}

	var p model.CustomerUpdateRequest
	if v := formValue(ctx, "name"); v != "" {
		p.Name = &v
	}
	if v := formValue(ctx, "acc_id"); v != "" {
		p.AccountID = &v
	}

	customer, err := h.svc.Update(ctx, id, p, principalFrom(ctx).Username)
	if err != nil {
		mutationFailed(ctx, "customers", "update", err, customersPage)
		return
	}
	prom.CountMutation("customers", "update", "ok")

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusOK, customer)
		return
	}
	flashRedirect(ctx, "success", "customer updated", customersPage)
}

func (h *CustomerHandler) Delete(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		mutationFailed(ctx, "customers", "delete", errBadIntParam("id"), customersPage)
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		mutationFailed(ctx, "customers", "delete", err, customersPage)
		return
	}
	prom.CountMutation("customers", "delete", "ok")

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "customer deleted"})
		return
	}
	flashRedirect(ctx, "success", "customer deleted", customersPage)
}
