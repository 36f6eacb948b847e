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

type TransactionService interface {
	Create(ctx context.Context, p model.TransactionCreateRequest, userID, createdBy string) (*model.Transaction, error)
	Update(ctx context.Context, id int64, p *model.TransactionUpdateRequest, updatedBy string) (*model.Transaction, error)
	Delete(ctx context.Context, id int64) error
}

// The booking form needs every customer, bank and game for its
// dropdowns.
type CustomerLister interface {
	ListAll(ctx context.Context) ([]*model.Customer, error)
}

type BankLister interface {
	ListAll(ctx context.Context) ([]*model.Bank, error)
}

type GameLister interface {
	ListAll(ctx context.Context) ([]*model.Game, error)
}

type TransactionHandler struct {
	svc       TransactionService
	customers CustomerLister
	banks     BankLister
	games     GameLister
	dashboard CacheInvalidator
}

// CacheInvalidator drops derived snapshots after a booking mutation.
type CacheInvalidator interface {
	Invalidate()
}

func NewTransactionHandler(svc TransactionService, customers CustomerLister, banks BankLister, games GameLister, dashboard CacheInvalidator) *TransactionHandler {
	return &TransactionHandler{
		svc:       svc,
		customers: customers,
		banks:     banks,
		games:     games,
		dashboard: dashboard,
	}
}

func RegisterTransactionRoutes(r *router.Router, g *auth.Guard, h *TransactionHandler) {
	r.GET("/manage/booking", requireAuth(g, h.Booking))
	r.POST("/manage/transactions/create", requireAuth(g, h.Create))
	r.POST("/manage/transactions/{id}/update", requireAdmin(g, h.Update))
	r.POST("/manage/transactions/{id}/delete", requireAdmin(g, h.Delete))
}

const transactionsPage = "/transactions"

// Booking returns the reference data the booking form needs in one
// round trip.
func (h *TransactionHandler) Booking(ctx *xhttp.RequestCtx) {
	customers, err := h.customers.ListAll(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}
	banks, err := h.banks.ListAll(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}
	games, err := h.games.ListAll(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}

	writeJSON(ctx, xhttp.StatusOK, map[string]any{
		"customers": customers,
		"banks":     banks,
		"games":     games,
	})
}

func (h *TransactionHandler) Create(ctx *xhttp.RequestCtx) {
	p, err := parseBookingForm(ctx)
	if err != nil {
		mutationFailed(ctx, "transactions", "create", err, transactionsPage)
		return
	}

	principal := principalFrom(ctx)
	tx, err := h.svc.Create(ctx, p, principal.UserID, principal.Username)
	if err != nil {
		mutationFailed(ctx, "transactions", "create", err, transactionsPage)
		return
	}
	prom.CountMutation("transactions", "create", "ok")
	h.dashboard.Invalidate()

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusCreated, tx)
		return
	}
	flashRedirect(ctx, "success", "transaction booked", transactionsPage)
}

func (h *TransactionHandler) Update(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		mutationFailed(ctx, "transactions", "update", errBadIntParam("id"), transactionsPage)
		return
	}

	var p model.TransactionUpdateRequest
	if v := formValue(ctx, "amount"); v != "" {
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil {
			mutationFailed(ctx, "transactions", "update", errBadIntParam("amount"), transactionsPage)
			return
		}
		p.Amount = &amount
	}
	if v := formValue(ctx, "currency"); v != "" {
		p.Currency = &v
	}
	if v := formValue(ctx, "bank_stor"); v != "" {
		p.BankStorage = &v
	}
	if v := formValue(ctx, "type"); v != "" {
		t, err := strconv.Atoi(v)
		if err != nil {
			mutationFailed(ctx, "transactions", "update", errBadIntParam("type"), transactionsPage)
			return
		}
		p.Type = &t
	}

	tx, err := h.svc.Update(ctx, id, &p, principalFrom(ctx).Username)
	if err != nil {
		mutationFailed(ctx, "transactions", "update", err, transactionsPage)
		return
	}
	prom.CountMutation("transactions", "update", "ok")
	h.dashboard.Invalidate()

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusOK, tx)
		return
	}
	flashRedirect(ctx, "success", "transaction updated", transactionsPage)
}

func (h *TransactionHandler) Delete(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		mutationFailed(ctx, "transactions", "delete", errBadIntParam("id"), transactionsPage)
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		mutationFailed(ctx, "transactions", "delete", err, transactionsPage)
		return
	}
	prom.CountMutation("transactions", "delete", "ok")
	h.dashboard.Invalidate()

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "transaction deleted"})
		return
	}
	flashRedirect(ctx, "success", "transaction deleted", transactionsPage)
}

func parseBookingForm(ctx *xhttp.RequestCtx) (model.TransactionCreateRequest, error) {
	var p model.TransactionCreateRequest

	if v := formValue(ctx, "amount"); v != "" {
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, errBadIntParam("amount")
		}
		p.Amount = amount
	}
	p.Currency = formValue(ctx, "currency")
	p.BankStorage = formValue(ctx, "bank_stor")

	for _, field := range []struct {
		key string
		dst *int64
	}{
		{"customer_id", &p.CustomerID},
		{"bank_id", &p.BankID},
		{"game_id", &p.GameID},
	} {
		if v := formValue(ctx, field.key); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return p, errBadIntParam(field.key)
			}
			*field.dst = id
		}
	}
	if v := formValue(ctx, "type"); v != "" {
		t, err := strconv.Atoi(v)
		if err != nil {
			return p, errBadIntParam("type")
		}
		p.Type = t
	}
	return p, nil
}
