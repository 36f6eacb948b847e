package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/sambathreasmey/library-management-system/internal/auth"
	"github.com/sambathreasmey/library-management-system/internal/model"
	xhttp "github.com/sambathreasmey/library-management-system/pkg/http"
)

type DashboardService interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type DashboardHandler struct {
	svc DashboardService
}

func NewDashboardHandler(svc DashboardService) *DashboardHandler {
	return &DashboardHandler{
		svc: svc,
	}
}

func RegisterDashboardRoutes(r *router.Router, g *auth.Guard, h *DashboardHandler) {
	r.GET("/dashboard", requireAuth(g, h.Stats))
}

func (h *DashboardHandler) Stats(ctx *xhttp.RequestCtx) {
	stats, err := h.svc.Stats(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, stats)
}
