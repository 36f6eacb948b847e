package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/fasthttp/router"
	"github.com/sambathreasmey/library-management-system/internal/auth"
	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/internal/services"
	xhttp "github.com/sambathreasmey/library-management-system/pkg/http"
	"github.com/sambathreasmey/library-management-system/pkg/prom"
)

type ReportService interface {
	Summary(ctx context.Context, f model.ReportFilter) (*model.Report, error)
}

type ReportHandler struct {
	svc ReportService
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{
		svc: svc,
	}
}

func RegisterReportRoutes(r *router.Router, g *auth.Guard, h *ReportHandler) {
	r.GET("/reports/api/summary", requireAuth(g, h.Summary))
}

func (h *ReportHandler) Summary(ctx *xhttp.RequestCtx) {
	f, err := parseReportFilter(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	report, err := h.svc.Summary(ctx, f)
	if err != nil {
		handleError(ctx, err)
		return
	}
	prom.ObserveReportDuration(time.Since(start).Seconds())

	writeJSON(ctx, xhttp.StatusOK, report)
}

func parseReportFilter(ctx *xhttp.RequestCtx) (model.ReportFilter, error) {
	f := model.ReportFilter{
		Period: model.ReportPeriod(query(ctx, "period")),
	}

	if v := query(ctx, "start"); v != "" {
		t, err := services.ParseReportDate(v)
		if err != nil {
			return f, errBadDateParam("start")
		}
		f.Start = t
	}
	if v := query(ctx, "end"); v != "" {
		t, err := services.ParseReportDate(v)
		if err != nil {
			return f, errBadDateParam("end")
		}
		f.End = t
	}
	if v := query(ctx, "user_id"); v != "" {
		f.UserID = &v
	}
	for _, field := range []struct {
		key string
		dst **int64
	}{
		{"customer_id", &f.CustomerID},
		{"bank_id", &f.BankID},
		{"game_id", &f.GameID},
	} {
		if v := query(ctx, field.key); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return f, errBadIntParam(field.key)
			}
			*field.dst = &id
		}
	}
	if v := query(ctx, "type"); v != "" {
		t, err := strconv.Atoi(v)
		if err != nil {
			return f, errBadIntParam("type")
		}
		f.Type = &t
	}

	return f, nil
}
