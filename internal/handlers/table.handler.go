package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fasthttp/router"
	"github.com/sambathreasmey/library-management-system/internal/auth"
	"github.com/sambathreasmey/library-management-system/internal/model"
	xhttp "github.com/sambathreasmey/library-management-system/pkg/http"
	"github.com/sambathreasmey/library-management-system/pkg/prom"
)

const defaultPageLength = 10

// TableSource is any service exposing the server-side table protocol.
type TableSource interface {
	Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error)
}

// TableHandler serves the /api listing endpoints. The users table is
// admin-only, everything else needs a logged-in caller.
type TableHandler struct {
	books        TableSource
	users        TableSource
	customers    TableSource
	games        TableSource
	banks        TableSource
	transactions TableSource
}

func NewTableHandler(books, users, customers, games, banks, transactions TableSource) *TableHandler {
	return &TableHandler{
		books:        books,
		users:        users,
		customers:    customers,
		games:        games,
		banks:        banks,
		transactions: transactions,
	}
}

func RegisterTableRoutes(r *router.Router, g *auth.Guard, h *TableHandler) {
	serve := func(entity string, src TableSource) xhttp.RequestHandler {
		return func(ctx *xhttp.RequestCtx) { h.serveTable(ctx, entity, src) }
	}

	for _, route := range []struct {
		path    string
		handler xhttp.RequestHandler
	}{
		{"/api/books", requireAuth(g, serve("books", h.books))},
		{"/api/users", requireAdmin(g, serve("users", h.users))},
		{"/api/customers", requireAuth(g, serve("customers", h.customers))},
		{"/api/games", requireAuth(g, serve("games", h.games))},
		{"/api/banks", requireAuth(g, serve("banks", h.banks))},
		{"/api/transactions", requireAuth(g, serve("transactions", h.transactions))},
	} {
		r.GET(route.path, route.handler)
		r.POST(route.path, route.handler)
	}
}

func (h *TableHandler) serveTable(ctx *xhttp.RequestCtx, entity string, src TableSource) {
	q, err := parseTableQuery(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	result, err := src.Table(ctx, q)
	if err != nil {
		handleError(ctx, err)
		return
	}
	prom.ObserveTableQueryDuration(time.Since(start).Seconds(), entity)

	writeJSON(ctx, xhttp.StatusOK, result)
}

// parseTableQuery decodes the DataTables request parameters. Numeric
// parameters that are present but malformed are a client error, not a
// value to guess at.
func parseTableQuery(ctx *xhttp.RequestCtx) (model.TableQuery, error) {
	q := model.TableQuery{Length: defaultPageLength}

	var err error
	if q.Draw, err = intParam(ctx, "draw", 0); err != nil {
		return q, err
	}
	if q.Start, err = intParam(ctx, "start", 0); err != nil {
		return q, err
	}
	if q.Length, err = intParam(ctx, "length", defaultPageLength); err != nil {
		return q, err
	}

	q.Search = formValue(ctx, "search[value]")

	// a malformed column index falls back to the default sort,
	// only the paging parameters are hard errors
	if v := formValue(ctx, "order[0][column]"); v != "" {
		if col, err := strconv.Atoi(v); err == nil {
			q.OrderColumn = &col
		}
	}
	q.OrderDesc = strings.EqualFold(formValue(ctx, "order[0][dir]"), "desc")

	return q, nil
}

func intParam(ctx *xhttp.RequestCtx, key string, def int) (int, error) {
	v := formValue(ctx, key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errBadIntParam(key)
	}
	return n, nil
}
