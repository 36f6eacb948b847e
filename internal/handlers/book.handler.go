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

type BookService interface {
	Create(ctx context.Context, p model.BookCreateRequest) (*model.Book, error)
	Update(ctx context.Context, id int64, p model.BookUpdateRequest) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type BookHandler struct {
	svc BookService
}

func NewBookHandler(svc BookService) *BookHandler {
	return &BookHandler{
		svc: svc,
	}
}

func RegisterBookRoutes(r *router.Router, g *auth.Guard, h *BookHandler) {
	r.POST("/manage/books/create", requireAuth(g, h.Create))
	r.POST("/manage/books/{id}/update", requireAdmin(g, h.Update))
	r.POST("/manage/books/{id}/delete", requireAdmin(g, h.Delete))
}

const booksPage = "/books"

func (h *BookHandler) Create(ctx *xhttp.RequestCtx) {
	p := model.BookCreateRequest{
		Title:  formValue(ctx, "title"),
		Author: formValue(ctx, "author"),
	}
	if v := formValue(ctx, "isbn"); v != "" {
		p.ISBN = &v
	}
	if v := formValue(ctx, "published_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			mutationFailed(ctx, "books", "create", errBadIntParam("published_year"), booksPage)
			return
		}
		p.PublishedYear = &year
	}
	if v := formValue(ctx, "copies"); v != "" {
		copies, err := strconv.Atoi(v)
		if err != nil {
			mutationFailed(ctx, "books", "create", errBadIntParam("copies"), booksPage)
			return
		}
		p.Copies = &copies
	}

	book, err := h.svc.Create(ctx, p)
	if err != nil {
		mutationFailed(ctx, "books", "create", err, booksPage)
		return
	}
	prom.CountMutation("books", "create", "ok")

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusCreated, book)
		return
	}
	flashRedirect(ctx, "success", "book created", booksPage)
}

func (h *BookHandler) Update(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		mutationFailed(ctx, "books", "update", errBadIntParam("id"), booksPage)
		return
	}

	var p model.BookUpdateRequest
	if v := formValue(ctx, "title"); v != "" {
		p.Title = &v
	}
	if v := formValue(ctx, "author"); v != "" {
		p.Author = &v
	}
	if v := formValue(ctx, "isbn"); v != "" {
		p.ISBN = &v
	}
	if v := formValue(ctx, "published_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			mutationFailed(ctx, "books", "update", errBadIntParam("published_year"), booksPage)
			return
		}
		p.PublishedYear = &year
	}
	if v := formValue(ctx, "copies"); v != "" {
		copies, err := strconv.Atoi(v)
		if err != nil {
			mutationFailed(ctx, "books", "update", errBadIntParam("copies"), booksPage)
			return
		}
		p.Copies = &copies
	}

	book, err := h.svc.Update(ctx, id, p)
	if err != nil {
		mutationFailed(ctx, "books", "update", err, booksPage)
		return
	}
	prom.CountMutation("books", "update", "ok")

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusOK, book)
		return
	}
	flashRedirect(ctx, "success", "book updated", booksPage)
}

func (h *BookHandler) Delete(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		mutationFailed(ctx, "books", "delete", errBadIntParam("id"), booksPage)
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		mutationFailed(ctx, "books", "delete", err, booksPage)
		return
	}
	prom.CountMutation("books", "delete", "ok")

	if wantsJSON(ctx) {
		writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "book deleted"})
		return
	}
	flashRedirect(ctx, "success", "book deleted", booksPage)
}
