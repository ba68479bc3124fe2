package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pagemarket/bookstore-backend/api/middleware"
	"github.com/pagemarket/bookstore-backend/api/responses"
	"github.com/pagemarket/bookstore-backend/internal/catalog"
	"github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
	"github.com/pagemarket/bookstore-backend/pkg/pagination"
)

// BooksController serves the public catalog.
type BooksController struct {
	svc  *catalog.Service
	logg *logger.Logger
}

func NewBooksController(svc *catalog.Service, logg *logger.Logger) *BooksController {
	return &BooksController{svc: svc, logg: logg}
}

func articleNumberParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "articleNumber")
	article, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || article <= 0 {
		return 0, errors.New(errors.CodeValidation, "articleNumber must be a positive integer")
	}
	return article, nil
}

func (c *BooksController) List(w http.ResponseWriter, r *http.Request) {
	resp, err := c.svc.ListBooks(r.Context(), pagination.FromQuery(r.URL.Query()))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *BooksController) Get(w http.ResponseWriter, r *http.Request) {
	article, err := articleNumberParam(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	resp, err := c.svc.GetBook(r.Context(), middleware.ActorFrom(r.Context()), article)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}
