package controllers

import (
	"net/http"

	"github.com/pagemarket/bookstore-backend/api/middleware"
	"github.com/pagemarket/bookstore-backend/api/responses"
	"github.com/pagemarket/bookstore-backend/api/validators"
	"github.com/pagemarket/bookstore-backend/internal/catalog"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
	"github.com/pagemarket/bookstore-backend/pkg/pagination"
)

// SellerBooksController serves the seller-side listing management.
type SellerBooksController struct {
	svc  *catalog.Service
	logg *logger.Logger
}

func NewSellerBooksController(svc *catalog.Service, logg *logger.Logger) *SellerBooksController {
	return &SellerBooksController{svc: svc, logg: logg}
}

func (c *SellerBooksController) Create(w http.ResponseWriter, r *http.Request) {
	var req catalog.CreateBookRequest
	if err := validators.DecodeJSONBody(w, r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	resp, err := c.svc.CreateBook(r.Context(), middleware.ActorFrom(r.Context()), req)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusCreated, resp)
}

func (c *SellerBooksController) Patch(w http.ResponseWriter, r *http.Request) {
	article, err := articleNumberParam(r)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	var req catalog.PatchBookRequest
	if err := validators.DecodeJSONBody(w, r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	resp, err := c.svc.PatchBook(r.Context(), middleware.ActorFrom(r.Context()), article, req)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *SellerBooksController) List(w http.ResponseWriter, r *http.Request) {
	resp, err := c.svc.ListOwnBooks(r.Context(), middleware.ActorFrom(r.Context()),
		pagination.FromQuery(r.URL.Query()))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}
