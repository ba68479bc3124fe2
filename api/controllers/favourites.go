package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pagemarket/bookstore-backend/api/middleware"
	"github.com/pagemarket/bookstore-backend/api/responses"
	"github.com/pagemarket/bookstore-backend/api/validators"
	"github.com/pagemarket/bookstore-backend/internal/interactions"
	"github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
	"github.com/pagemarket/bookstore-backend/pkg/pagination"
)

// FavouritesController manages the caller's favourites list.
type FavouritesController struct {
	svc  *interactions.Service
	logg *logger.Logger
}

func NewFavouritesController(svc *interactions.Service, logg *logger.Logger) *FavouritesController {
	return &FavouritesController{svc: svc, logg: logg}
}

func (c *FavouritesController) List(w http.ResponseWriter, r *http.Request) {
	resp, err := c.svc.ListFavourites(r.Context(), middleware.ActorFrom(r.Context()),
		pagination.FromQuery(r.URL.Query()))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *FavouritesController) Add(w http.ResponseWriter, r *http.Request) {
	var req interactions.AddFavouriteRequest
	if err := validators.DecodeJSONBody(w, r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	resp, err := c.svc.AddFavourite(r.Context(), middleware.ActorFrom(r.Context()), req.BookID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *FavouritesController) Remove(w http.ResponseWriter, r *http.Request) {
	bookID, err := uuid.Parse(chi.URLParam(r, "bookId"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			errors.New(errors.CodeValidation, "bookId must be a uuid"))
		return
	}

	resp, err := c.svc.RemoveFavourite(r.Context(), middleware.ActorFrom(r.Context()), bookID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}
