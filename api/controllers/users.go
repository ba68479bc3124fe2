package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pagemarket/bookstore-backend/api/middleware"
	"github.com/pagemarket/bookstore-backend/api/responses"
	"github.com/pagemarket/bookstore-backend/api/validators"
	"github.com/pagemarket/bookstore-backend/internal/users"
	"github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
	"github.com/pagemarket/bookstore-backend/pkg/pagination"
)

// UsersController serves the profile endpoint and staff user administration.
type UsersController struct {
	svc  *users.Service
	logg *logger.Logger
}

func NewUsersController(svc *users.Service, logg *logger.Logger) *UsersController {
	return &UsersController{svc: svc, logg: logg}
}

func (c *UsersController) Profile(w http.ResponseWriter, r *http.Request) {
	resp, err := c.svc.Profile(r.Context(), middleware.ActorFrom(r.Context()))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *UsersController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req users.UpdateProfileRequest
	if err := validators.DecodeJSONBody(w, r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	resp, err := c.svc.UpdateProfile(r.Context(), middleware.ActorFrom(r.Context()), req)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	resp, err := c.svc.ListUsers(r.Context(), middleware.ActorFrom(r.Context()),
		pagination.FromQuery(r.URL.Query()))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *UsersController) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			errors.New(errors.CodeValidation, "userId must be a uuid"))
		return
	}

	resp, err := c.svc.GetUser(r.Context(), middleware.ActorFrom(r.Context()), userID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *UsersController) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			errors.New(errors.CodeValidation, "userId must be a uuid"))
		return
	}

	var req users.UpdateUserRequest
	if err := validators.DecodeJSONBody(w, r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	resp, err := c.svc.UpdateUser(r.Context(), middleware.ActorFrom(r.Context()), userID, req)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}
