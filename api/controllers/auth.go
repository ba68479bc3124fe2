package controllers

import (
	"net/http"

	"github.com/pagemarket/bookstore-backend/api/middleware"
	"github.com/pagemarket/bookstore-backend/api/responses"
	"github.com/pagemarket/bookstore-backend/api/validators"
	authsvc "github.com/pagemarket/bookstore-backend/internal/auth"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
)

// AuthController serves signup, login, logout and refresh.
type AuthController struct {
	svc  *authsvc.Service
	logg *logger.Logger
}

func NewAuthController(svc *authsvc.Service, logg *logger.Logger) *AuthController {
	return &AuthController{svc: svc, logg: logg}
}

func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var req authsvc.SignupRequest
	if err := validators.DecodeJSONBody(w, r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	resp, err := c.svc.Signup(r.Context(), req)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusCreated, resp)
}

func (c *AuthController) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	var req authsvc.AdminCreateRequest
	if err := validators.DecodeJSONBody(w, r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	resp, err := c.svc.AdminCreate(r.Context(), middleware.ActorFrom(r.Context()), req)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusCreated, resp)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req authsvc.LoginRequest
	if err := validators.DecodeJSONBody(w, r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	resp, err := c.svc.Login(r.Context(), req)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var req authsvc.RefreshRequest
	if err := validators.DecodeJSONBody(w, r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	resp, err := c.svc.Refresh(r.Context(), req)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	var req authsvc.LogoutRequest
	if err := validators.DecodeJSONBody(w, r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	if err := c.svc.Logout(r.Context(), req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteNoContent(w)
}
