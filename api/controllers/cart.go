package controllers

import (
	"net/http"

	"github.com/pagemarket/bookstore-backend/api/middleware"
	"github.com/pagemarket/bookstore-backend/api/responses"
	"github.com/pagemarket/bookstore-backend/api/validators"
	"github.com/pagemarket/bookstore-backend/internal/cart"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
)

// CartController manages the caller's shopping cart.
type CartController struct {
	svc  *cart.Service
	logg *logger.Logger
}

func NewCartController(svc *cart.Service, logg *logger.Logger) *CartController {
	return &CartController{svc: svc, logg: logg}
}

func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := c.svc.GetCart(r.Context(), middleware.ActorFrom(r.Context()))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *CartController) SetItem(w http.ResponseWriter, r *http.Request) {
	var req cart.SetItemRequest
	if err := validators.DecodeJSONBody(w, r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	resp, err := c.svc.SetItem(r.Context(), middleware.ActorFrom(r.Context()), req)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req cart.RemoveItemRequest
	if err := validators.DecodeJSONBody(w, r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	resp, err := c.svc.RemoveItem(r.Context(), middleware.ActorFrom(r.Context()), req)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.Clear(r.Context(), middleware.ActorFrom(r.Context())); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteNoContent(w)
}
