package controllers

import (
	"net/http"

	"github.com/pagemarket/bookstore-backend/api/middleware"
	"github.com/pagemarket/bookstore-backend/api/responses"
	"github.com/pagemarket/bookstore-backend/internal/interactions"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
	"github.com/pagemarket/bookstore-backend/pkg/pagination"
)

// HistoryController serves the caller's view history.
type HistoryController struct {
	svc  *interactions.Service
	logg *logger.Logger
}

func NewHistoryController(svc *interactions.Service, logg *logger.Logger) *HistoryController {
	return &HistoryController{svc: svc, logg: logg}
}

func (c *HistoryController) List(w http.ResponseWriter, r *http.Request) {
	resp, err := c.svc.GetHistory(r.Context(), middleware.ActorFrom(r.Context()),
		pagination.FromQuery(r.URL.Query()))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}

func (c *HistoryController) Today(w http.ResponseWriter, r *http.Request) {
	resp, err := c.svc.GetTodayHistory(r.Context(), middleware.ActorFrom(r.Context()))
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteData(w, http.StatusOK, resp)
}
