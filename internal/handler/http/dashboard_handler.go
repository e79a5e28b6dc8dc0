package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/tai160903/viet-coffee-server/internal/dashboard"
)

type DashboardHandler struct {
	svc dashboard.Service
}

func NewDashboardHandler(svc dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) RegisterRoutes(router chi.Router) {
	router.Get("/dashboard", h.handleOverview)
}

func (h *DashboardHandler) handleOverview(w http.ResponseWriter, r *http.Request) {
	period := dashboard.Period(r.URL.Query().Get("period"))

	overview, err := h.svc.Overview(r.Context(), period)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build dashboard overview")
		respondWithError(w, http.StatusInternalServerError, "Failed to build dashboard overview")
		return
	}

	respondWithJSON(w, http.StatusOK, overview)
}
