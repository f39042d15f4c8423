package templatehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/templates"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

type Handler struct {
	Store *templates.Store
}

func NewHandler(store *templates.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/goal-templates", h.handleListHeaders)
}

func (h *Handler) handleListHeaders(w http.ResponseWriter, r *http.Request) {
	headers, err := h.Store.ListHeaders(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_list_failed", "failed to list goal templates", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, headers, middleware.GetRequestID(r.Context()))
}
