package appraisalhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/reports"
	"appraisal/internal/domain/templates"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service   *appraisal.Service
	Templates *templates.Store
	Reports   *reports.Service
}

func NewHandler(service *appraisal.Service, tmplStore *templates.Store, reportSvc *reports.Service) *Handler {
	return &Handler{Service: service, Templates: tmplStore, Reports: reportSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/appraisals", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{appraisalID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdateDetails)
			r.Delete("/", h.handleDelete)
			r.Put("/status", h.handleTransition)
			r.Get("/completion", h.handleCompletion)
			r.Get("/report", h.handleReport)

			r.Post("/goals", h.handleAttachGoal)
			r.Post("/goals/attach", h.handleAttachExisting)
			r.Post("/goals/import", h.handleImportTemplates)
			r.Put("/goals/{goalID}", h.handleUpdateGoal)
			r.Delete("/goals/{goalID}", h.handleRemoveGoal)

			r.Put("/self-assessment", h.handleEvaluation(appraisal.RoleAppraisee))
			r.Put("/evaluation", h.handleEvaluation(appraisal.RoleAppraiser))
			r.Put("/review", h.handleEvaluation(appraisal.RoleReviewer))
		})
	})
}

// failDomain translates business errors into the envelope, keeping the
// domain's stable codes on the wire.
func failDomain(w http.ResponseWriter, r *http.Request, err error) {
	var derr *appraisal.Error
	if errors.As(err, &derr) {
		status := http.StatusBadRequest
		switch derr.Code {
		case "not_found":
			status = http.StatusNotFound
		case "forbidden", "wrong_actor":
			status = http.StatusForbidden
		}
		api.Fail(w, status, derr.Code, derr.Message, middleware.GetRequestID(r.Context()))
		return
	}
	api.Fail(w, http.StatusInternalServerError, "internal_error", "something went wrong", middleware.GetRequestID(r.Context()))
}

type appraisalPayload struct {
	AppraiseeID string  `json:"appraiseeId"`
	AppraiserID string  `json:"appraiserId"`
	ReviewerID  string  `json:"reviewerId"`
	TypeID      string  `json:"appraisalTypeId"`
	RangeID     *string `json:"rangeId"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
}

func (p appraisalPayload) toInput(w http.ResponseWriter, requestID string) (appraisal.CreateInput, bool) {
	v := shared.NewValidator()
	v.Required("appraiseeId", p.AppraiseeID, "appraisee is required")
	v.Required("appraiserId", p.AppraiserID, "appraiser is required")
	v.Required("reviewerId", p.ReviewerID, "reviewer is required")
	v.Required("appraisalTypeId", p.TypeID, "appraisal type is required")
	start, _ := v.Date("startDate", p.StartDate)
	end, _ := v.Date("endDate", p.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, requestID) {
		return appraisal.CreateInput{}, false
	}
	return appraisal.CreateInput{
		AppraiseeID: p.AppraiseeID,
		AppraiserID: p.AppraiserID,
		ReviewerID:  p.ReviewerID,
		TypeID:      p.TypeID,
		RangeID:     p.RangeID,
		StartDate:   start,
		EndDate:     end,
	}, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload appraisalPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	input, ok := payload.toInput(w, middleware.GetRequestID(r.Context()))
	if !ok {
		return
	}

	created, err := h.Service.Create(r.Context(), user.EmployeeID, input)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	appraisals, err := h.Service.List(r.Context(), user.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "appraisal_list_failed", "failed to list appraisals", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, appraisals, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	view, err := h.Service.Get(r.Context(), chi.URLParam(r, "appraisalID"), user.EmployeeID)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload appraisalPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	input, ok := payload.toInput(w, middleware.GetRequestID(r.Context()))
	if !ok {
		return
	}

	updated, err := h.Service.UpdateDetails(r.Context(), chi.URLParam(r, "appraisalID"), user.EmployeeID, input)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

// requireConfirm gates destructive endpoints behind ?confirm=true so a
// misfired client call cannot silently destroy a working set.
func requireConfirm(w http.ResponseWriter, r *http.Request, what string) bool {
	if r.URL.Query().Get("confirm") == "true" {
		return true
	}
	api.Fail(w, http.StatusBadRequest, "confirmation_required",
		fmt.Sprintf("pass confirm=true to delete this %s", what), middleware.GetRequestID(r.Context()))
	return false
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if !requireConfirm(w, r, "appraisal") {
		return
	}
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "appraisalID"), user.EmployeeID); err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	target := appraisal.Status(payload.Status)
	if !appraisal.ValidStatus(target) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "unknown status", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Service.RequestTransition(r.Context(), chi.URLParam(r, "appraisalID"), user.EmployeeID, target)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCompletion(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	complete, total, err := h.Service.Completion(r.Context(), chi.URLParam(r, "appraisalID"), user.EmployeeID)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, map[string]int{"complete": complete, "total": total}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAttachGoal(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var form appraisal.GoalForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	attached, err := h.Service.AttachGoal(r.Context(), chi.URLParam(r, "appraisalID"), user.EmployeeID, form)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Created(w, attached, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAttachExisting(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload struct {
		GoalID string `json:"goalId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.GoalID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "goal id required", middleware.GetRequestID(r.Context()))
		return
	}

	attached, err := h.Service.AttachExistingGoal(r.Context(), chi.URLParam(r, "appraisalID"), user.EmployeeID, payload.GoalID)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Created(w, attached, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleImportTemplates(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload struct {
		HeaderIDs []string `json:"headerIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || len(payload.HeaderIDs) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "header ids required", middleware.GetRequestID(r.Context()))
		return
	}

	headers, err := h.Templates.GetHeaders(r.Context(), payload.HeaderIDs)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_load_failed", "failed to load goal templates", middleware.GetRequestID(r.Context()))
		return
	}
	if len(headers) == 0 {
		api.Fail(w, http.StatusNotFound, "not_found", "no matching goal template headers", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Service.ImportFromTemplates(r.Context(), chi.URLParam(r, "appraisalID"), user.EmployeeID, headers)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Created(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var form appraisal.GoalForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Service.UpdateGoal(r.Context(), chi.URLParam(r, "appraisalID"), chi.URLParam(r, "goalID"), user.EmployeeID, form)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRemoveGoal(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if !requireConfirm(w, r, "goal") {
		return
	}
	if err := h.Service.RemoveGoal(r.Context(), chi.URLParam(r, "appraisalID"), chi.URLParam(r, "goalID"), user.EmployeeID); err != nil {
		failDomain(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "removed"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEvaluation(role appraisal.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := middleware.GetUser(r.Context())

		var payload appraisal.EvaluationPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
			return
		}

		view, err := h.Service.SubmitEvaluation(r.Context(), chi.URLParam(r, "appraisalID"), user.EmployeeID, role, payload)
		if err != nil {
			failDomain(w, r, err)
			return
		}
		api.Success(w, view, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	pdf, err := h.Reports.SummaryPDF(r.Context(), chi.URLParam(r, "appraisalID"), user.EmployeeID)
	if err != nil {
		failDomain(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=appraisal-summary.pdf")
	if _, err := w.Write(pdf); err != nil {
		return
	}
}
