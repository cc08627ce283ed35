package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rotalabs/shift-backend-go/internal/domain/checkin"
	"github.com/rotalabs/shift-backend-go/internal/handler/http/response"
)

type CheckinHandler interface {
	IngestCheckin(w http.ResponseWriter, r *http.Request)
	GetCheckin(w http.ResponseWriter, r *http.Request)
	ListCheckins(w http.ResponseWriter, r *http.Request)
}

type checkinHandlerImpl struct {
	checkinService checkin.CheckinService
}

func NewCheckinHandler(checkinService checkin.CheckinService) CheckinHandler {
	return &checkinHandlerImpl{
		checkinService: checkinService,
	}
}

// IngestCheckin implements CheckinHandler. The route is authenticated by the
// device API key, not a user token: biometric terminals post here directly.
func (h *checkinHandlerImpl) IngestCheckin(w http.ResponseWriter, r *http.Request) {
	var req checkin.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.checkinService.IngestEvent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checkin recorded successfully", result)
}

// GetCheckin implements CheckinHandler.
func (h *checkinHandlerImpl) GetCheckin(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}
	id := chi.URLParam(r, "id")

	result, err := h.checkinService.GetEvent(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListCheckins implements CheckinHandler.
func (h *checkinHandlerImpl) ListCheckins(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var filter checkin.EventFilter
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if shiftTypeID := r.URL.Query().Get("shift_type_id"); shiftTypeID != "" {
		filter.ShiftTypeID = &shiftTypeID
	}
	if startTime := r.URL.Query().Get("start_time"); startTime != "" {
		filter.StartTime = &startTime
	}
	if endTime := r.URL.Query().Get("end_time"); endTime != "" {
		filter.EndTime = &endTime
	}
	filter.SortOrder = r.URL.Query().Get("sort_order")
	filter.Page, filter.Limit = paginationParams(r)

	result, err := h.checkinService.ListEvents(r.Context(), filter, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Checkins, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}
