package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/rotalabs/shift-backend-go/internal/domain/shift"
	"github.com/rotalabs/shift-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	// Shift Type
	CreateShiftType(w http.ResponseWriter, r *http.Request)
	GetShiftType(w http.ResponseWriter, r *http.Request)
	ListShiftTypes(w http.ResponseWriter, r *http.Request)
	UpdateShiftType(w http.ResponseWriter, r *http.Request)
	DeleteShiftType(w http.ResponseWriter, r *http.Request)

	// Shift Assignment
	CreateAssignment(w http.ResponseWriter, r *http.Request)
	BulkCreateAssignments(w http.ResponseWriter, r *http.Request)
	GetAssignment(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
	EndAssignment(w http.ResponseWriter, r *http.Request)
	DeleteAssignment(w http.ResponseWriter, r *http.Request)

	// Shift Location
	CreateLocation(w http.ResponseWriter, r *http.Request)
	GetLocation(w http.ResponseWriter, r *http.Request)
	ListLocations(w http.ResponseWriter, r *http.Request)
	UpdateLocation(w http.ResponseWriter, r *http.Request)
	DeleteLocation(w http.ResponseWriter, r *http.Request)

	// Shift Schedule
	CreateSchedule(w http.ResponseWriter, r *http.Request)
	GetSchedule(w http.ResponseWriter, r *http.Request)
	ListSchedules(w http.ResponseWriter, r *http.Request)
	DeleteSchedule(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService: shiftService,
	}
}

// companyIDFromContext extracts the tenant from the verified JWT claims.
func companyIDFromContext(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	companyID, ok := claims["company_id"].(string)
	return companyID, ok && companyID != ""
}

// ==================== SHIFT TYPE HANDLERS ====================

// CreateShiftType implements ShiftHandler.
func (h *shiftHandlerImpl) CreateShiftType(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var req shift.CreateShiftTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = companyID

	result, err := h.shiftService.CreateShiftType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift type created successfully", result)
}

// GetShiftType implements ShiftHandler.
func (h *shiftHandlerImpl) GetShiftType(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}
	id := chi.URLParam(r, "id")

	result, err := h.shiftService.GetShiftType(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListShiftTypes implements ShiftHandler.
func (h *shiftHandlerImpl) ListShiftTypes(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var filter shift.ShiftTypeFilter
	if name := r.URL.Query().Get("name"); name != "" {
		filter.Name = &name
	}
	filter.Page, filter.Limit = paginationParams(r)

	result, err := h.shiftService.ListShiftTypes(r.Context(), filter, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.ShiftTypes, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// UpdateShiftType implements ShiftHandler.
func (h *shiftHandlerImpl) UpdateShiftType(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var req shift.UpdateShiftTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.CompanyID = companyID

	if err := h.shiftService.UpdateShiftType(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift type updated successfully", nil)
}

// DeleteShiftType implements ShiftHandler.
func (h *shiftHandlerImpl) DeleteShiftType(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.shiftService.DeleteShiftType(r.Context(), id, companyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift type deleted successfully", nil)
}

// ==================== SHIFT ASSIGNMENT HANDLERS ====================

// CreateAssignment implements ShiftHandler.
func (h *shiftHandlerImpl) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var req shift.CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = companyID

	result, err := h.shiftService.CreateAssignment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift assignment created successfully", result)
}

// BulkCreateAssignments implements ShiftHandler.
func (h *shiftHandlerImpl) BulkCreateAssignments(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var req shift.BulkCreateAssignmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = companyID

	result, err := h.shiftService.BulkCreateAssignments(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift assignments processed", result)
}

// GetAssignment implements ShiftHandler.
func (h *shiftHandlerImpl) GetAssignment(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}
	id := chi.URLParam(r, "id")

	result, err := h.shiftService.GetAssignment(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListAssignments implements ShiftHandler.
func (h *shiftHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var filter shift.AssignmentFilter
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if shiftTypeID := r.URL.Query().Get("shift_type_id"); shiftTypeID != "" {
		filter.ShiftTypeID = &shiftTypeID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if date := r.URL.Query().Get("date"); date != "" {
		filter.Date = &date
	}
	filter.SortBy = r.URL.Query().Get("sort_by")
	filter.SortOrder = r.URL.Query().Get("sort_order")
	filter.Page, filter.Limit = paginationParams(r)

	result, err := h.shiftService.ListAssignments(r.Context(), filter, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Assignments, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// EndAssignment implements ShiftHandler.
func (h *shiftHandlerImpl) EndAssignment(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var req shift.EndAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.CompanyID = companyID

	if err := h.shiftService.EndAssignment(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift assignment ended successfully", nil)
}

// DeleteAssignment implements ShiftHandler.
func (h *shiftHandlerImpl) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.shiftService.DeleteAssignment(r.Context(), id, companyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift assignment deleted successfully", nil)
}

// ==================== SHIFT LOCATION HANDLERS ====================

// CreateLocation implements ShiftHandler.
func (h *shiftHandlerImpl) CreateLocation(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var req shift.CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = companyID

	result, err := h.shiftService.CreateLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift location created successfully", result)
}

// GetLocation implements ShiftHandler.
func (h *shiftHandlerImpl) GetLocation(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}
	id := chi.URLParam(r, "id")

	result, err := h.shiftService.GetLocation(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListLocations implements ShiftHandler.
func (h *shiftHandlerImpl) ListLocations(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	result, err := h.shiftService.ListLocations(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateLocation implements ShiftHandler.
func (h *shiftHandlerImpl) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var req shift.UpdateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.CompanyID = companyID

	if err := h.shiftService.UpdateLocation(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift location updated successfully", nil)
}

// DeleteLocation implements ShiftHandler.
func (h *shiftHandlerImpl) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.shiftService.DeleteLocation(r.Context(), id, companyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift location deleted successfully", nil)
}

// ==================== SHIFT SCHEDULE HANDLERS ====================

// CreateSchedule implements ShiftHandler.
func (h *shiftHandlerImpl) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var req shift.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = companyID

	result, err := h.shiftService.CreateSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift schedule created successfully", result)
}

// GetSchedule implements ShiftHandler.
func (h *shiftHandlerImpl) GetSchedule(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}
	id := chi.URLParam(r, "id")

	result, err := h.shiftService.GetSchedule(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListSchedules implements ShiftHandler.
func (h *shiftHandlerImpl) ListSchedules(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	result, err := h.shiftService.ListSchedules(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteSchedule implements ShiftHandler.
func (h *shiftHandlerImpl) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.shiftService.DeleteSchedule(r.Context(), id, companyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift schedule deleted successfully", nil)
}

// paginationParams reads page and limit query parameters.
func paginationParams(r *http.Request) (page int, limit int) {
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil {
			page = p
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}
	return page, limit
}
