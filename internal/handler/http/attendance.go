package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rotalabs/shift-backend-go/internal/domain/attendance"
	"github.com/rotalabs/shift-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	MarkAttendance(w http.ResponseWriter, r *http.Request)
	GetAttendance(w http.ResponseWriter, r *http.Request)
	ListAttendance(w http.ResponseWriter, r *http.Request)
	ProcessAutoAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// MarkAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = companyID

	result, err := h.attendanceService.MarkAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance marked successfully", result)
}

// GetAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetAttendance(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}
	id := chi.URLParam(r, "id")

	result, err := h.attendanceService.GetAttendance(r.Context(), id, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListAttendance(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var filter attendance.AttendanceFilter
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if shiftTypeID := r.URL.Query().Get("shift_type_id"); shiftTypeID != "" {
		filter.ShiftTypeID = &shiftTypeID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	filter.SortBy = r.URL.Query().Get("sort_by")
	filter.SortOrder = r.URL.Query().Get("sort_order")
	filter.Page, filter.Limit = paginationParams(r)

	result, err := h.attendanceService.ListAttendance(r.Context(), filter, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendances, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// ProcessAutoAttendance implements AttendanceHandler. Manual trigger for a
// single shift type, outside the hourly schedule.
func (h *attendanceHandlerImpl) ProcessAutoAttendance(w http.ResponseWriter, r *http.Request) {
	companyID, ok := companyIDFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token claims")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.attendanceService.ProcessShiftType(r.Context(), id, companyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Auto attendance processed successfully", nil)
}
