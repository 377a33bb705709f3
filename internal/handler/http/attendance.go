package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/peopleops-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/peopleops-hr/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)
	Absentees(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.ClockInRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.EmployeeID = claims.EmployeeID
	req.CompanyID = claims.CompanyID

	day, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked in", day)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.ClockOutRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.EmployeeID = claims.EmployeeID
	req.CompanyID = claims.CompanyID

	day, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", day)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	day, err := h.attendanceService.Today(r.Context(), claims.EmployeeID, claims.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, day)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	summary, err := h.attendanceService.Summary(r.Context(), claims.EmployeeID, claims.CompanyID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// Recompute implements AttendanceHandler.
func (h *attendanceHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.RecomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = claims.CompanyID

	day, err := h.attendanceService.Recompute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day recomputed", day)
}

// Absentees implements AttendanceHandler.
func (h *attendanceHandlerImpl) Absentees(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "Query parameter 'date' is required", nil)
		return
	}

	absentees, err := h.attendanceService.Absentees(r.Context(), claims.CompanyID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, absentees)
}
