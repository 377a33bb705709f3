package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/leave"
	"github.com/peopleops-hr/attendance-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	PendingApprovals(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

func actorFrom(claims tokenClaims) leave.Actor {
	return leave.Actor{
		EmployeeID: claims.EmployeeID,
		UserID:     claims.UserID,
		CompanyID:  claims.CompanyID,
		Role:       claims.Role,
	}
}

// Create implements LeaveHandler.
func (h *leaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = claims.EmployeeID
	req.CompanyID = claims.CompanyID

	created, err := h.leaveService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", created)
}

// Validate implements LeaveHandler.
func (h *leaveHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = claims.EmployeeID
	req.CompanyID = claims.CompanyID

	validation, err := h.leaveService.ValidateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, validation)
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.ApproveRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.RequestID = chi.URLParam(r, "id")

	approved, err := h.leaveService.Approve(r.Context(), actorFrom(claims), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", approved)
}

// Reject implements LeaveHandler.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	rejected, err := h.leaveService.Reject(r.Context(), actorFrom(claims), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", rejected)
}

// Cancel implements LeaveHandler.
func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	cancelled, err := h.leaveService.Cancel(r.Context(), actorFrom(claims), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", cancelled)
}

// Balance implements LeaveHandler.
func (h *leaveHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	balance, err := h.leaveService.Balance(r.Context(), claims.EmployeeID, claims.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// MyRequests implements LeaveHandler.
func (h *leaveHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	requests, err := h.leaveService.MyRequests(r.Context(), claims.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// PendingApprovals implements LeaveHandler.
func (h *leaveHandlerImpl) PendingApprovals(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	requests, err := h.leaveService.PendingApprovals(r.Context(), actorFrom(claims))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}
