package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ListTypes(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)

	GetMyQuotas(w http.ResponseWriter, r *http.Request)
	AllocateQuota(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := l.leaveService.ListLeaveTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateLeaveRequestRequest
	if !decodeJSON(r, &req, "CreateRequest") {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	created, err := l.leaveService.CreateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := l.leaveService.ListMyLeaveRequests(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := l.reviewRequest(w, r, "ApproveRequest")
	if !ok {
		return
	}

	reviewed, err := l.leaveService.ApproveLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", reviewed)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := l.reviewRequest(w, r, "RejectRequest")
	if !ok {
		return
	}

	reviewed, err := l.leaveService.RejectLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected successfully", reviewed)
}

// GetMyQuotas implements LeaveHandler. year defaults to the current year.
func (l *LeaveHandlerImpl) GetMyQuotas(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, err := queryInt(r, "year")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	quotas, err := l.leaveService.ListMyLeaveQuotas(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, quotas)
}

// AllocateQuota implements LeaveHandler.
func (l *LeaveHandlerImpl) AllocateQuota(w http.ResponseWriter, r *http.Request) {
	var req leave.AllocateLeaveQuotaRequest
	if !decodeJSON(r, &req, "AllocateQuota") {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	quota, err := l.leaveService.AllocateLeaveQuota(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave quota allocated successfully", quota)
}

func (l *LeaveHandlerImpl) reviewRequest(w http.ResponseWriter, r *http.Request, op string) (leave.ReviewLeaveRequest, bool) {
	var req leave.ReviewLeaveRequest

	reviewerID, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return req, false
	}

	if !decodeJSON(r, &req, op) {
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}
	req.RequestID = chi.URLParam(r, "id")
	req.ReviewerID = reviewerID
	return req, true
}
