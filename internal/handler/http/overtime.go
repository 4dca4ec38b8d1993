package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OvertimeHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type OvertimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &OvertimeHandlerImpl{
		overtimeService: overtimeService,
	}
}

// Submit implements OvertimeHandler.
func (h *OvertimeHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req overtime.SubmitOvertimeRequest
	if !decodeJSON(r, &req, "SubmitOvertime") {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	created, err := h.overtimeService.SubmitOvertime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime submitted successfully", created)
}

// Approve implements OvertimeHandler.
func (h *OvertimeHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req, ok := h.reviewRequest(w, r, "ApproveOvertime")
	if !ok {
		return
	}

	reviewed, err := h.overtimeService.ApproveOvertime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime approved successfully", reviewed)
}

// Reject implements OvertimeHandler.
func (h *OvertimeHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, ok := h.reviewRequest(w, r, "RejectOvertime")
	if !ok {
		return
	}

	reviewed, err := h.overtimeService.RejectOvertime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime rejected successfully", reviewed)
}

func (h *OvertimeHandlerImpl) reviewRequest(w http.ResponseWriter, r *http.Request, op string) (overtime.ReviewOvertimeRequest, bool) {
	var req overtime.ReviewOvertimeRequest

	reviewerID, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return req, false
	}

	if !decodeJSON(r, &req, op) {
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}
	req.OvertimeID = chi.URLParam(r, "id")
	req.ReviewerID = reviewerID
	return req, true
}
