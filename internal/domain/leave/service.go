package leave

import (
	"context"
)

type LeaveService interface {
	// Type
	ListLeaveTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	// Request
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, req ReviewLeaveRequest) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, req ReviewLeaveRequest) (LeaveRequestResponse, error)
	ListMyLeaveRequests(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	// Quota
	ListMyLeaveQuotas(ctx context.Context, employeeID string, year int) ([]LeaveQuotaResponse, error)
	AllocateLeaveQuota(ctx context.Context, req AllocateLeaveQuotaRequest) (LeaveQuotaResponse, error)
}
