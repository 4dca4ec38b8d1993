package overtime

import "context"

type OvertimeService interface {
	SubmitOvertime(ctx context.Context, req SubmitOvertimeRequest) (OvertimeResponse, error)
	ApproveOvertime(ctx context.Context, req ReviewOvertimeRequest) (OvertimeResponse, error)
	RejectOvertime(ctx context.Context, req ReviewOvertimeRequest) (OvertimeResponse, error)
}
