package attendance

import (
	"context"
)

type AttendanceService interface {
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)
	ListMyAttendance(ctx context.Context, req ListMyAttendanceRequest) ([]AttendanceResponse, error)
}
