package engine

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func punch(d civil.Date, hhmm string) *time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	at := time.Date(d.Year, d.Month, d.Day, t.Hour(), t.Minute(), 0, 0, time.UTC)
	return &at
}

func present(d civil.Date, in, out string) attendance.Attendance {
	a := attendance.Attendance{
		ID:         "att-" + d.String(),
		EmployeeID: "emp-1",
		Date:       d,
		Status:     attendance.StatusPresent,
		ClockIn:    punch(d, in),
	}
	if out != "" {
		a.ClockOut = punch(d, out)
	}
	return a
}

func leaveReq(id string, from, to civil.Date, fromSession, toSession leave.Session, paid bool) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:          id,
		EmployeeID:  "emp-1",
		LeaveTypeID: "lt-1",
		FromDate:    from,
		ToDate:      to,
		FromSession: fromSession,
		ToSession:   toSession,
		Status:      leave.LeaveRequestStatusApproved,
		IsPaid:      paid,
	}
}

func satSun(t *testing.T) Policy {
	t.Helper()
	p, err := NewPolicy([]string{"Saturday", "Sunday"})
	require.NoError(t, err)
	return p
}

var january2025 = Month{Year: 2025, Month: time.January}

// longAfter puts "today" past every date used in the tests.
var longAfter = date(2030, time.January, 1)
