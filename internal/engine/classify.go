package engine

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
)

// DayStatus is the single label a date receives in the daily breakdown.
type DayStatus string

const (
	StatusPresent     DayStatus = "Present"
	StatusAbsent      DayStatus = "Absent"
	StatusWeekend     DayStatus = "Weekend"
	StatusHoliday     DayStatus = "Holiday"
	StatusPaidLeave   DayStatus = "Paid Leave"
	StatusUnpaidLeave DayStatus = "Unpaid Leave"
	StatusOvertime    DayStatus = "Overtime"
	StatusUpcoming    DayStatus = "Upcoming"
)

// Anomaly describes a record the classifier could not use as-is.
type Anomaly string

const (
	AnomalyNone                 Anomaly = ""
	AnomalyClockOutBeforeIn     Anomaly = "clock_out_before_clock_in"
	AnomalyAttendanceOnLeaveDay Anomaly = "attendance_on_unpaid_leave"
	// AnomalyMissingClockOut marks an elapsed day whose record was never closed.
	AnomalyMissingClockOut Anomaly = "missing_clock_out"
)

// DayInput is everything known about one date for one employee.
type DayInput struct {
	Date          civil.Date
	Attendance    *attendance.Attendance
	Leave         *LeaveDay
	IsHoliday     bool
	HolidayName   string
	OvertimeHours float64
	// Today separates elapsed dates from upcoming ones.
	Today civil.Date
}

// DayResult is the classification of one date.
type DayResult struct {
	Date          civil.Date    `json:"date"`
	Weekday       time.Weekday  `json:"-"`
	Status        DayStatus     `json:"status"`
	HolidayName   string        `json:"holiday_name,omitempty"`
	LeaveSession  leave.Session `json:"leave_session,omitempty"`
	ClockIn       *time.Time    `json:"clock_in,omitempty"`
	ClockOut      *time.Time    `json:"clock_out,omitempty"`
	Hours         float64       `json:"hours"`
	DeficitHours  float64       `json:"deficit_hours"`
	OvertimeHours float64       `json:"overtime_hours"`
	Anomaly       Anomaly       `json:"anomaly,omitempty"`
}

// NetHours returns the worked span between punches. Spans longer than five
// hours lose the lunch hour unless noLunch is set. ok is false when the
// clock-out precedes the clock-in.
func NetHours(clockIn, clockOut time.Time, noLunch bool) (hours float64, ok bool) {
	span := clockOut.Sub(clockIn).Hours()
	if span < 0 {
		return 0, false
	}
	if span > LunchDeductionThresholdHours && !noLunch {
		span -= LunchBreakHours
	}
	return span, true
}

// Classify labels a date and computes its hour contribution. Precedence:
// a working-day holiday without leave or presence, then leave, then presence,
// then weekend, then upcoming, and absent otherwise.
func (p Policy) Classify(in DayInput) DayResult {
	res := DayResult{
		Date:          in.Date,
		Weekday:       Weekday(in.Date),
		HolidayName:   in.HolidayName,
		OvertimeHours: in.OvertimeHours,
	}
	weekend := p.IsWeekend(in.Date)

	att := in.Attendance
	present := att != nil && att.IsPresent()
	if att != nil {
		res.ClockIn, res.ClockOut = att.ClockIn, att.ClockOut
	}

	switch {
	case in.IsHoliday && !weekend && in.Leave == nil && !present:
		res.Status = StatusHoliday
		res.Hours = StandardWorkHours

	case in.Leave != nil:
		p.classifyLeave(&res, in.Leave, att)

	case present:
		res.Status = StatusPresent
		if att.ClockOut == nil {
			// Only today may still be in progress.
			if in.Date.Before(in.Today) {
				res.Anomaly = AnomalyMissingClockOut
			}
			break
		}
		net, ok := NetHours(*att.ClockIn, *att.ClockOut, false)
		if !ok {
			res.Anomaly = AnomalyClockOutBeforeIn
			break
		}
		res.Hours = net
		if !weekend && !in.IsHoliday && net < StandardWorkHours {
			res.DeficitHours = StandardWorkHours - net
		}

	case weekend:
		res.Status = StatusWeekend
		if in.OvertimeHours > 0 {
			res.Status = StatusOvertime
		}

	case in.Date.After(in.Today):
		res.Status = StatusUpcoming

	default:
		res.Status = StatusAbsent
	}
	return res
}

func (p Policy) classifyLeave(res *DayResult, lv *LeaveDay, att *attendance.Attendance) {
	res.LeaveSession = lv.Session

	if !lv.IsPaid {
		res.Status = StatusUnpaidLeave
		if att != nil && att.IsPresent() {
			res.Anomaly = AnomalyAttendanceOnLeaveDay
		}
		return
	}

	res.Status = StatusPaidLeave
	if lv.IsFullDay {
		res.Hours = StandardWorkHours
		return
	}

	// Half-day paid leave tops the worked half up to a full standard day.
	var net float64
	if att != nil && att.IsPresent() && att.IsComplete() {
		if n, ok := NetHours(*att.ClockIn, *att.ClockOut, true); ok {
			net = n
		} else {
			res.Anomaly = AnomalyClockOutBeforeIn
		}
	}
	res.Hours = net
	if net < StandardWorkHours {
		res.Hours += StandardWorkHours - net
	}
}
