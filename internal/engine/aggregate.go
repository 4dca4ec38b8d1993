package engine

import (
	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/overtime"
)

// AggregateInput holds one employee's records for one month. Records outside
// the month are ignored.
type AggregateInput struct {
	Month      Month
	Policy     Policy
	Attendance []attendance.Attendance
	Leave      MergedLeave
	Holidays   []holiday.Holiday
	Overtime   []overtime.Overtime
	Today      civil.Date
}

// MonthlyAggregate is the per-employee monthly summary. Every date of the
// month lands in exactly one of the day counters.
type MonthlyAggregate struct {
	Month       Month
	WorkingDays int

	PresentDays     int
	AbsentDays      int
	PaidLeaveDays   int
	UnpaidLeaveDays int
	HolidayDays     int
	WeekendDays     int
	UpcomingDays    int
	// LeaveDayUnits counts half-day leave as 0.5.
	LeaveDayUnits float64

	TotalHoursWorked float64
	DeficitHours     float64
	OvertimeHours    float64
	EffectiveDays    float64
	// OvertimeEntries keeps each approved entry's hours for pay calculation.
	OvertimeEntries []float64

	DailyBreakdown []DayResult
	Anomalies      []civil.Date
	LeaveConflicts []civil.Date
}

func (a MonthlyAggregate) LeaveDays() int {
	return a.PaidLeaveDays + a.UnpaidLeaveDays
}

// Aggregate classifies every date of the month and sums the results.
func Aggregate(in AggregateInput) MonthlyAggregate {
	m := in.Month
	agg := MonthlyAggregate{
		Month:       m,
		WorkingDays: in.Policy.WorkingDaysInMonth(m),
	}

	byDate := make(map[civil.Date]*attendance.Attendance, len(in.Attendance))
	for i := range in.Attendance {
		a := &in.Attendance[i]
		if !m.Contains(a.Date) {
			continue
		}
		if _, dup := byDate[a.Date]; !dup {
			byDate[a.Date] = a
		}
	}

	holidays := make(map[civil.Date]string, len(in.Holidays))
	for _, h := range in.Holidays {
		if m.Contains(h.Date) {
			holidays[h.Date] = h.Name
		}
	}

	overtimeByDate := make(map[civil.Date]float64)
	for _, o := range in.Overtime {
		if !o.IsApproved() || !m.Contains(o.Date) {
			continue
		}
		overtimeByDate[o.Date] += o.HoursWorked
		agg.OvertimeHours += o.HoursWorked
		agg.OvertimeEntries = append(agg.OvertimeEntries, o.HoursWorked)
	}

	for _, d := range in.Leave.Conflicts {
		if m.Contains(d) {
			agg.LeaveConflicts = append(agg.LeaveConflicts, d)
		}
	}

	agg.DailyBreakdown = make([]DayResult, 0, m.Days())
	for _, d := range m.Dates() {
		name, isHoliday := holidays[d]
		input := DayInput{
			Date:          d,
			Attendance:    byDate[d],
			IsHoliday:     isHoliday,
			HolidayName:   name,
			OvertimeHours: overtimeByDate[d],
			Today:         in.Today,
		}
		if lv, ok := in.Leave.Days[d]; ok {
			input.Leave = &lv
		}

		day := in.Policy.Classify(input)
		agg.add(day)
	}

	if agg.TotalHoursWorked > 0 {
		agg.EffectiveDays = agg.TotalHoursWorked / StandardWorkHours
	}
	return agg
}

func (a *MonthlyAggregate) add(day DayResult) {
	switch day.Status {
	case StatusPresent:
		a.PresentDays++
	case StatusAbsent:
		a.AbsentDays++
	case StatusWeekend, StatusOvertime:
		a.WeekendDays++
	case StatusHoliday:
		a.HolidayDays++
	case StatusPaidLeave:
		a.PaidLeaveDays++
		a.LeaveDayUnits += leaveUnits(day)
	case StatusUnpaidLeave:
		a.UnpaidLeaveDays++
		a.LeaveDayUnits += leaveUnits(day)
	case StatusUpcoming:
		a.UpcomingDays++
	}

	a.TotalHoursWorked += day.Hours
	a.DeficitHours += day.DeficitHours
	if day.Anomaly != AnomalyNone {
		a.Anomalies = append(a.Anomalies, day.Date)
	}
	a.DailyBreakdown = append(a.DailyBreakdown, day)
}

func leaveUnits(day DayResult) float64 {
	if day.LeaveSession == "" || day.LeaveSession == leave.SessionFull {
		return 1
	}
	return 0.5
}
