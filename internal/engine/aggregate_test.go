package engine

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/overtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayOf(t *testing.T, agg MonthlyAggregate, d civil.Date) DayResult {
	t.Helper()
	for _, day := range agg.DailyBreakdown {
		if day.Date == d {
			return day
		}
	}
	t.Fatalf("no breakdown entry for %s", d)
	return DayResult{}
}

func assertDayIdentity(t *testing.T, agg MonthlyAggregate) {
	t.Helper()
	sum := agg.PresentDays + agg.AbsentDays + agg.LeaveDays() + agg.HolidayDays + agg.WeekendDays + agg.UpcomingDays
	assert.Equal(t, agg.Month.Days(), sum)
	assert.Len(t, agg.DailyBreakdown, agg.Month.Days())
}

func TestNetHours(t *testing.T) {
	d := date(2025, time.January, 2)
	tests := []struct {
		name    string
		in, out string
		noLunch bool
		want    float64
		ok      bool
	}{
		{"lunch deducted over five hours", "09:30", "18:00", false, 7.5, true},
		{"exactly five hours keeps lunch", "09:00", "14:00", false, 5, true},
		{"half day leave keeps lunch", "09:00", "15:30", true, 6.5, true},
		{"reversed punches", "18:00", "09:00", false, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NetHours(*punch(d, tt.in), *punch(d, tt.out), tt.noLunch)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregate_ClockedDayWithDeficit(t *testing.T) {
	thursday := date(2025, time.January, 2)

	agg := Aggregate(AggregateInput{
		Month:      january2025,
		Policy:     satSun(t),
		Attendance: []attendance.Attendance{present(thursday, "09:30", "18:00")},
		Today:      longAfter,
	})

	day := dayOf(t, agg, thursday)
	assert.Equal(t, StatusPresent, day.Status)
	assert.Equal(t, 7.5, day.Hours)
	assert.Equal(t, 1.0, day.DeficitHours)
	assert.Equal(t, 1, agg.PresentDays)
	assert.Equal(t, 22, agg.AbsentDays)
	assert.Equal(t, 7.5, agg.TotalHoursWorked)
	assert.Equal(t, 1.0, agg.DeficitHours)
	assertDayIdentity(t, agg)
}

func TestAggregate_UnpaidLeaveOnWednesday(t *testing.T) {
	p := satSun(t)
	wednesday := date(2025, time.January, 8)
	merged := p.ExpandAll([]leave.LeaveRequest{
		leaveReq("r1", wednesday, wednesday, leave.SessionFull, leave.SessionFull, false),
	})

	agg := Aggregate(AggregateInput{Month: january2025, Policy: p, Leave: merged, Today: longAfter})

	day := dayOf(t, agg, wednesday)
	assert.Equal(t, StatusUnpaidLeave, day.Status)
	assert.Zero(t, day.Hours)
	assert.Zero(t, day.DeficitHours)
	assert.Equal(t, 1, agg.UnpaidLeaveDays)
	assert.Equal(t, 1.0, agg.LeaveDayUnits)
	assert.Zero(t, agg.TotalHoursWorked)
	assert.Zero(t, agg.DeficitHours)
	assert.Zero(t, agg.EffectiveDays)
	assertDayIdentity(t, agg)
}

func TestAggregate_HolidayOnWeekendIsNotCounted(t *testing.T) {
	saturday := date(2025, time.January, 4)

	agg := Aggregate(AggregateInput{
		Month:    january2025,
		Policy:   satSun(t),
		Holidays: []holiday.Holiday{{ID: "h1", Date: saturday, Name: "Founders Day"}},
		Today:    longAfter,
	})

	day := dayOf(t, agg, saturday)
	assert.Equal(t, StatusWeekend, day.Status)
	assert.Zero(t, day.Hours)
	assert.Zero(t, agg.HolidayDays)
	assert.Equal(t, 8, agg.WeekendDays)
	assert.Zero(t, agg.TotalHoursWorked)
	assertDayIdentity(t, agg)
}

func TestAggregate_HolidayOnWorkingDay(t *testing.T) {
	newYear := date(2025, time.January, 1)

	agg := Aggregate(AggregateInput{
		Month:    january2025,
		Policy:   satSun(t),
		Holidays: []holiday.Holiday{{ID: "h1", Date: newYear, Name: "New Year"}},
		Today:    longAfter,
	})

	day := dayOf(t, agg, newYear)
	assert.Equal(t, StatusHoliday, day.Status)
	assert.Equal(t, "New Year", day.HolidayName)
	assert.Equal(t, StandardWorkHours, day.Hours)
	assert.Zero(t, day.DeficitHours)
	assert.Equal(t, 1, agg.HolidayDays)
	assert.Equal(t, 22, agg.AbsentDays)
	assert.Equal(t, 1.0, agg.EffectiveDays)
	assertDayIdentity(t, agg)
}

func TestAggregate_AttendanceOnHolidayWins(t *testing.T) {
	newYear := date(2025, time.January, 1)

	agg := Aggregate(AggregateInput{
		Month:      january2025,
		Policy:     satSun(t),
		Attendance: []attendance.Attendance{present(newYear, "10:00", "13:00")},
		Holidays:   []holiday.Holiday{{ID: "h1", Date: newYear, Name: "New Year"}},
		Today:      longAfter,
	})

	day := dayOf(t, agg, newYear)
	assert.Equal(t, StatusPresent, day.Status)
	assert.Equal(t, 3.0, day.Hours)
	assert.Zero(t, day.DeficitHours, "no deficit on a holiday")
	assert.Zero(t, agg.HolidayDays)
	assertDayIdentity(t, agg)
}

func TestAggregate_PaidLeaveRoundTrip(t *testing.T) {
	p := satSun(t)
	// Friday 2025-01-03 to Friday 2025-01-10 covers six working days.
	merged := p.ExpandAll([]leave.LeaveRequest{
		leaveReq("r1", date(2025, time.January, 3), date(2025, time.January, 10), leave.SessionFull, leave.SessionFull, true),
	})

	agg := Aggregate(AggregateInput{Month: january2025, Policy: p, Leave: merged, Today: longAfter})

	assert.Equal(t, 6, agg.PaidLeaveDays)
	assert.Equal(t, 6*StandardWorkHours, agg.TotalHoursWorked)
	assert.Zero(t, agg.DeficitHours)
	assert.Equal(t, 6.0, agg.EffectiveDays)
	assertDayIdentity(t, agg)
}

func TestAggregate_PaidHalfDayTopUp(t *testing.T) {
	p := satSun(t)
	mon, tue, wed := date(2025, time.January, 6), date(2025, time.January, 7), date(2025, time.January, 8)
	merged := p.ExpandAll([]leave.LeaveRequest{
		leaveReq("r1", mon, mon, leave.SessionAfternoon, leave.SessionAfternoon, true),
		leaveReq("r2", tue, tue, leave.SessionMorning, leave.SessionMorning, true),
		leaveReq("r3", wed, wed, leave.SessionMorning, leave.SessionMorning, true),
	})

	agg := Aggregate(AggregateInput{
		Month:  january2025,
		Policy: p,
		Attendance: []attendance.Attendance{
			present(mon, "09:30", "13:30"),
			// Over five hours but no lunch deduction on a half-day leave date.
			present(tue, "09:00", "15:30"),
			present(wed, "08:00", "18:00"),
		},
		Leave: merged,
		Today: longAfter,
	})

	assert.Equal(t, StandardWorkHours, dayOf(t, agg, mon).Hours)
	assert.Equal(t, StandardWorkHours, dayOf(t, agg, tue).Hours)
	assert.Equal(t, 10.0, dayOf(t, agg, wed).Hours)
	assert.Equal(t, StatusPaidLeave, dayOf(t, agg, mon).Status)
	assert.Equal(t, 1.5, agg.LeaveDayUnits)
	assert.Equal(t, 3, agg.PaidLeaveDays)
	assert.Zero(t, agg.DeficitHours)
	assertDayIdentity(t, agg)
}

func TestAggregate_LeaveBeatsHoliday(t *testing.T) {
	p := satSun(t)
	newYear := date(2025, time.January, 1)
	merged := p.ExpandAll([]leave.LeaveRequest{
		leaveReq("r1", newYear, newYear, leave.SessionMorning, leave.SessionMorning, true),
	})

	agg := Aggregate(AggregateInput{
		Month:    january2025,
		Policy:   p,
		Leave:    merged,
		Holidays: []holiday.Holiday{{ID: "h1", Date: newYear, Name: "New Year"}},
		Today:    longAfter,
	})

	day := dayOf(t, agg, newYear)
	assert.Equal(t, StatusPaidLeave, day.Status)
	assert.Equal(t, StandardWorkHours, day.Hours)
	assert.Zero(t, agg.HolidayDays)
	assert.Equal(t, 1, agg.PaidLeaveDays)
	assertDayIdentity(t, agg)
}

func TestAggregate_InProgressAndInvalidPunches(t *testing.T) {
	thu, fri, mon := date(2025, time.January, 2), date(2025, time.January, 3), date(2025, time.January, 6)

	agg := Aggregate(AggregateInput{
		Month:  january2025,
		Policy: satSun(t),
		Attendance: []attendance.Attendance{
			present(thu, "09:30", ""),
			present(fri, "18:00", "09:00"),
			present(mon, "09:30", ""),
		},
		Today: mon,
	})

	inProgress := dayOf(t, agg, mon)
	assert.Equal(t, StatusPresent, inProgress.Status)
	assert.Equal(t, AnomalyNone, inProgress.Anomaly)
	assert.Zero(t, inProgress.Hours)
	assert.Zero(t, inProgress.DeficitHours)

	neverClosed := dayOf(t, agg, thu)
	assert.Equal(t, StatusPresent, neverClosed.Status)
	assert.Equal(t, AnomalyMissingClockOut, neverClosed.Anomaly)
	assert.Zero(t, neverClosed.Hours)

	reversed := dayOf(t, agg, fri)
	assert.Equal(t, StatusPresent, reversed.Status)
	assert.Equal(t, AnomalyClockOutBeforeIn, reversed.Anomaly)
	assert.Zero(t, reversed.Hours)

	assert.Equal(t, []civil.Date{thu, fri}, agg.Anomalies)
	assert.GreaterOrEqual(t, agg.TotalHoursWorked, 0.0)
	assertDayIdentity(t, agg)
}

func TestAggregate_FutureDatesAreUpcoming(t *testing.T) {
	agg := Aggregate(AggregateInput{
		Month:  january2025,
		Policy: satSun(t),
		Today:  date(2025, time.January, 15),
	})

	assert.Equal(t, 11, agg.AbsentDays)
	assert.Equal(t, 12, agg.UpcomingDays)
	assert.Equal(t, StatusUpcoming, dayOf(t, agg, date(2025, time.January, 16)).Status)
	assert.Equal(t, StatusAbsent, dayOf(t, agg, date(2025, time.January, 15)).Status)
	assert.Equal(t, StatusWeekend, dayOf(t, agg, date(2025, time.January, 18)).Status)
	assertDayIdentity(t, agg)
}

func TestAggregate_Overtime(t *testing.T) {
	sat, sun := date(2025, time.January, 11), date(2025, time.January, 12)

	agg := Aggregate(AggregateInput{
		Month:  january2025,
		Policy: satSun(t),
		Overtime: []overtime.Overtime{
			{ID: "o1", Date: sat, HoursWorked: 4, Type: overtime.TypeWeekend, Status: overtime.StatusApproved},
			{ID: "o2", Date: sat, HoursWorked: 2, Type: overtime.TypeWeekend, Status: overtime.StatusApproved},
			{ID: "o3", Date: sun, HoursWorked: 5, Type: overtime.TypeWeekend, Status: overtime.StatusPending},
			{ID: "o4", Date: date(2025, time.February, 1), HoursWorked: 3, Status: overtime.StatusApproved},
		},
		Today: longAfter,
	})

	day := dayOf(t, agg, sat)
	assert.Equal(t, StatusOvertime, day.Status)
	assert.Equal(t, 6.0, day.OvertimeHours)
	assert.Zero(t, day.Hours)
	assert.Equal(t, StatusWeekend, dayOf(t, agg, sun).Status)
	assert.Equal(t, 6.0, agg.OvertimeHours)
	assert.Equal(t, []float64{4, 2}, agg.OvertimeEntries)
	assert.Equal(t, 8, agg.WeekendDays)
	assertDayIdentity(t, agg)
}

func TestAggregate_LeaveConflictsAreReported(t *testing.T) {
	p := satSun(t)
	merged := p.ExpandAll([]leave.LeaveRequest{
		leaveReq("r1", date(2025, time.January, 8), date(2025, time.January, 9), leave.SessionFull, leave.SessionFull, true),
		leaveReq("r2", date(2025, time.January, 9), date(2025, time.January, 9), leave.SessionFull, leave.SessionFull, false),
	})

	agg := Aggregate(AggregateInput{Month: january2025, Policy: p, Leave: merged, Today: longAfter})

	assert.Equal(t, []civil.Date{date(2025, time.January, 9)}, agg.LeaveConflicts)
	assert.Equal(t, 2, agg.PaidLeaveDays)
	assert.Zero(t, agg.UnpaidLeaveDays)
	assertDayIdentity(t, agg)
}

func TestAggregate_DayIdentityAcrossMixedMonth(t *testing.T) {
	p := satSun(t)
	merged := p.ExpandAll([]leave.LeaveRequest{
		leaveReq("r1", date(2025, time.January, 20), date(2025, time.January, 22), leave.SessionAfternoon, leave.SessionFull, true),
		leaveReq("r2", date(2025, time.January, 27), date(2025, time.January, 27), leave.SessionFull, leave.SessionFull, false),
	})

	var records []attendance.Attendance
	for d := date(2025, time.January, 6); !d.After(date(2025, time.January, 17)); d = d.AddDays(1) {
		if !p.IsWeekend(d) {
			records = append(records, present(d, "09:30", "19:00"))
		}
	}
	// Records outside the month are ignored.
	records = append(records, present(date(2024, time.December, 31), "09:30", "19:00"))

	agg := Aggregate(AggregateInput{
		Month:      january2025,
		Policy:     p,
		Attendance: records,
		Leave:      merged,
		Holidays: []holiday.Holiday{
			{ID: "h1", Date: date(2025, time.January, 1), Name: "New Year"},
			{ID: "h2", Date: date(2025, time.January, 29), Name: "Lunar New Year"},
		},
		Today: longAfter,
	})

	assert.Equal(t, 10, agg.PresentDays)
	assert.Equal(t, 2, agg.HolidayDays)
	assert.Equal(t, 3, agg.PaidLeaveDays)
	assert.Equal(t, 1, agg.UnpaidLeaveDays)
	assert.Equal(t, 2.5+1, agg.LeaveDayUnits)
	assert.Equal(t, 7, agg.AbsentDays)
	assert.Equal(t, 23, agg.WorkingDays)
	assert.Equal(t, 8, agg.WeekendDays)
	// 10 full days, 2 holidays, 3 paid leave dates.
	require.Equal(t, 15*StandardWorkHours, agg.TotalHoursWorked)
	assert.Equal(t, 15.0, agg.EffectiveDays)
	assert.Equal(t, agg.TotalHoursWorked/StandardWorkHours, agg.EffectiveDays)
	assertDayIdentity(t, agg)
}
