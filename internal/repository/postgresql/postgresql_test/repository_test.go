package postgresql_test

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/overtime"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) civil.Date {
	return civil.Date{Year: 2025, Month: time.January, Day: d}
}

func TestEmployeeRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	salary := "3000000.00"
	withSalary := createEmployee(t, db, "Bravo", &salary)
	withoutSalary := createEmployee(t, db, "Alpha", nil)

	emp, err := repo.GetByID(ctx, withSalary)
	require.NoError(t, err)
	require.NotNil(t, emp.MonthlySalary)
	assert.Equal(t, "3000000", emp.MonthlySalary.String())

	emp, err = repo.GetByID(ctx, withoutSalary)
	require.NoError(t, err)
	assert.Nil(t, emp.MonthlySalary)

	list, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].FullName)

	_, err = repo.GetByID(ctx, "0190a000-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	empID := createEmployee(t, db, "Clocker", nil)

	in := time.Date(2025, time.January, 2, 9, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: empID, Date: day(2), ClockIn: &in, Status: attendance.StatusPresent,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = repo.Create(ctx, attendance.Attendance{
		EmployeeID: empID, Date: day(2), ClockIn: &in, Status: attendance.StatusPresent,
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	out := in.Add(9 * time.Hour)
	require.NoError(t, repo.UpdateClockOut(ctx, created.ID, out))

	got, err := repo.GetByEmployeeAndDate(ctx, empID, day(2))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, day(2), got.Date)
	require.NotNil(t, got.ClockOut)
	assert.True(t, got.ClockOut.Equal(out))

	missing, err := repo.GetByEmployeeAndDate(ctx, empID, day(3))
	require.NoError(t, err)
	assert.Nil(t, missing)

	open, err := repo.GetOpenByEmployee(ctx, empID)
	require.NoError(t, err)
	assert.Nil(t, open)

	late := time.Date(2025, time.January, 3, 21, 0, 0, 0, time.UTC)
	_, err = repo.Create(ctx, attendance.Attendance{
		EmployeeID: empID, Date: day(3), ClockIn: &late, Status: attendance.StatusPresent,
	})
	require.NoError(t, err)

	open, err = repo.GetOpenByEmployee(ctx, empID)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, day(3), open.Date)

	list, err := repo.ListByEmployeeAndRange(ctx, empID, day(1), day(31))
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestLeaveRequestRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(db)
	empID := createEmployee(t, db, "Leaver", nil)
	typeID := createLeaveType(t, db, "Annual", true)

	newRequest := func(from, to int) leave.LeaveRequest {
		return leave.LeaveRequest{
			EmployeeID: empID, LeaveTypeID: typeID,
			FromDate: day(from), ToDate: day(to),
			FromSession: leave.SessionFull, ToSession: leave.SessionFull,
			TotalDays: float64(to - from + 1), Reason: "trip",
			Status: leave.LeaveRequestStatusPending,
		}
	}

	first, err := repo.Create(ctx, newRequest(6, 8))
	require.NoError(t, err)
	assert.True(t, first.IsPaid)
	require.NotNil(t, first.LeaveTypeName)
	assert.Equal(t, "Annual", *first.LeaveTypeName)

	second, err := repo.Create(ctx, newRequest(8, 10))
	require.NoError(t, err)

	overlap, err := repo.HasOverlap(ctx, empID, day(8), day(8),
		[]leave.LeaveRequestStatus{leave.LeaveRequestStatusPending}, first.ID)
	require.NoError(t, err)
	assert.True(t, overlap)

	reviewedAt := time.Now().UTC()
	require.NoError(t, repo.UpdateStatus(ctx, first.ID, leave.LeaveRequestStatusApproved, "admin", reviewedAt, nil))

	err = repo.UpdateStatus(ctx, second.ID, leave.LeaveRequestStatusApproved, "admin", reviewedAt, nil)
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	// A decided request cannot be decided again.
	err = repo.UpdateStatus(ctx, first.ID, leave.LeaveRequestStatusRejected, "admin", reviewedAt, nil)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
	err = repo.UpdateStatus(ctx, "0190a000-0000-7000-8000-000000000000", leave.LeaveRequestStatusRejected, "admin", reviewedAt, nil)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	approved, err := repo.ListApprovedByEmployeeAndRange(ctx, empID, day(1), day(31))
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, first.ID, approved[0].ID)
	assert.Equal(t, day(6), approved[0].FromDate)
}

func TestLeaveQuotaRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveQuotaRepository(db)
	empID := createEmployee(t, db, "Quota", nil)
	typeID := createLeaveType(t, db, "Annual", true)

	_, err := repo.GetByEmployeeTypeYear(ctx, empID, typeID, 2025)
	assert.ErrorIs(t, err, leave.ErrQuotaNotFound)

	created, err := repo.Create(ctx, leave.LeaveQuota{EmployeeID: empID, LeaveTypeID: typeID, Year: 2025, AllocatedDays: 3})
	require.NoError(t, err)
	assert.Equal(t, 3.0, created.AllocatedDays)
	require.NotNil(t, created.LeaveTypeName)
	assert.Equal(t, "Annual", *created.LeaveTypeName)

	again, err := repo.Create(ctx, leave.LeaveQuota{EmployeeID: empID, LeaveTypeID: typeID, Year: 2025, AllocatedDays: 99})
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, 3.0, again.AllocatedDays)

	require.NoError(t, repo.AddPending(ctx, created.ID, 2.5))
	assert.ErrorIs(t, repo.AddPending(ctx, created.ID, 1), leave.ErrInsufficientQuota)
	require.NoError(t, repo.MovePendingToUsed(ctx, created.ID, 2))
	require.NoError(t, repo.RemovePending(ctx, created.ID, 0.5))

	got, err := repo.GetByEmployeeTypeYear(ctx, empID, typeID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.UsedDays)
	assert.Equal(t, 0.0, got.PendingDays)

	_, err = repo.SetAllocation(ctx, leave.LeaveQuota{EmployeeID: empID, LeaveTypeID: typeID, Year: 2025, AllocatedDays: 1.5})
	assert.ErrorIs(t, err, leave.ErrQuotaBelowCommitted)

	raised, err := repo.SetAllocation(ctx, leave.LeaveQuota{EmployeeID: empID, LeaveTypeID: typeID, Year: 2025, AllocatedDays: 10})
	require.NoError(t, err)
	assert.Equal(t, 10.0, raised.AllocatedDays)
	assert.Equal(t, 8.0, raised.AvailableDays())

	_, err = repo.SetAllocation(ctx, leave.LeaveQuota{EmployeeID: empID, LeaveTypeID: typeID, Year: 2026, AllocatedDays: 4})
	require.NoError(t, err)

	list, err := repo.ListByEmployeeYear(ctx, empID, 2026)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 4.0, list[0].AllocatedDays)
}

func TestLeaveQuota_RollsBackWithTransaction(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveQuotaRepository(db)
	empID := createEmployee(t, db, "Rollback", nil)
	typeID := createLeaveType(t, db, "Annual", true)

	quota, err := repo.Create(ctx, leave.LeaveQuota{EmployeeID: empID, LeaveTypeID: typeID, Year: 2025, AllocatedDays: 5})
	require.NoError(t, err)

	err = postgresql.Transactor(db)(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.AddPending(ctx, quota.ID, 2))
		return leave.ErrOverlappingLeave
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	got, err := repo.GetByEmployeeTypeYear(ctx, empID, typeID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.PendingDays)
}

func TestHolidayRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewHolidayRepository(db)

	created, err := repo.Create(ctx, holiday.Holiday{Date: day(1), Name: "New Year"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, holiday.Holiday{Date: day(1), Name: "Again"})
	assert.ErrorIs(t, err, holiday.ErrHolidayExists)

	h, err := repo.GetByDate(ctx, day(1))
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "New Year", h.Name)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), holiday.ErrHolidayNotFound)
}

func TestOvertimeRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewOvertimeRepository(db)
	empID := createEmployee(t, db, "Worker", nil)

	created, err := repo.Create(ctx, overtime.Overtime{
		EmployeeID: empID, Date: day(4), TimeFrom: "09:00", TimeTo: "13:30",
		HoursWorked: 4.5, Type: overtime.TypeWeekend, Status: overtime.StatusPending,
	})
	require.NoError(t, err)

	exists, err := repo.ExistsForEmployeeAndDate(ctx, empID, day(4))
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, overtime.StatusApproved, "admin", time.Now().UTC(), nil))
	err = repo.UpdateStatus(ctx, created.ID, overtime.StatusRejected, "admin", time.Now().UTC(), nil)
	assert.ErrorIs(t, err, overtime.ErrOvertimeAlreadyProcessed)

	list, err := repo.ListApprovedByEmployeeAndRange(ctx, empID, day(1), day(31))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "09:00", list[0].TimeFrom)
	assert.Equal(t, "13:30", list[0].TimeTo)
	assert.Equal(t, 4.5, list[0].HoursWorked)
}

func TestSettingsRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewSettingsRepository(db)

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, company.ErrSettingsNotFound)

	first, err := repo.Upsert(ctx, company.Settings{
		WeekendDays: []string{"saturday", "sunday"}, MarkFromTime: "07:00",
		WorkStartTime: "09:00", WorkEndTime: "17:30", Timezone: "UTC",
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, company.Settings{
		WeekendDays: []string{"friday"}, MarkFromTime: "06:30",
		WorkStartTime: "08:00", WorkEndTime: "16:00", Timezone: "UTC",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []string{"friday"}, second.WeekendDays)
	assert.Equal(t, "06:30", second.MarkFromTime)
}

func TestLeaveTypeRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveTypeRepository(db)

	code := "UNPAID"
	created, err := repo.Create(ctx, leave.LeaveType{Name: "Unpaid Leave", Code: &code, IsPaid: false, IsActive: true})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.Create(ctx, leave.LeaveType{Name: "Retired Leave", IsPaid: true, IsActive: false})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Code)
	assert.Equal(t, "UNPAID", *got.Code)

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
