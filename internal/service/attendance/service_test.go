package attendance

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clock is a settable wall clock for the service under test.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func setup(t *testing.T, loc *time.Location) (*AttendanceServiceImpl, *clock, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.PutSettings(company.Settings{
		WeekendDays:   []string{"Saturday", "Sunday"},
		MarkFromTime:  "07:00",
		WorkStartTime: "09:30",
		WorkEndTime:   "19:00",
	})
	store.PutEmployee(employee.Employee{ID: "emp-1", FullName: "Test Employee", IsActive: true})

	svc := NewAttendanceService(
		memory.NewAttendanceRepository(store),
		memory.NewEmployeeRepository(store),
		memory.NewSettingsRepository(store),
		loc,
	).(*AttendanceServiceImpl)

	c := &clock{}
	svc.now = c.Now
	return svc, c, store
}

func TestAttendanceService_ClockInAndOut(t *testing.T) {
	ctx := context.Background()
	svc, c, _ := setup(t, time.UTC)

	c.t = time.Date(2025, time.January, 2, 9, 30, 0, 0, time.UTC)
	in, err := svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.January, Day: 2}, in.Date)
	assert.Equal(t, attendance.StatusPresent, in.Status)
	assert.Nil(t, in.ClockOut)
	assert.Nil(t, in.HoursWorked)

	_, err = svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	c.t = time.Date(2025, time.January, 2, 18, 0, 0, 0, time.UTC)
	out, err := svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	require.NotNil(t, out.HoursWorked)
	assert.Equal(t, 8.5, *out.HoursWorked)

	_, err = svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)

	list, err := svc.ListMyAttendance(ctx, attendance.ListMyAttendanceRequest{EmployeeID: "emp-1", Month: 1, Year: 2025})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].ClockOut)
}

func TestAttendanceService_ClockIn_TooEarly(t *testing.T) {
	svc, c, _ := setup(t, time.UTC)
	c.t = time.Date(2025, time.January, 2, 6, 59, 0, 0, time.UTC)

	_, err := svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrTooEarlyToClockIn)
}

func TestAttendanceService_ClockIn_UsesLocalCalendar(t *testing.T) {
	svc, c, _ := setup(t, time.FixedZone("WIB", 7*60*60))
	// 01:30 UTC is 08:30 at UTC+7 on the same calendar day.
	c.t = time.Date(2025, time.January, 2, 1, 30, 0, 0, time.UTC)

	in, err := svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.January, Day: 2}, in.Date)

	// 20:00 UTC on Jan 1 is already Jan 2 03:00 at UTC+7, before mark-from time.
	c.t = time.Date(2025, time.January, 1, 20, 0, 0, 0, time.UTC)
	_, err = svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrTooEarlyToClockIn)
}

func TestAttendanceService_ClockOut_WithoutClockIn(t *testing.T) {
	svc, c, _ := setup(t, time.UTC)
	c.t = time.Date(2025, time.January, 2, 18, 0, 0, 0, time.UTC)

	_, err := svc.ClockOut(context.Background(), attendance.ClockOutRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestAttendanceService_ClockOut_BeforeClockIn(t *testing.T) {
	svc, c, store := setup(t, time.UTC)
	d := civil.Date{Year: 2025, Month: time.January, Day: 2}
	clockIn := time.Date(2025, time.January, 2, 12, 0, 0, 0, time.UTC)
	store.PutAttendance(attendance.Attendance{EmployeeID: "emp-1", Date: d, ClockIn: &clockIn, Status: attendance.StatusPresent})

	c.t = time.Date(2025, time.January, 2, 11, 0, 0, 0, time.UTC)
	_, err := svc.ClockOut(context.Background(), attendance.ClockOutRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrClockOutBeforeClockIn)
}

func TestAttendanceService_UnknownEmployee(t *testing.T) {
	svc, c, _ := setup(t, time.UTC)
	c.t = time.Date(2025, time.January, 2, 9, 0, 0, 0, time.UTC)

	_, err := svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "ghost"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceService_MissingSettings(t *testing.T) {
	store := memory.NewStore()
	store.PutEmployee(employee.Employee{ID: "emp-1", IsActive: true})
	svc := NewAttendanceService(
		memory.NewAttendanceRepository(store),
		memory.NewEmployeeRepository(store),
		memory.NewSettingsRepository(store),
		nil,
	)

	_, err := svc.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, company.ErrSettingsNotFound)
}

func TestAttendanceService_ListMyAttendance_Validation(t *testing.T) {
	svc, _, _ := setup(t, time.UTC)

	_, err := svc.ListMyAttendance(context.Background(), attendance.ListMyAttendanceRequest{EmployeeID: "emp-1", Month: 0, Year: 2025})
	assert.Error(t, err)
}

func TestAttendanceService_ClockOut_AfterMidnight(t *testing.T) {
	ctx := context.Background()
	svc, c, _ := setup(t, time.UTC)

	c.t = time.Date(2025, time.January, 2, 20, 0, 0, 0, time.UTC)
	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	c.t = time.Date(2025, time.January, 3, 0, 30, 0, 0, time.UTC)
	out, err := svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.January, Day: 2}, out.Date)
	require.NotNil(t, out.HoursWorked)
	assert.Equal(t, 4.5, *out.HoursWorked)

	_, err = svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestAttendanceService_ClockOut_StaleOpenRecord(t *testing.T) {
	ctx := context.Background()
	svc, c, _ := setup(t, time.UTC)

	c.t = time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	c.t = time.Date(2025, time.January, 7, 10, 0, 0, 0, time.UTC)
	_, err = svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrShiftTooLong)

	// The forgotten day stays open while the new day proceeds normally.
	in, err := svc.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.January, Day: 7}, in.Date)

	c.t = time.Date(2025, time.January, 7, 18, 0, 0, 0, time.UTC)
	out, err := svc.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.January, Day: 7}, out.Date)
}
