package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in errors
	ErrAlreadyClockedIn  = errors.New("you have already clocked in today")
	ErrTooEarlyToClockIn = errors.New("too early to clock in")

	// Clock-out errors
	ErrNotClockedIn          = errors.New("you have not clocked in yet")
	ErrAlreadyClockedOut     = errors.New("you have already clocked out")
	ErrClockOutBeforeClockIn = errors.New("clock-out time is before clock-in time")
	ErrShiftTooLong          = errors.New("open attendance is older than the longest allowed shift")

	ErrAttendanceNotFound = errors.New("attendance record not found")
)
