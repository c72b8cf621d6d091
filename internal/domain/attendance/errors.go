package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn       = errors.New("attendance record already exists for this employee and date")
	ErrNotCheckedIn           = errors.New("employee has not checked in today")
	ErrAlreadyCheckedOut      = errors.New("employee has already checked out")
	ErrCheckOutBeforeCheckIn  = errors.New("clock-out cannot be earlier than clock-in")
	ErrClockOutWithoutClockIn = errors.New("clock-out requires a clock-in")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
