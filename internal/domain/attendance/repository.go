package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new attendance record. The unique constraint on
	// (employee_id, date) is the canonical duplicate signal: a violation is
	// returned as ErrAlreadyCheckedIn, never pre-checked with a read.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves an attendance record by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for an employee on a specific
	// work day. Returns ErrAttendanceNotFound when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// Update persists changed fields of an existing attendance record
	Update(ctx context.Context, attendance Attendance) error

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// Delete hard-deletes a single record
	Delete(ctx context.Context, id string) error

	// DeleteMany hard-deletes all given ids in one statement and returns the
	// ids that were actually removed.
	DeleteMany(ctx context.Context, ids []string) ([]string, error)
}
