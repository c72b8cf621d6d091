package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn creates today's attendance record for an employee
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes the open check-in for an employee
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// CreateAttendance creates a manual attendance record (admin)
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// UpdateAttendance applies a partial update (status, times, remarks)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// DeleteAttendance hard-deletes an attendance record
	DeleteAttendance(ctx context.Context, id string) error

	// BulkDeleteAttendance deletes a set of records in one call and reports
	// the outcome per id.
	BulkDeleteAttendance(ctx context.Context, req BulkDeleteRequest) (BulkDeleteResponse, error)
}
