package attendance

import (
	"time"
)

type Attendance struct {
	ID              string
	EmployeeID      string
	Date            time.Time
	Status          Status
	ClockIn         *time.Time
	ClockOut        *time.Time
	WorkMinutes     *int
	OvertimeMinutes *int
	Remarks         *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
}

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
	StatusHalfDay Status = "half-day"
)

// ValidStatuses lists every accepted attendance status value.
var ValidStatuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusLeave),
	string(StatusHalfDay),
}
