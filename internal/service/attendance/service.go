package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/staffhub-id/attendance-backend-go/internal/domain/attendance"
	"github.com/staffhub-id/attendance-backend-go/internal/domain/employee"
	"github.com/staffhub-id/attendance-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	employee.EmployeeRepository
	cutoff Cutoff
	loc    *time.Location
}

// nopTransactor runs fn directly, for wirings without a store-level transactor.
type nopTransactor struct{}

func (nopTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// timePtrToString renders a stored timestamp in the service timezone,
// RFC3339 so the offset always travels with the value.
func (a *AttendanceServiceImpl) timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(a.loc).Format(time.RFC3339)
	return &formatted
}

// workDay reduces a timestamp to the date-only work day it belongs to,
// interpreted in the service timezone.
func (a *AttendanceServiceImpl) workDay(t time.Time) time.Time {
	local := t.In(a.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// resolveClock turns a request clock value into a concrete timestamp. An
// RFC3339 value is taken as-is; a bare HH:MM[:SS] is combined with the
// record's stored work day in the service timezone, so the date component is
// never re-derived from the caller's clock.
func (a *AttendanceServiceImpl) resolveClock(value string, date time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	layout := "15:04:05"
	tod, err := time.Parse(layout, value)
	if err != nil {
		layout = "15:04"
		tod, err = time.Parse(layout, value)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock value %q", value)
	}

	combined := time.Date(
		date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0,
		a.loc,
	)
	return combined.UTC(), nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	inTime := time.Now().UTC()
	if req.InTime != nil && *req.InTime != "" {
		parsed, err := time.Parse(time.RFC3339, *req.InTime)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("invalid in_time: %w", err)
		}
		inTime = parsed.UTC()
	}

	data := attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       a.workDay(inTime),
		Status:     attendance.StatusPresent,
		ClockIn:    &inTime,
	}

	// No pre-read here: the unique constraint on (employee_id, date) decides
	// the race, and the repository reports a violation as ErrAlreadyCheckedIn.
	created, err := a.AttendanceRepository.Create(ctx, data)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return a.refetch(ctx, created.ID)
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	outTime := time.Now().UTC()
	if req.OutTime != nil && *req.OutTime != "" {
		parsed, err := time.Parse(time.RFC3339, *req.OutTime)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("invalid out_time: %w", err)
		}
		outTime = parsed.UTC()
	}

	// The read and the write run in one transaction so a concurrent check-out
	// cannot slip between them.
	var updatedID string
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		att, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, a.workDay(outTime))
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrNotCheckedIn
			}
			return fmt.Errorf("failed to get attendance record: %w", err)
		}

		if att.ClockIn == nil {
			return attendance.ErrNotCheckedIn
		}
		if att.ClockOut != nil {
			return attendance.ErrAlreadyCheckedOut
		}
		if outTime.Before(*att.ClockIn) {
			return attendance.ErrCheckOutBeforeCheckIn
		}

		workMinutes, overtimeMinutes, _ := computeMinutes(*att.ClockIn, outTime, a.cutoff, a.loc)

		att.ClockOut = &outTime
		att.WorkMinutes = &workMinutes
		att.OvertimeMinutes = &overtimeMinutes

		if err := a.AttendanceRepository.Update(ctx, att); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		updatedID = att.ID
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.refetch(ctx, updatedID)
}

// CreateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("invalid date: %w", err)
	}

	data := attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     attendance.Status(req.Status),
		Remarks:    req.Remarks,
	}

	if req.ClockIn != nil && *req.ClockIn != "" {
		clockIn, err := a.resolveClock(*req.ClockIn, date)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		data.ClockIn = &clockIn
	}
	if req.ClockOut != nil && *req.ClockOut != "" {
		clockOut, err := a.resolveClock(*req.ClockOut, date)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		data.ClockOut = &clockOut
	}

	if data.ClockIn != nil && data.ClockOut != nil {
		workMinutes, overtimeMinutes, ok := computeMinutes(*data.ClockIn, *data.ClockOut, a.cutoff, a.loc)
		if !ok {
			return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeCheckIn
		}
		data.WorkMinutes = &workMinutes
		data.OvertimeMinutes = &overtimeMinutes
	}

	created, err := a.AttendanceRepository.Create(ctx, data)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return a.refetch(ctx, created.ID)
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a.mapAttendanceToResponse(att), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	attendances, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	// Map to response
	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, a.mapAttendanceToResponse(att))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	start := (filter.Page-1)*filter.Limit + 1
	end := min(filter.Page*filter.Limit, int(total))
	showing := fmt.Sprintf("%d-%d of %d", start, end, total)
	if total == 0 || start > int(total) {
		// Empty result set or a page past the last one
		showing = fmt.Sprintf("0 of %d", total)
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// UpdateAttendance implements attendance.AttendanceService.
// This allows managers/owners to fix attendance data like wrong clock times.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		att, err := a.AttendanceRepository.GetByID(ctx, req.ID)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrAttendanceNotFound
			}
			return fmt.Errorf("failed to get attendance: %w", err)
		}

		if req.Status != nil && *req.Status != "" {
			att.Status = attendance.Status(*req.Status)
		}

		if req.ClockInTime != nil && *req.ClockInTime != "" {
			clockIn, err := a.resolveClock(*req.ClockInTime, att.Date)
			if err != nil {
				return err
			}
			att.ClockIn = &clockIn
		}

		if req.ClockOutTime != nil && *req.ClockOutTime != "" {
			clockOut, err := a.resolveClock(*req.ClockOutTime, att.Date)
			if err != nil {
				return err
			}
			att.ClockOut = &clockOut
		}

		if req.Remarks != nil {
			att.Remarks = req.Remarks
		}

		// The merged record must still honor the clock pairing rule: a lone
		// clock-out never reaches the store.
		if att.ClockOut != nil && att.ClockIn == nil {
			return attendance.ErrClockOutWithoutClockIn
		}

		// Recompute derived minutes whenever a full clock pair is present
		if att.ClockIn != nil && att.ClockOut != nil {
			workMinutes, overtimeMinutes, ok := computeMinutes(*att.ClockIn, *att.ClockOut, a.cutoff, a.loc)
			if !ok {
				return attendance.ErrCheckOutBeforeCheckIn
			}
			att.WorkMinutes = &workMinutes
			att.OvertimeMinutes = &overtimeMinutes
		}

		if err := a.AttendanceRepository.Update(ctx, att); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.refetch(ctx, req.ID)
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if err := a.AttendanceRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	return nil
}

// BulkDeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BulkDeleteAttendance(ctx context.Context, req attendance.BulkDeleteRequest) (attendance.BulkDeleteResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BulkDeleteResponse{}, err
	}

	deleted, err := a.AttendanceRepository.DeleteMany(ctx, req.IDs)
	if err != nil {
		return attendance.BulkDeleteResponse{}, fmt.Errorf("failed to bulk delete attendances: %w", err)
	}

	deletedSet := make(map[string]bool, len(deleted))
	for _, id := range deleted {
		deletedSet[id] = true
	}

	notFound := make([]string, 0)
	for _, id := range req.IDs {
		if !deletedSet[id] {
			notFound = append(notFound, id)
		}
	}

	return attendance.BulkDeleteResponse{
		Deleted:  deleted,
		NotFound: notFound,
	}, nil
}

// refetch re-reads a record after a mutation so responses always reflect the
// stored state (mutate -> refetch -> new state), never a locally patched copy.
func (a *AttendanceServiceImpl) refetch(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get updated attendance: %w", err)
	}
	return a.mapAttendanceToResponse(att), nil
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse.
// Stored minute values are authoritative; metrics are derived from the raw
// timestamps only when the store carries none.
func (a *AttendanceServiceImpl) mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	var employeeName string
	if att.EmployeeName != nil {
		employeeName = *att.EmployeeName
	}

	total, overtime := ComputeHours(att.ClockIn, att.ClockOut, a.cutoff, a.loc)
	if att.WorkMinutes != nil {
		total = FormatMinutes(*att.WorkMinutes)
	}
	if att.OvertimeMinutes != nil {
		overtime = FormatMinutes(*att.OvertimeMinutes)
	}

	return attendance.AttendanceResponse{
		ID:            att.ID,
		EmployeeID:    att.EmployeeID,
		EmployeeName:  employeeName,
		EmployeeCode:  att.EmployeeCode,
		Date:          att.Date.Format("2006-01-02"),
		Status:        string(att.Status),
		ClockInTime:   a.timePtrToString(att.ClockIn),
		ClockOutTime:  a.timePtrToString(att.ClockOut),
		TotalHours:    total,
		OvertimeHours: overtime,
		Remarks:       att.Remarks,
		CreatedAt:     att.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     att.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	cutoff Cutoff,
	loc *time.Location,
) attendance.AttendanceService {
	if tx == nil {
		tx = nopTransactor{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		cutoff:               cutoff,
		loc:                  loc,
	}
}
