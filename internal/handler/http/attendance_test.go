package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/staffhub-id/attendance-backend-go/internal/domain/attendance"
	"github.com/staffhub-id/attendance-backend-go/internal/domain/employee"
	"github.com/staffhub-id/attendance-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "handler-test-secret"

// stubAttendanceService lets each test script the service layer per call.
type stubAttendanceService struct {
	checkInFunc    func(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error)
	checkOutFunc   func(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error)
	createFunc     func(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error)
	getFunc        func(ctx context.Context, id string) (attendance.AttendanceResponse, error)
	listFunc       func(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error)
	updateFunc     func(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error)
	deleteFunc     func(ctx context.Context, id string) error
	bulkDeleteFunc func(ctx context.Context, req attendance.BulkDeleteRequest) (attendance.BulkDeleteResponse, error)
}

func (s *stubAttendanceService) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	return s.checkInFunc(ctx, req)
}

func (s *stubAttendanceService) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	return s.checkOutFunc(ctx, req)
}

func (s *stubAttendanceService) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	return s.createFunc(ctx, req)
}

func (s *stubAttendanceService) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	return s.getFunc(ctx, id)
}

func (s *stubAttendanceService) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return s.listFunc(ctx, filter)
}

func (s *stubAttendanceService) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	return s.updateFunc(ctx, req)
}

func (s *stubAttendanceService) DeleteAttendance(ctx context.Context, id string) error {
	return s.deleteFunc(ctx, id)
}

func (s *stubAttendanceService) BulkDeleteAttendance(ctx context.Context, req attendance.BulkDeleteRequest) (attendance.BulkDeleteResponse, error) {
	return s.bulkDeleteFunc(ctx, req)
}

type stubEmployeeService struct{}

func (s *stubEmployeeService) GetEmployee(_ context.Context, _ string) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeService) ListEmployees(_ context.Context, _ employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	return employee.ListEmployeeResponse{}, nil
}

func newTestRouter(t *testing.T, svc attendance.AttendanceService) (http.Handler, string) {
	t.Helper()

	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	token, _, err := jwtService.GenerateAccessToken(uuid.New().String(), "admin@staffhub.id", "admin")
	require.NoError(t, err)

	router := NewRouter(
		jwtService,
		NewAttendanceHandler(svc),
		NewEmployeeHandler(&stubEmployeeService{}),
		"http://localhost:3000",
	)
	return router, token
}

func doRequest(t *testing.T, router http.Handler, token, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestCheckInHandler(t *testing.T) {
	employeeID := uuid.New().String()
	svc := &stubAttendanceService{
		checkInFunc: func(_ context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
			assert.Equal(t, employeeID, req.EmployeeID)
			return attendance.AttendanceResponse{
				ID:            uuid.New().String(),
				EmployeeID:    req.EmployeeID,
				Date:          "2024-03-11",
				Status:        "present",
				TotalHours:    "-",
				OvertimeHours: "-",
			}, nil
		},
	}
	router, token := newTestRouter(t, svc)

	rec := doRequest(t, router, token, http.MethodPost, "/api/v1/attendance/check-in", map[string]string{
		"employee_id": employeeID,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["success"])
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, employeeID, data["employee_id"])
	assert.Equal(t, "-", data["total_hours"])
}

func TestCheckInHandler_Duplicate(t *testing.T) {
	svc := &stubAttendanceService{
		checkInFunc: func(_ context.Context, _ attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		},
	}
	router, token := newTestRouter(t, svc)

	rec := doRequest(t, router, token, http.MethodPost, "/api/v1/attendance/check-in", map[string]string{
		"employee_id": uuid.New().String(),
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope["success"])
}

func TestCheckInHandler_MissingEmployeeID(t *testing.T) {
	svc := &stubAttendanceService{
		checkInFunc: func(_ context.Context, _ attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
			t.Fatal("service should not be called for an invalid request")
			return attendance.AttendanceResponse{}, nil
		},
	}
	router, token := newTestRouter(t, svc)

	rec := doRequest(t, router, token, http.MethodPost, "/api/v1/attendance/check-in", map[string]string{})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCheckOutHandler_NotCheckedIn(t *testing.T) {
	svc := &stubAttendanceService{
		checkOutFunc: func(_ context.Context, _ attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		},
	}
	router, token := newTestRouter(t, svc)

	rec := doRequest(t, router, token, http.MethodPost, "/api/v1/attendance/check-out", map[string]string{
		"employee_id": uuid.New().String(),
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetAttendanceHandler_NotFound(t *testing.T) {
	svc := &stubAttendanceService{
		getFunc: func(_ context.Context, _ string) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		},
	}
	router, token := newTestRouter(t, svc)

	rec := doRequest(t, router, token, http.MethodGet, "/api/v1/attendance/"+uuid.New().String(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAttendanceHandler_ParsesFilters(t *testing.T) {
	var captured attendance.AttendanceFilter
	svc := &stubAttendanceService{
		listFunc: func(_ context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
			captured = filter
			return attendance.ListAttendanceResponse{Showing: "0 of 0", Attendances: []attendance.AttendanceResponse{}}, nil
		},
	}
	router, token := newTestRouter(t, svc)

	rec := doRequest(t, router, token, http.MethodGet,
		"/api/v1/attendance?status=present&start_date=2024-03-01&end_date=2024-03-31&page=2&limit=10&sort_by=date&sort_order=asc", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured.Status)
	assert.Equal(t, "present", *captured.Status)
	require.NotNil(t, captured.StartDate)
	assert.Equal(t, "2024-03-01", *captured.StartDate)
	assert.Equal(t, 2, captured.Page)
	assert.Equal(t, 10, captured.Limit)
	assert.Equal(t, "date", captured.SortBy)
	assert.Equal(t, "asc", captured.SortOrder)
}

func TestBulkDeleteHandler(t *testing.T) {
	ids := []string{uuid.New().String(), uuid.New().String()}
	svc := &stubAttendanceService{
		bulkDeleteFunc: func(_ context.Context, req attendance.BulkDeleteRequest) (attendance.BulkDeleteResponse, error) {
			return attendance.BulkDeleteResponse{
				Deleted:  req.IDs[:1],
				NotFound: req.IDs[1:],
			}, nil
		},
	}
	router, token := newTestRouter(t, svc)

	rec := doRequest(t, router, token, http.MethodPost, "/api/v1/attendance/bulk-delete", map[string]interface{}{
		"ids": ids,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	assert.Len(t, data["deleted"], 1)
	assert.Len(t, data["not_found"], 1)
}

func TestBulkDeleteHandler_InvalidIDs(t *testing.T) {
	svc := &stubAttendanceService{
		bulkDeleteFunc: func(_ context.Context, _ attendance.BulkDeleteRequest) (attendance.BulkDeleteResponse, error) {
			t.Fatal("service should not be called for an invalid request")
			return attendance.BulkDeleteResponse{}, nil
		},
	}
	router, token := newTestRouter(t, svc)

	rec := doRequest(t, router, token, http.MethodPost, "/api/v1/attendance/bulk-delete", map[string]interface{}{
		"ids": []string{"not-a-uuid"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAttendanceRoutes_RequireAuth(t *testing.T) {
	svc := &stubAttendanceService{}
	router, _ := newTestRouter(t, svc)

	rec := doRequest(t, router, "", http.MethodGet, "/api/v1/attendance", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
