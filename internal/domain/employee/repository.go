package employee

import (
	"context"
)

// EmployeeRepository defines data access methods for employees.
type EmployeeRepository interface {
	// GetByID retrieves an employee by ID. Returns ErrEmployeeNotFound when
	// no employee exists.
	GetByID(ctx context.Context, id string) (Employee, error)

	// List retrieves employees with search and pagination
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
}
