package employee

import "context"

// EmployeeRepository - read access to the employees table
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// ListActive returns active, non-deleted employees ordered by full name.
	ListActive(ctx context.Context) ([]Employee, error)
}
