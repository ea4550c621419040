package ports

import (
	"context"

	"github.com/devtrack/bug-tracking-system/internal/core/domain"
)

// EmployeeRepository defines persistence operations for employee accounts.
type EmployeeRepository interface {
	// FindByID returns the employee or domain.ErrEmployeeNotFound.
	FindByID(ctx context.Context, id int64) (*domain.Employee, error)
	// FindByUsername returns the employee or domain.ErrEmployeeNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.Employee, error)
	// List returns all employees in id order.
	List(ctx context.Context) ([]*domain.Employee, error)
	// Create allocates a new id and inserts the employee. A duplicate
	// username yields domain.ErrUsernameTaken.
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	// Update persists e, returning domain.ErrEmployeeNotFound if it vanished.
	Update(ctx context.Context, e *domain.Employee) error
	// Delete removes the employee or returns domain.ErrEmployeeNotFound.
	Delete(ctx context.Context, id int64) error
	// CountByRole counts employees holding the given role.
	CountByRole(ctx context.Context, role string) (int64, error)
}
