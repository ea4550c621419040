package ports

import (
	"context"

	"github.com/devtrack/bug-tracking-system/internal/core/domain"
)

// EmployeeInput carries the caller-submitted state of an employee account.
// Password is plaintext on the wire and hashed by the service before it ever
// reaches storage; an empty Password on update keeps the stored digest.
type EmployeeInput struct {
	ID        int64
	Username  string
	Password  string
	Email     string
	Role      string
	FirstName string
	LastName  string
}

// EmployeeService defines the Administrator-only account operations. Role
// gating happens at the transport layer; the service enforces the standing
// invariants (last Administrator, referential restrict) on delete.
type EmployeeService interface {
	ListEmployees(ctx context.Context) ([]*domain.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
	CreateEmployee(ctx context.Context, in EmployeeInput) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, in EmployeeInput) error
	DeleteEmployee(ctx context.Context, id int64) error
}
