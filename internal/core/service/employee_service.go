package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/devtrack/bug-tracking-system/internal/api/metrics"
	"github.com/devtrack/bug-tracking-system/internal/core/domain"
	"github.com/devtrack/bug-tracking-system/internal/core/ports"
)

// Locker serializes critical sections across API instances. Acquire blocks
// until the named lock is held or ctx expires, and returns a release func.
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (func(), error)
}

// employeeDeleteLock guards the count-then-delete window on employee
// deletion: without it two concurrent deletes of the two remaining
// administrators could both pass the count check.
const (
	employeeDeleteLock    = "employees:delete"
	employeeDeleteLockTTL = 10 * time.Second
)

// EmployeeService implements the Administrator-only account operations.
// Role gating happens in the transport layer; the standing invariants are
// enforced here so no caller can bypass them.
type EmployeeService struct {
	employees ports.EmployeeRepository
	bugs      ports.BugRepository
	locker    Locker
	logger    zerolog.Logger
}

func NewEmployeeService(employees ports.EmployeeRepository, bugs ports.BugRepository, locker Locker, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{employees: employees, bugs: bugs, locker: locker, logger: logger}
}

func (s *EmployeeService) ListEmployees(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.employees.FindByID(ctx, id)
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, in ports.EmployeeInput) (*domain.Employee, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.employees.Create(ctx, &domain.Employee{
		Username:     in.Username,
		PasswordHash: string(hash),
		Email:        in.Email,
		Role:         in.Role,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("employee_id", created.ID).Str("role", created.Role).Msg("employee created")
	return created, nil
}

// UpdateEmployee overwrites the account fields. The stored password digest is
// kept unless a new password is supplied.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id int64, in ports.EmployeeInput) error {
	if in.ID != id {
		return domain.ErrIDMismatch
	}

	existing, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return err
	}

	existing.Username = in.Username
	existing.Email = in.Email
	existing.Role = in.Role
	existing.FirstName = in.FirstName
	existing.LastName = in.LastName
	existing.UpdatedAt = time.Now().UTC()

	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		existing.PasswordHash = string(hash)
	}

	return s.employees.Update(ctx, existing)
}

// DeleteEmployee removes an account unless a standing invariant forbids it:
// the last Administrator must never be deleted, and accounts referenced by
// bugs are protected by referential restrict. The whole check-then-delete
// runs under a cross-instance lock so concurrent deletes serialize.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id int64) error {
	release, err := s.locker.Acquire(ctx, employeeDeleteLock, employeeDeleteLockTTL)
	if err != nil {
		return err
	}
	defer release()

	existing, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.Role == domain.RoleAdministrator {
		admins, err := s.employees.CountByRole(ctx, domain.RoleAdministrator)
		if err != nil {
			return err
		}
		if admins <= 1 {
			metrics.EmployeeDeletesRefusedTotal.WithLabelValues("last_administrator").Inc()
			return domain.ErrLastAdministrator
		}
	}

	referenced, err := s.bugs.CountByEmployee(ctx, id)
	if err != nil {
		return err
	}
	if referenced > 0 {
		metrics.EmployeeDeletesRefusedTotal.WithLabelValues("referenced_by_bugs").Inc()
		return domain.ErrEmployeeReferenced
	}

	if err := s.employees.Delete(ctx, id); err != nil {
		// The record may vanish between the find and the delete even under
		// the lock if another path removes employees; surface not-found.
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return domain.ErrEmployeeNotFound
		}
		return err
	}

	s.logger.Info().Int64("employee_id", id).Str("role", existing.Role).Msg("employee deleted")
	return nil
}
