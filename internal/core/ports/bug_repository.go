package ports

import (
	"context"

	"github.com/devtrack/bug-tracking-system/internal/core/domain"
)

// BugRepository defines persistence operations for bugs.
type BugRepository interface {
	// FindByID returns the bug or domain.ErrBugNotFound.
	FindByID(ctx context.Context, id int64) (*domain.Bug, error)
	// List returns all bugs in id order (the surface is un-paginated).
	List(ctx context.Context) ([]*domain.Bug, error)
	// Create allocates a new id and inserts the bug, returning the stored record.
	Create(ctx context.Context, b *domain.Bug) (*domain.Bug, error)
	// Update persists b guarded by its Version field. A stale version yields
	// domain.ErrConflict; the caller decides between not-found and conflict
	// by re-checking existence.
	Update(ctx context.Context, b *domain.Bug) error
	// Delete removes the bug or returns domain.ErrBugNotFound.
	Delete(ctx context.Context, id int64) error
	// CountByEmployee counts bugs referencing the employee as reporter or
	// assignee. Used to enforce referential restrict on employee deletion.
	CountByEmployee(ctx context.Context, employeeID int64) (int64, error)
}
