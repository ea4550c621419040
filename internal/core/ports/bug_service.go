package ports

import (
	"context"
	"time"

	"github.com/devtrack/bug-tracking-system/internal/core/domain"
)

// EmployeeSummary is the embedded reporter/assignee view on bug reads.
// Credentials and timestamps are deliberately omitted.
type EmployeeSummary struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Role      string
}

// BugDetail is the full bug view returned on reads, with reporter and
// assignee resolved to summaries.
type BugDetail struct {
	ID             int64
	Name           string
	Description    string
	ReportedByID   int64
	ReportedBy     *EmployeeSummary
	Status         domain.BugStatus
	AssignedToID   *int64
	AssignedTo     *EmployeeSummary
	ReportedAt     time.Time
	AssignedAt     *time.Time
	LastModifiedAt time.Time
	IsModifiable   bool
}

// BugInput is the caller-submitted desired state of a bug. It mirrors the
// mutable surface of domain.Bug; the engine decides which fields, if any,
// take effect.
type BugInput struct {
	ID           int64
	Name         string
	Description  string
	ReportedByID int64
	Status       domain.BugStatus
	AssignedToID *int64
	IsModifiable bool
}

// BugService defines the use-case operations for bugs. Every write is gated
// by the authorization engine; reads only require an authenticated caller.
type BugService interface {
	ListBugs(ctx context.Context, caller domain.Caller) ([]BugDetail, error)
	GetBug(ctx context.Context, caller domain.Caller, id int64) (*BugDetail, error)
	CreateBug(ctx context.Context, caller domain.Caller, in BugInput) (*BugDetail, error)
	// UpdateBug applies the engine's decision for (caller, stored, in).
	// in.ID must match id or domain.ErrIDMismatch is returned before any load.
	UpdateBug(ctx context.Context, caller domain.Caller, id int64, in BugInput) error
	DeleteBug(ctx context.Context, caller domain.Caller, id int64) error
}
