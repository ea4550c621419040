package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/devtrack/bug-tracking-system/internal/api/metrics"
	"github.com/devtrack/bug-tracking-system/internal/core/domain"
	"github.com/devtrack/bug-tracking-system/internal/core/ports"
)

// BugService orchestrates bug reads and engine-gated writes.
type BugService struct {
	bugs      ports.BugRepository
	employees ports.EmployeeRepository
	// unassignResetsStatus toggles whether a programmer's self-unassignment
	// resets the status to New (configurable; the behavior is not fixed).
	unassignResetsStatus bool
	logger               zerolog.Logger
}

func NewBugService(bugs ports.BugRepository, employees ports.EmployeeRepository, unassignResetsStatus bool, logger zerolog.Logger) *BugService {
	return &BugService{
		bugs:                 bugs,
		employees:            employees,
		unassignResetsStatus: unassignResetsStatus,
		logger:               logger,
	}
}

// ListBugs returns every bug with reporter and assignee summaries embedded.
// All authenticated roles see all bugs; no server-side filtering.
func (s *BugService) ListBugs(ctx context.Context, _ domain.Caller) ([]ports.BugDetail, error) {
	bugs, err := s.bugs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bugs: %w", err)
	}

	cache := map[int64]*ports.EmployeeSummary{}
	details := make([]ports.BugDetail, 0, len(bugs))
	for _, b := range bugs {
		d, err := s.detail(ctx, b, cache)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

func (s *BugService) GetBug(ctx context.Context, _ domain.Caller, id int64) (*ports.BugDetail, error) {
	b, err := s.bugs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, b, map[int64]*ports.EmployeeSummary{})
}

// CreateBug runs the engine's create decision and persists the result.
func (s *BugService) CreateBug(ctx context.Context, caller domain.Caller, in ports.BugInput) (*ports.BugDetail, error) {
	decided, err := domain.DecideCreate(caller, toBug(in), time.Now().UTC())
	if err != nil {
		metrics.BugWritesDeniedTotal.WithLabelValues(caller.Role, "create").Inc()
		return nil, err
	}

	created, err := s.bugs.Create(ctx, &decided)
	if err != nil {
		s.logger.Error().Err(err).Int64("reported_by", caller.ID).Msg("failed to create bug")
		return nil, err
	}

	metrics.BugsCreatedTotal.Inc()
	s.logger.Info().Int64("bug_id", created.ID).Int64("reported_by", caller.ID).Msg("bug reported")

	return s.detail(ctx, created, map[int64]*ports.EmployeeSummary{})
}

// UpdateBug loads the stored bug, asks the engine for a decision, and
// persists the outcome under optimistic concurrency. On a version conflict
// the record's existence is re-checked: gone means not-found, still present
// means the conflict propagates for the caller to reload and retry.
func (s *BugService) UpdateBug(ctx context.Context, caller domain.Caller, id int64, in ports.BugInput) error {
	if in.ID != id {
		return domain.ErrIDMismatch
	}

	existing, err := s.bugs.FindByID(ctx, id)
	if err != nil {
		return err
	}

	next, err := domain.DecideUpdate(caller, *existing, toBug(in), time.Now().UTC(), s.unassignResetsStatus)
	if err != nil {
		metrics.BugWritesDeniedTotal.WithLabelValues(caller.Role, "update").Inc()
		return err
	}

	if err := s.bugs.Update(ctx, &next); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			if _, findErr := s.bugs.FindByID(ctx, id); errors.Is(findErr, domain.ErrBugNotFound) {
				return domain.ErrBugNotFound
			}
			metrics.BugUpdateConflictsTotal.Inc()
			return domain.ErrConflict
		}
		return err
	}

	if next.Status != existing.Status {
		metrics.BugStatusTransitionsTotal.WithLabelValues(string(next.Status)).Inc()
	}
	s.logger.Info().
		Int64("bug_id", id).
		Int64("caller_id", caller.ID).
		Str("role", caller.Role).
		Str("status", string(next.Status)).
		Msg("bug updated")

	return nil
}

func (s *BugService) DeleteBug(ctx context.Context, caller domain.Caller, id int64) error {
	existing, err := s.bugs.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := domain.DecideDelete(caller, *existing); err != nil {
		metrics.BugWritesDeniedTotal.WithLabelValues(caller.Role, "delete").Inc()
		return err
	}

	if err := s.bugs.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("bug_id", id).Int64("caller_id", caller.ID).Msg("bug deleted")
	return nil
}

// detail resolves reporter/assignee summaries, memoizing lookups across a
// single list call.
func (s *BugService) detail(ctx context.Context, b *domain.Bug, cache map[int64]*ports.EmployeeSummary) (*ports.BugDetail, error) {
	d := &ports.BugDetail{
		ID:             b.ID,
		Name:           b.Name,
		Description:    b.Description,
		ReportedByID:   b.ReportedByID,
		Status:         b.Status,
		AssignedToID:   b.AssignedToID,
		ReportedAt:     b.ReportedAt,
		AssignedAt:     b.AssignedAt,
		LastModifiedAt: b.LastModifiedAt,
		IsModifiable:   b.IsModifiable,
	}

	var err error
	if d.ReportedBy, err = s.summary(ctx, b.ReportedByID, cache); err != nil {
		return nil, err
	}
	if b.AssignedToID != nil {
		if d.AssignedTo, err = s.summary(ctx, *b.AssignedToID, cache); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (s *BugService) summary(ctx context.Context, id int64, cache map[int64]*ports.EmployeeSummary) (*ports.EmployeeSummary, error) {
	if sum, ok := cache[id]; ok {
		return sum, nil
	}

	e, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			// A dangling reference would be a referential-integrity breach;
			// tolerate it on reads rather than failing the whole listing.
			s.logger.Warn().Int64("employee_id", id).Msg("bug references missing employee")
			cache[id] = nil
			return nil, nil
		}
		return nil, err
	}

	sum := &ports.EmployeeSummary{
		ID:        e.ID,
		Username:  e.Username,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Role:      e.Role,
	}
	cache[id] = sum
	return sum, nil
}

func toBug(in ports.BugInput) domain.Bug {
	return domain.Bug{
		ID:           in.ID,
		Name:         in.Name,
		Description:  in.Description,
		ReportedByID: in.ReportedByID,
		Status:       in.Status,
		AssignedToID: in.AssignedToID,
		IsModifiable: in.IsModifiable,
	}
}
