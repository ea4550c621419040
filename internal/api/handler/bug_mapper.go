package handler

import (
	"time"

	"github.com/devtrack/bug-tracking-system/internal/core/domain"
	"github.com/devtrack/bug-tracking-system/internal/core/ports"
)

// --- Request to service input ---

func toBugInput(req bugRequest) ports.BugInput {
	return ports.BugInput{
		ID:           req.BugID,
		Name:         req.Name,
		Description:  req.Description,
		ReportedByID: req.ReportedByID,
		Status:       domain.BugStatus(req.Status),
		AssignedToID: req.AssignedToID,
		IsModifiable: req.IsModifiable,
	}
}

// --- Service result to HTTP response ---

func toBugResponse(d *ports.BugDetail) bugResponse {
	return bugResponse{
		BugID:          d.ID,
		Name:           d.Name,
		Description:    d.Description,
		ReportedByID:   d.ReportedByID,
		ReportedBy:     toSummaryResponse(d.ReportedBy),
		Status:         string(d.Status),
		AssignedToID:   d.AssignedToID,
		AssignedTo:     toSummaryResponse(d.AssignedTo),
		ReportedAt:     d.ReportedAt.UTC(),
		AssignedAt:     utcPtr(d.AssignedAt),
		LastModifiedAt: d.LastModifiedAt.UTC(),
		IsModifiable:   d.IsModifiable,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func toSummaryResponse(s *ports.EmployeeSummary) *employeeSummaryResponse {
	if s == nil {
		return nil
	}
	return &employeeSummaryResponse{
		EmployeeID: s.ID,
		Username:   s.Username,
		FirstName:  s.FirstName,
		LastName:   s.LastName,
		Role:       s.Role,
	}
}
