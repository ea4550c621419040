package domain

import "time"

// BugStatus represents the lifecycle state of a bug.
type BugStatus string

const (
	StatusNew        BugStatus = "New"
	StatusAssigned   BugStatus = "Assigned"
	StatusInProgress BugStatus = "In Progress"
	StatusResolved   BugStatus = "Resolved"
	StatusClosed     BugStatus = "Closed"
)

// Terminal reports whether the status ends the reporter's edit window.
// A Resolved or Closed bug is never modifiable by its reporter.
func (s BugStatus) Terminal() bool {
	return s == StatusResolved || s == StatusClosed
}

// Bug is the core aggregate root.
//
// IsModifiable is stored state, not a function of AssignedToID: administrators
// may force it to any value, so it must never be re-derived from assignment.
type Bug struct {
	ID             int64      `json:"bugId"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	ReportedByID   int64      `json:"reportedById"`
	Status         BugStatus  `json:"status"`
	AssignedToID   *int64     `json:"assignedToId"`
	ReportedAt     time.Time  `json:"reportedAt"`
	AssignedAt     *time.Time `json:"assignedAt"`
	LastModifiedAt time.Time  `json:"lastModifiedAt"`
	IsModifiable   bool       `json:"isModifiable"`

	// Version is the optimistic concurrency token; the store rejects updates
	// carrying a stale version.
	Version int64 `json:"-"`
}
