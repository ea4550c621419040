package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// bugRequest is the caller-submitted desired state of a bug, used for both
// POST and PUT. Status and assignment are accepted on the wire but whether
// they take effect is decided by the authorization rules, never here; status
// is deliberately not validated against the vocabulary because administrator
// writes are trusted as-is.
type bugRequest struct {
	BugID        int64  `json:"bugId"`
	Name         string `json:"name"         validate:"required,max=200"`
	Description  string `json:"description"  validate:"required"`
	ReportedByID int64  `json:"reportedById" validate:"required"`
	Status       string `json:"status"`
	AssignedToID *int64 `json:"assignedToId"`
	IsModifiable bool   `json:"isModifiable"`
}

// --- Response types ---
// Response-only types owned by the transport layer, intentionally separate
// from ports/domain types so the JSON contract is not coupled to internal
// service changes.

type employeeSummaryResponse struct {
	EmployeeID int64  `json:"employeeId"`
	Username   string `json:"username"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Role       string `json:"role"`
}

type bugResponse struct {
	BugID          int64                    `json:"bugId"`
	Name           string                   `json:"name"`
	Description    string                   `json:"description"`
	ReportedByID   int64                    `json:"reportedById"`
	ReportedBy     *employeeSummaryResponse `json:"reportedBy"`
	Status         string                   `json:"status"`
	AssignedToID   *int64                   `json:"assignedToId"`
	AssignedTo     *employeeSummaryResponse `json:"assignedTo"`
	ReportedAt     time.Time                `json:"reportedAt"`
	AssignedAt     *time.Time               `json:"assignedAt"`
	LastModifiedAt time.Time                `json:"lastModifiedAt"`
	IsModifiable   bool                     `json:"isModifiable"`
}
