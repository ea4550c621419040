package domain

import "time"

// Caller identifies the authenticated employee performing an operation, as
// extracted from the bearer token. The role is a snapshot taken at token
// issuance: role changes take effect on the next login, not mid-token.
type Caller struct {
	ID   int64
	Role string
}

// DecideCreate authorizes the creation of a bug and returns the record to
// persist. Only testers may report bugs, and only as themselves. Lifecycle
// fields submitted by the caller are ignored and forced to their initial
// values.
func DecideCreate(caller Caller, proposed Bug, now time.Time) (Bug, error) {
	if caller.Role != RoleTester {
		return Bug{}, Denied("only testers can report bugs")
	}
	if proposed.ReportedByID != caller.ID {
		return Bug{}, Denied("you can only report bugs as yourself")
	}

	b := proposed
	b.Status = StatusNew
	b.AssignedToID = nil
	b.AssignedAt = nil
	b.ReportedAt = now
	b.LastModifiedAt = now
	b.IsModifiable = true
	return b, nil
}

// DecideUpdate is the authorization and state-transition engine. Given the
// caller, the stored bug and the caller-submitted desired state, it either
// returns the next state to persist or a DeniedError. It is pure: no I/O, and
// a denial leaves nothing to persist.
//
// Per role:
//   - Administrators overwrite every mutable field unconditionally;
//     AssignedAt is derived from the proposed assignment.
//   - Testers may edit name and description of their own bugs while the bug
//     is still modifiable, and may not change status or assignment.
//   - Programmers may not touch name or description. They may take an
//     unassigned bug for themselves (status forced to Assigned), and on a bug
//     assigned to them they may change status or unassign themselves. Handing
//     the bug to a third party is denied.
//
// unassignResetsStatus controls whether a programmer's self-unassignment also
// resets the status to New; the source system left this undecided, so it is a
// configuration toggle rather than a hard-coded choice.
func DecideUpdate(caller Caller, existing, proposed Bug, now time.Time, unassignResetsStatus bool) (Bug, error) {
	next := existing

	switch caller.Role {
	case RoleAdministrator:
		next.Name = proposed.Name
		next.Description = proposed.Description
		next.Status = proposed.Status
		next.AssignedToID = proposed.AssignedToID
		next.IsModifiable = proposed.IsModifiable
		if proposed.AssignedToID != nil {
			t := now
			next.AssignedAt = &t
		} else {
			next.AssignedAt = nil
		}

	case RoleTester:
		if existing.ReportedByID != caller.ID {
			return Bug{}, Denied("you can only modify bugs you have reported")
		}
		if !existing.IsModifiable {
			return Bug{}, Denied("this bug is currently assigned and cannot be modified by the reporter")
		}
		if existing.Status != proposed.Status || !sameAssignee(existing.AssignedToID, proposed.AssignedToID) {
			return Bug{}, Denied("testers cannot change bug status or assignment")
		}
		next.Name = proposed.Name
		next.Description = proposed.Description

	case RoleProgrammer:
		if existing.Name != proposed.Name || existing.Description != proposed.Description {
			return Bug{}, Denied("programmers cannot modify bug name or description")
		}

		switch {
		case existing.AssignedToID == nil && proposed.AssignedToID != nil && *proposed.AssignedToID == caller.ID:
			// Taking ownership of an unassigned bug. Status is forced,
			// whatever the caller submitted.
			id := caller.ID
			t := now
			next.AssignedToID = &id
			next.AssignedAt = &t
			next.IsModifiable = false
			next.Status = StatusAssigned

		case existing.AssignedToID != nil && *existing.AssignedToID == caller.ID:
			next.Status = proposed.Status
			if proposed.AssignedToID == nil {
				next.AssignedToID = nil
				next.AssignedAt = nil
				next.IsModifiable = true
				if unassignResetsStatus {
					next.Status = StatusNew
				}
			} else if *proposed.AssignedToID != caller.ID {
				return Bug{}, Denied("programmers can only assign bugs to themselves or modify bugs assigned to them")
			}

		default:
			return Bug{}, Denied("you can only modify bugs assigned to you")
		}

		// Resolved/Closed ends the reporter's edit window regardless of
		// which branch produced the status.
		if next.Status.Terminal() {
			next.IsModifiable = false
		}

	default:
		return Bug{}, Denied("unauthorized role")
	}

	next.LastModifiedAt = now
	return next, nil
}

// DecideDelete authorizes deletion of a bug. Administrators may delete any
// bug; testers only their own while still unassigned; programmers never.
func DecideDelete(caller Caller, existing Bug) error {
	switch caller.Role {
	case RoleAdministrator:
		return nil
	case RoleTester:
		if existing.ReportedByID != caller.ID {
			return Denied("you can only delete bugs you have reported")
		}
		if !existing.IsModifiable {
			return Denied("cannot delete an assigned bug")
		}
		return nil
	default:
		return Denied("you are not authorized to delete bugs")
	}
}

func sameAssignee(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
