package service

import (
	"context"
	"sort"
	"time"

	"github.com/devtrack/bug-tracking-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubBugRepo struct {
	bugs   map[int64]*domain.Bug
	nextID int64

	updateErr error // if set, Update returns this error
	// vanishOnConflict deletes the record when Update fails with updateErr,
	// emulating a concurrent delete racing the update.
	vanishOnConflict bool
}

func newStubBugRepo() *stubBugRepo {
	return &stubBugRepo{bugs: make(map[int64]*domain.Bug)}
}

func cloneBug(b *domain.Bug) *domain.Bug {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

func (r *stubBugRepo) FindByID(_ context.Context, id int64) (*domain.Bug, error) {
	b, ok := r.bugs[id]
	if !ok {
		return nil, domain.ErrBugNotFound
	}
	return cloneBug(b), nil
}

func (r *stubBugRepo) List(_ context.Context) ([]*domain.Bug, error) {
	ids := make([]int64, 0, len(r.bugs))
	for id := range r.bugs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*domain.Bug, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneBug(r.bugs[id]))
	}
	return out, nil
}

func (r *stubBugRepo) Create(_ context.Context, b *domain.Bug) (*domain.Bug, error) {
	r.nextID++
	clone := cloneBug(b)
	clone.ID = r.nextID
	clone.Version = 1
	r.bugs[clone.ID] = cloneBug(clone)
	return clone, nil
}

func (r *stubBugRepo) Update(_ context.Context, b *domain.Bug) error {
	if r.updateErr != nil {
		if r.vanishOnConflict {
			delete(r.bugs, b.ID)
		}
		return r.updateErr
	}

	stored, ok := r.bugs[b.ID]
	if !ok {
		return domain.ErrConflict
	}
	// Mirrors the real store: the update filter includes the version.
	if stored.Version != b.Version {
		return domain.ErrConflict
	}
	clone := cloneBug(b)
	clone.Version++
	r.bugs[b.ID] = clone
	return nil
}

func (r *stubBugRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.bugs[id]; !ok {
		return domain.ErrBugNotFound
	}
	delete(r.bugs, id)
	return nil
}

func (r *stubBugRepo) CountByEmployee(_ context.Context, employeeID int64) (int64, error) {
	var n int64
	for _, b := range r.bugs {
		if b.ReportedByID == employeeID || (b.AssignedToID != nil && *b.AssignedToID == employeeID) {
			n++
		}
	}
	return n, nil
}

type stubEmployeeRepo struct {
	employees map[int64]*domain.Employee
	nextID    int64
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[int64]*domain.Employee)}
}

func cloneEmployee(e *domain.Employee) *domain.Employee {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (r *stubEmployeeRepo) seed(e domain.Employee) *domain.Employee {
	if e.ID == 0 {
		r.nextID++
		e.ID = r.nextID
	} else if e.ID > r.nextID {
		r.nextID = e.ID
	}
	r.employees[e.ID] = cloneEmployee(&e)
	return cloneEmployee(&e)
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return cloneEmployee(e), nil
}

func (r *stubEmployeeRepo) FindByUsername(_ context.Context, username string) (*domain.Employee, error) {
	for _, e := range r.employees {
		if e.Username == username {
			return cloneEmployee(e), nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *stubEmployeeRepo) List(_ context.Context) ([]*domain.Employee, error) {
	ids := make([]int64, 0, len(r.employees))
	for id := range r.employees {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*domain.Employee, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneEmployee(r.employees[id]))
	}
	return out, nil
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	for _, existing := range r.employees {
		if existing.Username == e.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	return r.seed(*e), nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, e *domain.Employee) error {
	if _, ok := r.employees[e.ID]; !ok {
		return domain.ErrEmployeeNotFound
	}
	r.employees[e.ID] = cloneEmployee(e)
	return nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.employees[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	return nil
}

func (r *stubEmployeeRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, e := range r.employees {
		if e.Role == role {
			n++
		}
	}
	return n, nil
}

// stubLocker counts acquisitions; tests assert the delete path locks.
type stubLocker struct {
	acquired int
	released int
}

func (l *stubLocker) Acquire(_ context.Context, _ string, _ time.Duration) (func(), error) {
	l.acquired++
	return func() { l.released++ }, nil
}
