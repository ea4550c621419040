package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/devtrack/bug-tracking-system/internal/core/domain"
	"github.com/devtrack/bug-tracking-system/internal/core/ports"
)

func newEmployeeService(employees *stubEmployeeRepo, bugs *stubBugRepo, locker *stubLocker) *EmployeeService {
	return NewEmployeeService(employees, bugs, locker, zerolog.Nop())
}

func TestEmployeeService_CreateHashesPassword(t *testing.T) {
	employees, bugs := newStubEmployeeRepo(), newStubBugRepo()
	svc := newEmployeeService(employees, bugs, &stubLocker{})

	created, err := svc.CreateEmployee(context.Background(), ports.EmployeeInput{
		Username: "tess", Password: "plaintext", Role: domain.RoleTester,
		FirstName: "Tess", LastName: "Tester",
	})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	if created.PasswordHash == "plaintext" || created.PasswordHash == "" {
		t.Fatalf("password not hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("plaintext")); err != nil {
		t.Fatalf("stored digest does not match password: %v", err)
	}
}

func TestEmployeeService_CreateDuplicateUsername(t *testing.T) {
	employees, bugs := newStubEmployeeRepo(), newStubBugRepo()
	svc := newEmployeeService(employees, bugs, &stubLocker{})

	if _, err := svc.CreateEmployee(context.Background(), ports.EmployeeInput{Username: "tess", Password: "x", Role: domain.RoleTester}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateEmployee(context.Background(), ports.EmployeeInput{Username: "tess", Password: "y", Role: domain.RoleTester}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestEmployeeService_UpdateKeepsDigestWhenPasswordBlank(t *testing.T) {
	employees, bugs := newStubEmployeeRepo(), newStubBugRepo()
	svc := newEmployeeService(employees, bugs, &stubLocker{})

	created, err := svc.CreateEmployee(context.Background(), ports.EmployeeInput{
		Username: "tess", Password: "original", Role: domain.RoleTester,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.UpdateEmployee(context.Background(), created.ID, ports.EmployeeInput{
		ID: created.ID, Username: "tess", Role: domain.RoleProgrammer, FirstName: "T",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, _ := employees.FindByID(context.Background(), created.ID)
	if stored.PasswordHash != created.PasswordHash {
		t.Errorf("blank password replaced the stored digest")
	}
	if stored.Role != domain.RoleProgrammer {
		t.Errorf("role not updated")
	}
}

func TestEmployeeService_UpdateRehashesNewPassword(t *testing.T) {
	employees, bugs := newStubEmployeeRepo(), newStubBugRepo()
	svc := newEmployeeService(employees, bugs, &stubLocker{})

	created, _ := svc.CreateEmployee(context.Background(), ports.EmployeeInput{
		Username: "tess", Password: "original", Role: domain.RoleTester,
	})

	if err := svc.UpdateEmployee(context.Background(), created.ID, ports.EmployeeInput{
		ID: created.ID, Username: "tess", Role: domain.RoleTester, Password: "changed",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, _ := employees.FindByID(context.Background(), created.ID)
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("changed")); err != nil {
		t.Errorf("new password not stored: %v", err)
	}
}

func TestEmployeeService_UpdateIDMismatch(t *testing.T) {
	svc := newEmployeeService(newStubEmployeeRepo(), newStubBugRepo(), &stubLocker{})
	if err := svc.UpdateEmployee(context.Background(), 1, ports.EmployeeInput{ID: 2}); !errors.Is(err, domain.ErrIDMismatch) {
		t.Fatalf("expected ErrIDMismatch, got %v", err)
	}
}

func TestEmployeeService_DeleteLastAdministratorRefused(t *testing.T) {
	employees, bugs := newStubEmployeeRepo(), newStubBugRepo()
	locker := &stubLocker{}
	svc := newEmployeeService(employees, bugs, locker)

	admin := employees.seed(domain.Employee{Username: "admin", Role: domain.RoleAdministrator})

	err := svc.DeleteEmployee(context.Background(), admin.ID)
	if !errors.Is(err, domain.ErrLastAdministrator) {
		t.Fatalf("expected ErrLastAdministrator, got %v", err)
	}
	if _, findErr := employees.FindByID(context.Background(), admin.ID); findErr != nil {
		t.Errorf("refused delete removed the record: %v", findErr)
	}
	if locker.acquired != 1 || locker.released != 1 {
		t.Errorf("delete did not run under the lock (acquired=%d released=%d)", locker.acquired, locker.released)
	}
}

func TestEmployeeService_DeleteSecondToLastAdministratorAllowed(t *testing.T) {
	employees, bugs := newStubEmployeeRepo(), newStubBugRepo()
	svc := newEmployeeService(employees, bugs, &stubLocker{})

	first := employees.seed(domain.Employee{Username: "admin1", Role: domain.RoleAdministrator})
	employees.seed(domain.Employee{Username: "admin2", Role: domain.RoleAdministrator})

	if err := svc.DeleteEmployee(context.Background(), first.ID); err != nil {
		t.Fatalf("delete with a second admin remaining failed: %v", err)
	}

	// Now only one admin remains: the invariant re-arms.
	remaining, _ := employees.FindByUsername(context.Background(), "admin2")
	if err := svc.DeleteEmployee(context.Background(), remaining.ID); !errors.Is(err, domain.ErrLastAdministrator) {
		t.Fatalf("expected ErrLastAdministrator for the survivor, got %v", err)
	}
}

func TestEmployeeService_DeleteReferencedEmployeeRefused(t *testing.T) {
	employees, bugs := newStubEmployeeRepo(), newStubBugRepo()
	svc := newEmployeeService(employees, bugs, &stubLocker{})

	reporter := employees.seed(domain.Employee{Username: "tess", Role: domain.RoleTester})
	if _, err := bugs.Create(context.Background(), &domain.Bug{
		Name: "x", Description: "y", ReportedByID: reporter.ID, Status: domain.StatusNew, IsModifiable: true,
	}); err != nil {
		t.Fatalf("seed bug: %v", err)
	}

	if err := svc.DeleteEmployee(context.Background(), reporter.ID); !errors.Is(err, domain.ErrEmployeeReferenced) {
		t.Fatalf("expected ErrEmployeeReferenced, got %v", err)
	}
}

func TestEmployeeService_DeleteMissing(t *testing.T) {
	svc := newEmployeeService(newStubEmployeeRepo(), newStubBugRepo(), &stubLocker{})
	if err := svc.DeleteEmployee(context.Background(), 404); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}
