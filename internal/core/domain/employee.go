package domain

import "time"

const (
	RoleAdministrator = "Administrator"
	RoleTester        = "Tester"
	RoleProgrammer    = "Programmer"
)

// ValidRole reports whether role belongs to the fixed role vocabulary.
func ValidRole(role string) bool {
	switch role {
	case RoleAdministrator, RoleTester, RoleProgrammer:
		return true
	}
	return false
}

// Employee models an authenticated actor in the system.
type Employee struct {
	ID           int64     `json:"employeeId"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email,omitempty"`
	Role         string    `json:"role"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
