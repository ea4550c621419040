package handler

import "time"

// employeeRequest is the Administrator-submitted account state for POST and
// PUT. Password is required on create; on update a blank password keeps the
// stored digest.
type employeeRequest struct {
	EmployeeID int64  `json:"employeeId"`
	Username   string `json:"username"  validate:"required,max=50"`
	Password   string `json:"password"`
	Email      string `json:"email"     validate:"omitempty,email,max=100"`
	Role       string `json:"role"      validate:"required,oneof=Administrator Tester Programmer"`
	FirstName  string `json:"firstName" validate:"required,max=50"`
	LastName   string `json:"lastName"  validate:"required,max=50"`
}

// employeeResponse never carries the password digest.
type employeeResponse struct {
	EmployeeID int64     `json:"employeeId"`
	Username   string    `json:"username"`
	Email      string    `json:"email,omitempty"`
	Role       string    `json:"role"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
