package employee

import "time"

type RegisterEmployeeRequest struct {
	FirstName     *string    `json:"firstName" binding:"required"`
	MiddleName    *string    `json:"middleName"`
	LastName      *string    `json:"lastName" binding:"required"`
	Age           *int       `json:"age" binding:"omitempty,min=0,max=150"`
	Birthday      *time.Time `json:"birthday"`
	Address       *string    `json:"address"`
	Email         *string    `json:"email" binding:"omitempty,email"`
	DepartmentID  *string    `json:"department"`
	WorkStartDate *time.Time `json:"workStartDate"`
	WorkEndDate   *time.Time `json:"workEndDate"`
}

type UpdateEmployeeRequest struct {
	FirstName     *string    `json:"firstName"`
	MiddleName    *string    `json:"middleName"`
	LastName      *string    `json:"lastName"`
	Age           *int       `json:"age" binding:"omitempty,min=0,max=150"`
	Birthday      *time.Time `json:"birthday"`
	Address       *string    `json:"address"`
	Email         *string    `json:"email" binding:"omitempty,email"`
	DepartmentID  *string    `json:"department"`
	WorkStartDate *time.Time `json:"workStartDate"`
	WorkEndDate   *time.Time `json:"workEndDate"`
}

// SearchEmployeeQuery — every criterion optional; present criteria are ANDed.
type SearchEmployeeQuery struct {
	ID           string `form:"id"`
	FirstName    string `form:"firstName"`
	MiddleName   string `form:"middleName"`
	LastName     string `form:"lastName"`
	Age          string `form:"age"`
	Birthday     string `form:"birthday"`
	Address      string `form:"address"`
	Email        string `form:"email"`
	DepartmentID string `form:"department"`
}
