package domain

import "time"

// Employee mirrors the M_Employee master table. Optional columns stay
// pointers so "not filled in" survives round trips unchanged.
type Employee struct {
	ID            string     `json:"id"`
	FirstName     *string    `json:"first_name,omitempty"`
	MiddleName    *string    `json:"middle_name,omitempty"`
	LastName      *string    `json:"last_name,omitempty"`
	Age           *int       `json:"age,omitempty"`
	Birthday      *time.Time `json:"birthday,omitempty"`
	Address       *string    `json:"address,omitempty"`
	Email         *string    `json:"email,omitempty"`
	DepartmentID  *string    `json:"department,omitempty"`
	WorkStartDate *time.Time `json:"work_start_date,omitempty"`
	WorkEndDate   *time.Time `json:"work_end_date,omitempty"`
	CreatedDate   *time.Time `json:"created_date,omitempty"`
	UpdatedDate   *time.Time `json:"updated_date,omitempty"`
}
