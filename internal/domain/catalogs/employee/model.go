// Package employee provides the Employee catalog.
// Employees receive exported assets as personal custody and sit on
// inventory committees.
package employee

import (
	"context"
	"time"

	"makhzan/internal/core/apperror"
)

// JobTitle defines the employee role.
type JobTitle string

const (
	TitleGeneralManager JobTitle = "gm"
	TitleManager        JobTitle = "manager"
	TitleChief          JobTitle = "chief"
	TitleEmployee       JobTitle = "employee"
	TitleFinancer       JobTitle = "financer"
)

// Employee represents a staff member.
type Employee struct {
	ID           int64      `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	JobTitle     JobTitle   `db:"job_title" json:"jobTitle"`
	DepartmentID int64      `db:"department_id" json:"departmentId"`
	Email        string     `db:"email" json:"email,omitempty"`
	Phone        string     `db:"phone" json:"phone,omitempty"`
	DateEmployed *time.Time `db:"date_employed" json:"dateEmployed,omitempty"`
}

// New creates a new Employee.
func New(name string, title JobTitle, departmentID int64) *Employee {
	return &Employee{
		Name:         name,
		JobTitle:     title,
		DepartmentID: departmentID,
	}
}

// Validate implements domain.Validatable.
func (e *Employee) Validate(ctx context.Context) error {
	if e.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if e.DepartmentID == 0 {
		return apperror.NewValidation("department is required").
			WithDetail("field", "departmentId")
	}
	if !isValidTitle(e.JobTitle) {
		return apperror.NewValidation("invalid job title").
			WithDetail("field", "jobTitle").
			WithDetail("value", string(e.JobTitle))
	}
	return nil
}

func isValidTitle(t JobTitle) bool {
	switch t {
	case TitleGeneralManager, TitleManager, TitleChief, TitleEmployee, TitleFinancer:
		return true
	}
	return false
}
