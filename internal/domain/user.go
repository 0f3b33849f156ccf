package domain

import "time"

type StaffRole string

const (
	RoleAdmin   StaffRole = "admin"
	RoleFaculty StaffRole = "faculty"
	RoleWarden  StaffRole = "warden"
)

// StaffUser is a school staff account that reviews admission decisions.
// Staff accounts belong to exactly one school.
type StaffUser struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         StaffRole `json:"role"`
	SchoolID     int32     `json:"school_id"`
	IsActive     bool      `json:"is_active"`
	CreatedOn    time.Time `json:"created_on"`
}
