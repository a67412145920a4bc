package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleTeacher UserRole = "TEACHER"
	RoleStudent UserRole = "STUDENT"
)

// ValidRole reports whether raw is one of the known roles.
func ValidRole(raw string) bool {
	switch UserRole(raw) {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// User represents an application user stored in the users table. The
// classroom reference is only meaningful for students.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     *string   `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	ClassroomID  *string   `db:"classroom_id" json:"classroomId"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// AdminUserRow is the flattened listing row consumed by the admin users
// table, carrying the resolved classroom name.
type AdminUserRow struct {
	ID            string   `db:"id" json:"id"`
	Username      string   `db:"username" json:"username"`
	FullName      *string  `db:"full_name" json:"full_name"`
	Role          UserRole `db:"role" json:"role"`
	ClassroomName *string  `db:"classroom_name" json:"classroom"`
	ClassroomID   *string  `db:"classroom_id" json:"classroomId"`
}

// TeacherOption is the admin picklist entry for homeroom selection.
type TeacherOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// UserRef is a nested user reference embedded in grade and assignment
// responses.
type UserRef struct {
	ID       string  `json:"id"`
	FullName *string `json:"full_name"`
}
