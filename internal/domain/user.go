package domain

import "time"

const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleHOD     = "hod"
	RoleAdmin   = "admin"
)

type User struct {
	ID         uint      `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	DOB        string    `json:"dob"`
	CreatedBy  uint      `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanCreateRole reports whether a user may create an account with the given
// role. Roles form a capability set, not a hierarchy: admins create HODs,
// HODs create faculty, students self-register, admins are seeded once and
// never created at runtime.
func (u User) CanCreateRole(role string) bool {
	switch u.Role {
	case RoleAdmin:
		return role == RoleHOD || role == RoleFaculty || role == RoleStudent
	case RoleHOD:
		return role == RoleFaculty
	default:
		return false
	}
}

// ManagesDepartment reports whether the user may act on resources scoped to
// the given department. Admins bypass the department guard.
func (u User) ManagesDepartment(department string) bool {
	if u.Role == RoleAdmin {
		return true
	}

	return u.Role == RoleHOD && u.Department != "" && u.Department == department
}

func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleFaculty, RoleHOD, RoleAdmin:
		return true
	}

	return false
}
