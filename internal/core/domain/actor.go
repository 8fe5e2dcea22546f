package domain

// Role is the fixed set of roles a verified session can carry.
type Role string

const (
	RoleStudent        Role = "student"
	RoleTeacher        Role = "teacher"
	RoleDepartmentHead Role = "department_head"
	RoleCollegeDean    Role = "college_dean"
	RoleAdmin          Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleDepartmentHead, RoleCollegeDean, RoleAdmin:
		return true
	}
	return false
}

// Actor is the identity performing an operation. It is always passed explicitly;
// nothing in the core reads identity from ambient state.
type Actor struct {
	ID           string `json:"id" validate:"required"`
	Role         Role   `json:"role" validate:"required,oneof=student teacher department_head college_dean admin"`
	DepartmentID string `json:"departmentID"`
	IPAddress    string `json:"-"`
}

// InDepartment reports whether the actor belongs to the given department.
func (a Actor) InDepartment(departmentID string) bool {
	return a.DepartmentID != "" && a.DepartmentID == departmentID
}
