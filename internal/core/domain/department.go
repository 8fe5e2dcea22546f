package domain

// Department routes documents to a head for review; the dean sits above it.
type Department struct {
	DepartmentID string  `json:"departmentID"`
	Name         string  `json:"name"`
	HeadUserID   *string `json:"headUserID,omitempty"`
	DeanUserID   *string `json:"deanUserID,omitempty"`
}

// AuditActionDepartment is recorded when an admin edits the department directory.
const AuditActionDepartment = "department"

// DefaultDepartments is the directory every fresh installation starts with. The
// Postgres seed migration inserts the same rows.
func DefaultDepartments() []Department {
	return []Department{
		{DepartmentID: "ARCH", Name: "Architecture (Architectural Engineering)"},
		{DepartmentID: "CHE", Name: "Chemical Engineering"},
		{DepartmentID: "CE", Name: "Civil Engineering"},
		{DepartmentID: "ECE", Name: "Electrical and Computer Engineering"},
		{DepartmentID: "EME", Name: "Electromechanical Engineering"},
		{DepartmentID: "ENVE", Name: "Environmental Engineering"},
		{DepartmentID: "ME", Name: "Mechanical Engineering"},
		{DepartmentID: "MINE", Name: "Mining Engineering"},
		{DepartmentID: "SE", Name: "Software Engineering"},
		{DepartmentID: "BIOT", Name: "Biotechnology"},
		{DepartmentID: "FSAN", Name: "Food Science and Applied Nutrition"},
		{DepartmentID: "GEOL", Name: "Geology"},
		{DepartmentID: "ICHM", Name: "Industrial Chemistry"},
		{DepartmentID: "MBA", Name: "Master of Business Administration (MBA)"},
		{DepartmentID: "IM", Name: "Industrial Management"},
		{DepartmentID: "CM", Name: "Construction Management"},
	}
}
