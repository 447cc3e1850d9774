package entity

// UnknownDepartment groups users whose department is null, missing or empty.
const UnknownDepartment = "unknown"

// DepartmentStats is one row of the per-department aggregation.
type DepartmentStats struct {
	Department    string `json:"department"`
	TotalUsers    int64  `json:"totalUsers"`
	ActiveUsers   int64  `json:"activeUsers"`
	InactiveUsers int64  `json:"inactiveUsers"`
}

// NewDepartmentStats derives InactiveUsers from the two counted values.
func NewDepartmentStats(department string, total, active int64) DepartmentStats {
	if department == "" {
		department = UnknownDepartment
	}
	return DepartmentStats{
		Department:    department,
		TotalUsers:    total,
		ActiveUsers:   active,
		InactiveUsers: total - active,
	}
}
