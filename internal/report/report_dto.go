package report

// LeaveReportQuery holds the optional filters; nil or empty means the
// predicate is skipped entirely.
type LeaveReportQuery struct {
	DepartmentID *int64 `form:"department_id"`
	LeaveTypeID  *int64 `form:"leave_type_id"`
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
	Status       string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
}

type LeaveReportRow struct {
	RequestNumber  string `json:"request_number"`
	EmployeeName   string `json:"employee_name"`
	DepartmentName string `json:"department_name"`
	TypeName       string `json:"type_name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	TotalDays      int    `json:"total_days"`
	Status         string `json:"status"`
}
