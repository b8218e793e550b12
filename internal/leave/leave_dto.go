package leave

// SubmitLeaveRequest is bound from the multipart form; the attachment file
// itself is handled separately by the handler.
type SubmitLeaveRequest struct {
	LeaveTypeID int64  `form:"leave_type_id" binding:"required"`
	StartDate   string `form:"start_date" binding:"required"`
	EndDate     string `form:"end_date" binding:"required"`
	Reason      string `form:"reason"`
	ApproverID  int64  `form:"approver_id" binding:"required"`
}

type DecideLeaveRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

type LeaveRequestResponse struct {
	ID             int64   `json:"id"`
	RequestNumber  string  `json:"request_number"`
	EmployeeID     int64   `json:"employee_id"`
	LeaveTypeID    int64   `json:"leave_type_id"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalDays      int     `json:"total_days"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	ApproverID     int64   `json:"approver_id"`
	AttachmentPath *string `json:"attachment_path,omitempty"`
}

type DecisionResponse struct {
	ID           int64  `json:"id"`
	Status       string `json:"status"`
	ApprovalDate string `json:"approval_date"`
}

type BalanceResponse struct {
	LeaveTypeID   int64  `json:"leave_type_id"`
	TypeName      string `json:"type_name"`
	Year          int    `json:"year"`
	RemainingDays int    `json:"remaining_days"`
}

type HistoryItemResponse struct {
	ID        int64  `json:"id"`
	TypeName  string `json:"type_name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	TotalDays int    `json:"total_days"`
	Status    string `json:"status"`
}

type PendingRequestResponse struct {
	ID             int64   `json:"id"`
	RequestNumber  string  `json:"request_number"`
	EmployeeName   string  `json:"employee_name"`
	TypeName       string  `json:"type_name"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalDays      int     `json:"total_days"`
	Reason         string  `json:"reason"`
	AttachmentPath *string `json:"attachment_path,omitempty"`
}
