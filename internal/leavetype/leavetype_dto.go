package leavetype

type LeaveTypeResponse struct {
	ID       int64  `json:"id"`
	TypeName string `json:"type_name"`
}
