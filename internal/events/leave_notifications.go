package events

import "time"

// LeaveNotificationsTopic carries both submission and decision notifications;
// the consumer dispatches on event_type.
const LeaveNotificationsTopic = "leave.notifications.v1"

const (
	TypeLeaveSubmitted = "leave.request.submitted"
	TypeLeaveDecided   = "leave.request.decided"
)

type LeaveSubmittedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      int64     `json:"request_id"`
	RequestNumber  string    `json:"request_number"`
	EmployeeName   string    `json:"employee_name"`
	Recipient      string    `json:"recipient"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Reason         string    `json:"reason"`
	AttachmentPath string    `json:"attachment_path,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  int64     `json:"request_id"`
	Recipient  string    `json:"recipient"`
	TypeName   string    `json:"type_name"`
	StartDate  string    `json:"start_date"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
