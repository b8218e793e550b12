package leave

import (
	"time"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// LeaveRequest rows are created by submission and mutated exactly once by a
// decision; they are never deleted.
type LeaveRequest struct {
	ID             int64     `gorm:"primaryKey"`
	RequestNumber  string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	EmployeeID     int64     `gorm:"not null;index"`
	LeaveTypeID    int64     `gorm:"not null"`
	StartDate      time.Time `gorm:"type:date;not null;index"`
	EndDate        time.Time `gorm:"type:date;not null"`
	Reason         string    `gorm:"type:text"`
	Status         string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ApproverID     int64     `gorm:"not null;index"`
	AttachmentPath *string   `gorm:"type:varchar(500)"`
	ApprovalDate   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveBalance is the (employee, type, year) remaining-day tuple. It is read
// and decremented only inside the workflow transactions.
type LeaveBalance struct {
	EmployeeID    int64 `gorm:"primaryKey;autoIncrement:false"`
	LeaveTypeID   int64 `gorm:"primaryKey;autoIncrement:false"`
	Year          int   `gorm:"primaryKey;autoIncrement:false"`
	RemainingDays int   `gorm:"not null"`
	UpdatedAt     time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

// TotalDays is the inclusive day count of a date range. Submission check and
// approval deduction both go through this one definition.
func TotalDays(startDate, endDate time.Time) int {
	return int(endDate.Sub(startDate).Hours()/24) + 1
}
