package leavetype

import "time"

// LeaveType is static reference data (annual, sick, ...). Rows are seeded
// by migration, never written by the API.
type LeaveType struct {
	ID        int64  `gorm:"primaryKey"`
	TypeName  string `gorm:"type:varchar(100);not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveType) TableName() string {
	return "leave_types"
}
