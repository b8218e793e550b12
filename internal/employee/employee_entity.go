package employee

import "time"

// Employee is read-only reference data for the leave workflows: the
// directory rows are maintained outside this service.
type Employee struct {
	ID           int64  `gorm:"primaryKey"`
	FirstName    string `gorm:"type:varchar(100);not null"`
	LastName     string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(255)"`
	DepartmentID int64  `gorm:"not null;index"`
	ManagerID    *int64 `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
