package auth

import (
	"time"
)

// User is a login account bound to exactly one employee. Passwords are
// stored as bcrypt hashes only.
type User struct {
	ID           int64  `gorm:"primaryKey"`
	EmployeeID   int64  `gorm:"not null;uniqueIndex"`
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`
	IsActive     bool   `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}
