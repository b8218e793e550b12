package department

import "time"

type Department struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(100);not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Department) TableName() string {
	return "departments"
}
