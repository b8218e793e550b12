package report

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type reportRow struct {
	RequestNumber  string
	FirstName      string
	LastName       string
	DepartmentName string
	TypeName       string
	StartDate      time.Time
	EndDate        time.Time
	TotalDays      int
	Status         string
}

type Repository interface {
	LeaveRequests(ctx context.Context, q LeaveReportQuery) ([]reportRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// LeaveRequests builds the filtered report query with parameter-bound
// predicates only; filter values never reach the SQL text.
func (r *repository) LeaveRequests(ctx context.Context, q LeaveReportQuery) ([]reportRow, error) {
	query := r.db.WithContext(ctx).
		Table("leave_requests r").
		Select(`r.request_number, e.first_name, e.last_name,
			d.name AS department_name, t.type_name,
			r.start_date, r.end_date,
			(r.end_date - r.start_date + 1) AS total_days,
			r.status`).
		Joins("JOIN employees e ON e.id = r.employee_id").
		Joins("JOIN departments d ON d.id = e.department_id").
		Joins("JOIN leave_types t ON t.id = r.leave_type_id")

	if q.DepartmentID != nil {
		query = query.Where("e.department_id = ?", *q.DepartmentID)
	}
	if q.LeaveTypeID != nil {
		query = query.Where("r.leave_type_id = ?", *q.LeaveTypeID)
	}
	if q.StartDate != "" {
		query = query.Where("r.start_date >= ?", q.StartDate)
	}
	if q.EndDate != "" {
		query = query.Where("r.end_date <= ?", q.EndDate)
	}
	if q.Status != "" {
		query = query.Where("r.status = ?", q.Status)
	}

	var rows []reportRow
	err := query.Order("r.start_date DESC").Scan(&rows).Error
	return rows, err
}
