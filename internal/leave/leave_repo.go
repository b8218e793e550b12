package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// DecisionRow is everything the decision transaction needs in one locked
// read: current status, the balance tuple, and the notification fields.
type DecisionRow struct {
	RequestID     int64
	EmployeeID    int64
	LeaveTypeID   int64
	ApproverID    int64
	Status        string
	StartDate     time.Time
	TotalDays     int
	EmployeeEmail string
	TypeName      string
}

type BalanceRow struct {
	LeaveTypeID   int64
	TypeName      string
	Year          int
	RemainingDays int
}

type HistoryRow struct {
	ID        int64
	TypeName  string
	StartDate time.Time
	EndDate   time.Time
	Status    string
}

type PendingRow struct {
	ID             int64
	RequestNumber  string
	FirstName      string
	LastName       string
	TypeName       string
	StartDate      time.Time
	EndDate        time.Time
	Reason         string
	AttachmentPath *string
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// Transactional core. These honor WithTx and must only be called
	// inside a transaction.
	RemainingDaysForUpdate(ctx context.Context, employeeID, leaveTypeID int64, year int) (int, bool, error)
	CreateRequest(ctx context.Context, l *LeaveRequest) error
	FindDecisionRowForUpdate(ctx context.Context, requestID int64) (*DecisionRow, error)
	MarkDecided(ctx context.Context, requestID int64, status string, approvalDate time.Time) error
	DeductBalance(ctx context.Context, employeeID, leaveTypeID int64, year, days int) error

	// Single-statement reads, no transaction needed.
	BalancesByEmployee(ctx context.Context, employeeID int64) ([]BalanceRow, error)
	HistoryByEmployee(ctx context.Context, employeeID int64) ([]HistoryRow, error)
	PendingByApprover(ctx context.Context, approverID int64) ([]PendingRow, error)
}

type repository struct {
	gormDB *gorm.DB
	db     *sql.DB
	tx     *sql.Tx
}

func NewRepository(gormDB *gorm.DB, db *sql.DB) Repository {
	return &repository{gormDB: gormDB, db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{gormDB: r.gormDB, db: r.db, tx: tx}
}

// RemainingDaysForUpdate takes the exclusive row lock that serializes
// concurrent submissions against the same balance tuple. The bool result
// reports whether the tuple exists at all.
func (r *repository) RemainingDaysForUpdate(ctx context.Context, employeeID, leaveTypeID int64, year int) (int, bool, error) {
	query := `
SELECT remaining_days
FROM leave_balances
WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
FOR UPDATE
`
	var remaining int
	err := r.queryer().QueryRowContext(ctx, query, employeeID, leaveTypeID, year).Scan(&remaining)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return remaining, true, nil
}

func (r *repository) CreateRequest(ctx context.Context, l *LeaveRequest) error {
	query := `
INSERT INTO leave_requests (
	request_number, employee_id, leave_type_id, start_date, end_date,
	reason, status, approver_id, attachment_path, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
RETURNING id
`
	return r.queryer().QueryRowContext(
		ctx, query,
		l.RequestNumber, l.EmployeeID, l.LeaveTypeID, l.StartDate, l.EndDate,
		l.Reason, l.Status, l.ApproverID, l.AttachmentPath,
	).Scan(&l.ID)
}

func (r *repository) FindDecisionRowForUpdate(ctx context.Context, requestID int64) (*DecisionRow, error) {
	query := `
SELECT
	r.id,
	r.employee_id,
	r.leave_type_id,
	r.approver_id,
	r.status,
	r.start_date,
	(r.end_date - r.start_date + 1) AS total_days,
	COALESCE(e.email, ''),
	t.type_name
FROM leave_requests r
JOIN employees e ON e.id = r.employee_id
JOIN leave_types t ON t.id = r.leave_type_id
WHERE r.id = $1
FOR UPDATE OF r
`
	var row DecisionRow
	err := r.queryer().QueryRowContext(ctx, query, requestID).Scan(
		&row.RequestID,
		&row.EmployeeID,
		&row.LeaveTypeID,
		&row.ApproverID,
		&row.Status,
		&row.StartDate,
		&row.TotalDays,
		&row.EmployeeEmail,
		&row.TypeName,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) MarkDecided(ctx context.Context, requestID int64, status string, approvalDate time.Time) error {
	query := `
UPDATE leave_requests
SET status = $2, approval_date = $3, updated_at = now()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query, requestID, status, approvalDate)
	return err
}

// DeductBalance is an unconditional decrement: the remaining days may go
// negative if the balance shrank between the submission-time check and the
// approval. That matches the documented contract.
func (r *repository) DeductBalance(ctx context.Context, employeeID, leaveTypeID int64, year, days int) error {
	query := `
UPDATE leave_balances
SET remaining_days = remaining_days - $4, updated_at = now()
WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
`
	_, err := r.execer().ExecContext(ctx, query, employeeID, leaveTypeID, year, days)
	return err
}

func (r *repository) BalancesByEmployee(ctx context.Context, employeeID int64) ([]BalanceRow, error) {
	var rows []BalanceRow
	err := r.gormDB.WithContext(ctx).
		Table("leave_balances b").
		Select("b.leave_type_id, t.type_name, b.year, b.remaining_days").
		Joins("JOIN leave_types t ON t.id = b.leave_type_id").
		Where("b.employee_id = ?", employeeID).
		Order("b.year DESC, b.leave_type_id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) HistoryByEmployee(ctx context.Context, employeeID int64) ([]HistoryRow, error) {
	var rows []HistoryRow
	err := r.gormDB.WithContext(ctx).
		Table("leave_requests r").
		Select("r.id, t.type_name, r.start_date, r.end_date, r.status").
		Joins("JOIN leave_types t ON t.id = r.leave_type_id").
		Where("r.employee_id = ?", employeeID).
		Order("r.start_date DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) PendingByApprover(ctx context.Context, approverID int64) ([]PendingRow, error) {
	var rows []PendingRow
	err := r.gormDB.WithContext(ctx).
		Table("leave_requests r").
		Select(`r.id, r.request_number, e.first_name, e.last_name, t.type_name,
			r.start_date, r.end_date, r.reason, r.attachment_path`).
		Joins("JOIN employees e ON e.id = r.employee_id").
		Joins("JOIN leave_types t ON t.id = r.leave_type_id").
		Where("r.approver_id = ?", approverID).
		Where("r.status = ?", StatusPending).
		Order("r.start_date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) queryer() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
