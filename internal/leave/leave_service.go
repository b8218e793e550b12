package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/preyapanngam2004-art/leave-project/internal/employee"
	"github.com/preyapanngam2004-art/leave-project/internal/events"
	leaveerrors "github.com/preyapanngam2004-art/leave-project/internal/leave/errors"
	"github.com/preyapanngam2004-art/leave-project/internal/messaging/kafka"
	"github.com/preyapanngam2004-art/leave-project/internal/shared/contextutil"
	"github.com/preyapanngam2004-art/leave-project/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID int64, req SubmitLeaveRequest, attachmentPath *string) (LeaveRequestResponse, error)
	Decide(ctx context.Context, actorEmployeeID, requestID int64, status string) (DecisionResponse, error)
	Balances(ctx context.Context, employeeID int64) ([]BalanceResponse, error)
	History(ctx context.Context, employeeID int64) ([]HistoryItemResponse, error)
	PendingForApprover(ctx context.Context, approverID int64) ([]PendingRequestResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		counter:   counterRepo,
		outbox:    outboxRepo,
		logger:    l,
	}
}

// Submit runs the balance-checked submission as one transaction. The balance
// row is locked for the duration so two concurrent submissions cannot both
// pass the check against a stale value. The balance itself is NOT decremented
// here; that happens at approval.
func (s *service) Submit(ctx context.Context, employeeID int64, req SubmitLeaveRequest, attachmentPath *string) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.Int64("employee_id", employeeID),
		zap.Int64("leave_type_id", req.LeaveTypeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDateRange
	}
	totalDays := TotalDays(startDate, endDate)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	remaining, found, err := qtx.RemainingDaysForUpdate(ctx, employeeID, req.LeaveTypeID, startDate.Year())
	if err != nil {
		s.logger.Error("submit leave balance read failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if !found || remaining < totalDays {
		s.logger.Warn("submit leave insufficient balance",
			zap.Int64("employee_id", employeeID),
			zap.Int64("leave_type_id", req.LeaveTypeID),
			zap.Int("remaining_days", remaining),
			zap.Int("total_days", totalDays),
			zap.Bool("balance_found", found),
		)
		return LeaveRequestResponse{}, leaveerrors.ErrInsufficientBalance
	}

	nextVal, err := s.counter.GetNextValue(ctx, "leave_request_number")
	if err != nil {
		s.logger.Error("submit leave generate number failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	l := &LeaveRequest{
		RequestNumber:  fmt.Sprintf("LR-%06d", nextVal),
		EmployeeID:     employeeID,
		LeaveTypeID:    req.LeaveTypeID,
		StartDate:      startDate,
		EndDate:        endDate,
		Reason:         req.Reason,
		Status:         StatusPending,
		ApproverID:     req.ApproverID,
		AttachmentPath: attachmentPath,
	}

	if err := qtx.CreateRequest(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueSubmittedNotification(ctx, tx, l); err != nil {
		s.logger.Error("submit leave enqueue notification failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.Int64("leave_request_id", l.ID),
		zap.String("request_number", l.RequestNumber),
		zap.Int64("employee_id", employeeID),
		zap.Int("total_days", totalDays),
	)

	return mapToResponse(*l, totalDays), nil
}

// Decide applies a manager's decision as one transaction: the request row is
// locked, guarded against double decisions, and the balance is deducted only
// on approval.
func (s *service) Decide(ctx context.Context, actorEmployeeID, requestID int64, status string) (DecisionResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.Int64("leave_request_id", requestID),
		zap.Int64("actor_employee_id", actorEmployeeID),
		zap.String("target_status", status),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return DecisionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindDecisionRowForUpdate(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DecisionResponse{}, leaveerrors.ErrRequestNotFound
		}
		s.logger.Error("decide leave read failed", zap.Error(err))
		return DecisionResponse{}, err
	}
	if row.Status != StatusPending {
		s.logger.Warn("decide leave already terminal",
			zap.Int64("leave_request_id", requestID),
			zap.String("current_status", row.Status),
		)
		return DecisionResponse{}, leaveerrors.ErrAlreadyDecided
	}
	if row.ApproverID != actorEmployeeID {
		return DecisionResponse{}, leaveerrors.ErrNotDesignatedApprover
	}

	approvalDate := time.Now().UTC()
	if err := qtx.MarkDecided(ctx, requestID, status, approvalDate); err != nil {
		s.logger.Error("decide leave persist failed", zap.Error(err))
		return DecisionResponse{}, err
	}

	if status == StatusApproved {
		if err := qtx.DeductBalance(ctx, row.EmployeeID, row.LeaveTypeID, row.StartDate.Year(), row.TotalDays); err != nil {
			s.logger.Error("decide leave deduct balance failed", zap.Error(err))
			return DecisionResponse{}, err
		}
	}

	if err := s.enqueueDecidedNotification(ctx, tx, row, status); err != nil {
		s.logger.Error("decide leave enqueue notification failed", zap.Error(err))
		return DecisionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.Error(err))
		return DecisionResponse{}, err
	}

	s.logger.Info("decide leave success",
		zap.String("request_id", rid),
		zap.Int64("leave_request_id", requestID),
		zap.String("status", status),
		zap.Int("total_days", row.TotalDays),
	)

	return DecisionResponse{
		ID:           requestID,
		Status:       status,
		ApprovalDate: approvalDate.Format(time.RFC3339),
	}, nil
}

func (s *service) Balances(ctx context.Context, employeeID int64) ([]BalanceResponse, error) {
	rows, err := s.repo.BalancesByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]BalanceResponse, len(rows))
	for i, r := range rows {
		resp[i] = BalanceResponse{
			LeaveTypeID:   r.LeaveTypeID,
			TypeName:      r.TypeName,
			Year:          r.Year,
			RemainingDays: r.RemainingDays,
		}
	}
	return resp, nil
}

func (s *service) History(ctx context.Context, employeeID int64) ([]HistoryItemResponse, error) {
	rows, err := s.repo.HistoryByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]HistoryItemResponse, len(rows))
	for i, r := range rows {
		resp[i] = HistoryItemResponse{
			ID:        r.ID,
			TypeName:  r.TypeName,
			StartDate: r.StartDate.Format("2006-01-02"),
			EndDate:   r.EndDate.Format("2006-01-02"),
			TotalDays: TotalDays(r.StartDate, r.EndDate),
			Status:    r.Status,
		}
	}
	return resp, nil
}

func (s *service) PendingForApprover(ctx context.Context, approverID int64) ([]PendingRequestResponse, error) {
	rows, err := s.repo.PendingByApprover(ctx, approverID)
	if err != nil {
		return nil, err
	}

	resp := make([]PendingRequestResponse, len(rows))
	for i, r := range rows {
		resp[i] = PendingRequestResponse{
			ID:             r.ID,
			RequestNumber:  r.RequestNumber,
			EmployeeName:   r.FirstName + " " + r.LastName,
			TypeName:       r.TypeName,
			StartDate:      r.StartDate.Format("2006-01-02"),
			EndDate:        r.EndDate.Format("2006-01-02"),
			TotalDays:      TotalDays(r.StartDate, r.EndDate),
			Reason:         r.Reason,
			AttachmentPath: r.AttachmentPath,
		}
	}
	return resp, nil
}

// enqueueSubmittedNotification stages the approver notification in the same
// transaction as the request row. A missing recipient address only produces
// a diagnostic; it never blocks the submission.
func (s *service) enqueueSubmittedNotification(ctx context.Context, tx *sql.Tx, l *LeaveRequest) error {
	if s.outbox == nil {
		return nil
	}

	approver, err := s.employees.FindByID(ctx, l.ApproverID)
	if err != nil || approver.Email == "" {
		s.logger.Warn("cannot notify approver, no email on file",
			zap.Int64("approver_id", l.ApproverID),
			zap.Int64("leave_request_id", l.ID),
		)
		return nil
	}

	employeeName := ""
	if emp, err := s.employees.FindByID(ctx, l.EmployeeID); err == nil {
		employeeName = emp.FullName()
	}

	attachment := ""
	if l.AttachmentPath != nil {
		attachment = *l.AttachmentPath
	}

	event := events.LeaveSubmittedEvent{
		EventType:      events.TypeLeaveSubmitted,
		RequestID:      l.ID,
		RequestNumber:  l.RequestNumber,
		EmployeeName:   employeeName,
		Recipient:      approver.Email,
		StartDate:      l.StartDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		Reason:         l.Reason,
		AttachmentPath: attachment,
		OccurredAt:     time.Now().UTC(),
	}

	return s.stageEvent(ctx, tx, event.EventType, l.ID, event)
}

// enqueueDecidedNotification stages the employee notification; a missing
// address is the documented "cannot notify" case.
func (s *service) enqueueDecidedNotification(ctx context.Context, tx *sql.Tx, row *DecisionRow, status string) error {
	if s.outbox == nil {
		return nil
	}

	if row.EmployeeEmail == "" {
		s.logger.Warn("cannot notify employee, no email on file",
			zap.Int64("employee_id", row.EmployeeID),
			zap.Int64("leave_request_id", row.RequestID),
		)
		return nil
	}

	event := events.LeaveDecidedEvent{
		EventType:  events.TypeLeaveDecided,
		RequestID:  row.RequestID,
		Recipient:  row.EmployeeEmail,
		TypeName:   row.TypeName,
		StartDate:  row.StartDate.Format("2006-01-02"),
		Status:     status,
		OccurredAt: time.Now().UTC(),
	}

	return s.stageEvent(ctx, tx, event.EventType, row.RequestID, event)
}

func (s *service) stageEvent(ctx context.Context, tx *sql.Tx, eventType string, aggregateID int64, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   strconv.FormatInt(aggregateID, 10),
		EventType:     eventType,
		Topic:         events.LeaveNotificationsTopic,
		Payload:       data,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest, totalDays int) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:             l.ID,
		RequestNumber:  l.RequestNumber,
		EmployeeID:     l.EmployeeID,
		LeaveTypeID:    l.LeaveTypeID,
		StartDate:      l.StartDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		TotalDays:      totalDays,
		Reason:         l.Reason,
		Status:         l.Status,
		ApproverID:     l.ApproverID,
		AttachmentPath: l.AttachmentPath,
	}
}
