package report

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/preyapanngam2004-art/leave-project/internal/shared/apperror"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Leaves(ctx context.Context, q LeaveReportQuery) ([]LeaveReportRow, error)
	ExportLeavesXLSX(ctx context.Context, q LeaveReportQuery) ([]byte, string, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Leaves(ctx context.Context, q LeaveReportQuery) ([]LeaveReportRow, error) {
	if err := validateDateFilters(q); err != nil {
		return nil, err
	}

	rows, err := s.repo.LeaveRequests(ctx, q)
	if err != nil {
		s.logger.Error("leave report query failed", zap.Error(err))
		return nil, err
	}

	resp := make([]LeaveReportRow, len(rows))
	for i, r := range rows {
		resp[i] = mapReportRow(r)
	}
	return resp, nil
}

// ExportLeavesXLSX renders the same filtered rows as a spreadsheet and
// returns the file bytes plus a dated filename.
func (s *service) ExportLeavesXLSX(ctx context.Context, q LeaveReportQuery) ([]byte, string, error) {
	rows, err := s.Leaves(ctx, q)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leave Report"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{
		"Request Number", "Employee", "Department", "Leave Type",
		"Start Date", "End Date", "Total Days", "Status",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, r := range rows {
		values := []any{
			r.RequestNumber, r.EmployeeName, r.DepartmentName, r.TypeName,
			r.StartDate, r.EndDate, r.TotalDays, r.Status,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("leave report export failed", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("leave_report_%s.xlsx", time.Now().UTC().Format("20060102"))

	s.logger.Info("leave report exported", zap.Int("rows", len(rows)), zap.String("filename", filename))
	return buf.Bytes(), filename, nil
}

func validateDateFilters(q LeaveReportQuery) error {
	for field, v := range map[string]string{"start_date": q.StartDate, "end_date": q.EndDate} {
		if v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return apperror.New(
				apperror.CodeInvalidInput,
				fmt.Sprintf("%s must be a YYYY-MM-DD date", field),
				http.StatusBadRequest,
			)
		}
	}
	return nil
}

func mapReportRow(r reportRow) LeaveReportRow {
	return LeaveReportRow{
		RequestNumber:  r.RequestNumber,
		EmployeeName:   r.FirstName + " " + r.LastName,
		DepartmentName: r.DepartmentName,
		TypeName:       r.TypeName,
		StartDate:      r.StartDate.Format("2006-01-02"),
		EndDate:        r.EndDate.Format("2006-01-02"),
		TotalDays:      r.TotalDays,
		Status:         r.Status,
	}
}
