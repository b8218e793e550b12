package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

type fakeReportRepo struct {
	rows []reportRow
	err  error
	got  LeaveReportQuery
}

func (f *fakeReportRepo) LeaveRequests(ctx context.Context, q LeaveReportQuery) ([]reportRow, error) {
	f.got = q
	return f.rows, f.err
}

func sampleRows() []reportRow {
	return []reportRow{
		{
			RequestNumber:  "LR-000042",
			FirstName:      "Somchai",
			LastName:       "Dee",
			DepartmentName: "Engineering",
			TypeName:       "Annual Leave",
			StartDate:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			TotalDays:      3,
			Status:         "APPROVED",
		},
		{
			RequestNumber:  "LR-000041",
			FirstName:      "Suda",
			LastName:       "Ngam",
			DepartmentName: "Finance",
			TypeName:       "Sick Leave",
			StartDate:      time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
			TotalDays:      1,
			Status:         "PENDING",
		},
	}
}

func TestReportService_Leaves(t *testing.T) {
	ctx := context.Background()

	t.Run("maps rows", func(t *testing.T) {
		repo := &fakeReportRepo{rows: sampleRows()}
		svc := NewService(repo)

		rows, err := svc.Leaves(ctx, LeaveReportQuery{})

		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, "Somchai Dee", rows[0].EmployeeName)
		assert.Equal(t, "2025-03-10", rows[0].StartDate)
		assert.Equal(t, 3, rows[0].TotalDays)
	})

	t.Run("passes filters through", func(t *testing.T) {
		repo := &fakeReportRepo{}
		svc := NewService(repo)

		deptID := int64(3)
		q := LeaveReportQuery{
			DepartmentID: &deptID,
			StartDate:    "2025-01-01",
			EndDate:      "2025-12-31",
			Status:       "APPROVED",
		}
		_, err := svc.Leaves(ctx, q)

		assert.NoError(t, err)
		assert.Equal(t, q, repo.got)
	})

	t.Run("rejects malformed date filter", func(t *testing.T) {
		repo := &fakeReportRepo{}
		svc := NewService(repo)

		_, err := svc.Leaves(ctx, LeaveReportQuery{StartDate: "01/01/2025"})

		assert.Error(t, err)
	})
}

func TestReportService_ExportLeavesXLSX(t *testing.T) {
	ctx := context.Background()

	repo := &fakeReportRepo{rows: sampleRows()}
	svc := NewService(repo)

	data, filename, err := svc.ExportLeavesXLSX(ctx, LeaveReportQuery{})

	assert.NoError(t, err)
	assert.Contains(t, filename, "leave_report_")
	assert.Contains(t, filename, ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer f.Close()

	cell, err := f.GetCellValue("Leave Report", "A1")
	assert.NoError(t, err)
	assert.Equal(t, "Request Number", cell)

	cell, err = f.GetCellValue("Leave Report", "A2")
	assert.NoError(t, err)
	assert.Equal(t, "LR-000042", cell)

	cell, err = f.GetCellValue("Leave Report", "H3")
	assert.NoError(t, err)
	assert.Equal(t, "PENDING", cell)
}
