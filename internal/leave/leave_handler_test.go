package leave_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preyapanngam2004-art/leave-project/internal/leave"
	leaveerrors "github.com/preyapanngam2004-art/leave-project/internal/leave/errors"
	"github.com/preyapanngam2004-art/leave-project/internal/shared/upload"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveService struct {
	SubmitFn             func(ctx context.Context, employeeID int64, req leave.SubmitLeaveRequest, attachmentPath *string) (leave.LeaveRequestResponse, error)
	DecideFn             func(ctx context.Context, actorEmployeeID, requestID int64, status string) (leave.DecisionResponse, error)
	BalancesFn           func(ctx context.Context, employeeID int64) ([]leave.BalanceResponse, error)
	HistoryFn            func(ctx context.Context, employeeID int64) ([]leave.HistoryItemResponse, error)
	PendingForApproverFn func(ctx context.Context, approverID int64) ([]leave.PendingRequestResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, employeeID int64, req leave.SubmitLeaveRequest, attachmentPath *string) (leave.LeaveRequestResponse, error) {
	return f.SubmitFn(ctx, employeeID, req, attachmentPath)
}
func (f *fakeLeaveService) Decide(ctx context.Context, actorEmployeeID, requestID int64, status string) (leave.DecisionResponse, error) {
	return f.DecideFn(ctx, actorEmployeeID, requestID, status)
}
func (f *fakeLeaveService) Balances(ctx context.Context, employeeID int64) ([]leave.BalanceResponse, error) {
	return f.BalancesFn(ctx, employeeID)
}
func (f *fakeLeaveService) History(ctx context.Context, employeeID int64) ([]leave.HistoryItemResponse, error) {
	return f.HistoryFn(ctx, employeeID)
}
func (f *fakeLeaveService) PendingForApprover(ctx context.Context, approverID int64) ([]leave.PendingRequestResponse, error) {
	return f.PendingForApproverFn(ctx, approverID)
}

func newTestHandler(t *testing.T, svc leave.Service) *leave.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := upload.NewStore(t.TempDir())
	assert.NoError(t, err)

	return leave.NewHandler(svc, store, nil)
}

func submitForm(t *testing.T, fields map[string]string, attachment string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		assert.NoError(t, writer.WriteField(k, v))
	}
	if attachment != "" {
		part, err := writer.CreateFormFile("attachment", attachment)
		assert.NoError(t, err)
		_, err = part.Write([]byte("medical certificate"))
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func validSubmitFields() map[string]string {
	return map[string]string{
		"leave_type_id": "2",
		"start_date":    "2025-03-10",
		"end_date":      "2025-03-12",
		"reason":        "family trip",
		"approver_id":   "9",
	}
}

func TestLeaveHandler_Submit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			SubmitFn: func(ctx context.Context, employeeID int64, req leave.SubmitLeaveRequest, attachmentPath *string) (leave.LeaveRequestResponse, error) {
				assert.Equal(t, int64(4), employeeID)
				assert.Equal(t, int64(2), req.LeaveTypeID)
				assert.Nil(t, attachmentPath)
				return leave.LeaveRequestResponse{
					ID:            77,
					RequestNumber: "LR-000042",
					Status:        leave.StatusPending,
					TotalDays:     3,
				}, nil
			},
		}
		h := newTestHandler(t, svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body, contentType := submitForm(t, validSubmitFields(), "")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/leaves", body)
		req.Header.Set("Content-Type", contentType)
		c.Request = req
		c.Set("employee_id", "4")
		c.Set("role", "EMPLOYEE")

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "LR-000042")
	})

	t.Run("stores attachment and passes its path", func(t *testing.T) {
		var gotPath *string
		svc := &fakeLeaveService{
			SubmitFn: func(ctx context.Context, employeeID int64, req leave.SubmitLeaveRequest, attachmentPath *string) (leave.LeaveRequestResponse, error) {
				gotPath = attachmentPath
				return leave.LeaveRequestResponse{ID: 77, Status: leave.StatusPending}, nil
			},
		}
		h := newTestHandler(t, svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body, contentType := submitForm(t, validSubmitFields(), "cert.pdf")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/leaves", body)
		req.Header.Set("Content-Type", contentType)
		c.Request = req
		c.Set("employee_id", "4")
		c.Set("role", "EMPLOYEE")

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		if assert.NotNil(t, gotPath) {
			assert.Contains(t, *gotPath, "cert.pdf")
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		svc := &fakeLeaveService{}
		h := newTestHandler(t, svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		fields := validSubmitFields()
		delete(fields, "leave_type_id")
		body, contentType := submitForm(t, fields, "")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/leaves", body)
		req.Header.Set("Content-Type", contentType)
		c.Request = req
		c.Set("employee_id", "4")
		c.Set("role", "EMPLOYEE")

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("insufficient balance maps to 400", func(t *testing.T) {
		svc := &fakeLeaveService{
			SubmitFn: func(ctx context.Context, employeeID int64, req leave.SubmitLeaveRequest, attachmentPath *string) (leave.LeaveRequestResponse, error) {
				return leave.LeaveRequestResponse{}, leaveerrors.ErrInsufficientBalance
			},
		}
		h := newTestHandler(t, svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body, contentType := submitForm(t, validSubmitFields(), "")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/leaves", body)
		req.Header.Set("Content-Type", contentType)
		c.Request = req
		c.Set("employee_id", "4")
		c.Set("role", "EMPLOYEE")

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "insufficient leave balance")
	})
}

func TestLeaveHandler_Decide(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			DecideFn: func(ctx context.Context, actorEmployeeID, requestID int64, status string) (leave.DecisionResponse, error) {
				assert.Equal(t, int64(9), actorEmployeeID)
				assert.Equal(t, int64(77), requestID)
				assert.Equal(t, leave.StatusApproved, status)
				return leave.DecisionResponse{ID: requestID, Status: status}, nil
			},
		}
		h := newTestHandler(t, svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/leaves/77/decision", strings.NewReader(`{"status":"APPROVED"}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Params = gin.Params{{Key: "id", Value: "77"}}
		c.Set("employee_id", "9")
		c.Set("role", "MANAGER")

		h.Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "APPROVED")
	})

	t.Run("unknown status value", func(t *testing.T) {
		svc := &fakeLeaveService{}
		h := newTestHandler(t, svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/leaves/77/decision", strings.NewReader(`{"status":"MAYBE"}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Params = gin.Params{{Key: "id", Value: "77"}}
		c.Set("employee_id", "9")
		c.Set("role", "MANAGER")

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-numeric request id", func(t *testing.T) {
		svc := &fakeLeaveService{}
		h := newTestHandler(t, svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/leaves/abc/decision", strings.NewReader(`{"status":"APPROVED"}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		c.Set("employee_id", "9")
		c.Set("role", "MANAGER")

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already decided maps to 409", func(t *testing.T) {
		svc := &fakeLeaveService{
			DecideFn: func(ctx context.Context, actorEmployeeID, requestID int64, status string) (leave.DecisionResponse, error) {
				return leave.DecisionResponse{}, leaveerrors.ErrAlreadyDecided
			},
		}
		h := newTestHandler(t, svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/leaves/77/decision", strings.NewReader(`{"status":"REJECTED"}`))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Params = gin.Params{{Key: "id", Value: "77"}}
		c.Set("employee_id", "9")
		c.Set("role", "MANAGER")

		h.Decide(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestLeaveHandler_Balances(t *testing.T) {
	t.Run("employee reads own balances", func(t *testing.T) {
		svc := &fakeLeaveService{
			BalancesFn: func(ctx context.Context, employeeID int64) ([]leave.BalanceResponse, error) {
				assert.Equal(t, int64(4), employeeID)
				return []leave.BalanceResponse{{LeaveTypeID: 2, TypeName: "Annual Leave", Year: 2025, RemainingDays: 7}}, nil
			},
		}
		h := newTestHandler(t, svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/leaves/balances/4", nil)
		c.Params = gin.Params{{Key: "empId", Value: "4"}}
		c.Set("employee_id", "4")
		c.Set("role", "EMPLOYEE")

		h.Balances(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Annual Leave")
	})

	t.Run("employee cannot read another employee", func(t *testing.T) {
		svc := &fakeLeaveService{}
		h := newTestHandler(t, svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/leaves/balances/5", nil)
		c.Params = gin.Params{{Key: "empId", Value: "5"}}
		c.Set("employee_id", "4")
		c.Set("role", "EMPLOYEE")

		h.Balances(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("hr reads any employee", func(t *testing.T) {
		svc := &fakeLeaveService{
			BalancesFn: func(ctx context.Context, employeeID int64) ([]leave.BalanceResponse, error) {
				assert.Equal(t, int64(5), employeeID)
				return nil, nil
			},
		}
		h := newTestHandler(t, svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/leaves/balances/5", nil)
		c.Params = gin.Params{{Key: "empId", Value: "5"}}
		c.Set("employee_id", "1")
		c.Set("role", "HR")

		h.Balances(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLeaveHandler_Pending(t *testing.T) {
	t.Run("manager reads own queue", func(t *testing.T) {
		svc := &fakeLeaveService{
			PendingForApproverFn: func(ctx context.Context, approverID int64) ([]leave.PendingRequestResponse, error) {
				assert.Equal(t, int64(9), approverID)
				return []leave.PendingRequestResponse{{ID: 77, RequestNumber: "LR-000042", EmployeeName: "Somchai Dee"}}, nil
			},
		}
		h := newTestHandler(t, svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/leaves/pending/9", nil)
		c.Params = gin.Params{{Key: "managerId", Value: "9"}}
		c.Set("employee_id", "9")
		c.Set("role", "MANAGER")

		h.Pending(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Somchai Dee")
	})

	t.Run("manager cannot read another queue", func(t *testing.T) {
		svc := &fakeLeaveService{}
		h := newTestHandler(t, svc)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/leaves/pending/8", nil)
		c.Params = gin.Params{{Key: "managerId", Value: "8"}}
		c.Set("employee_id", "9")
		c.Set("role", "MANAGER")

		h.Pending(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
