package department_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preyapanngam2004-art/leave-project/internal/department"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeDepartmentRepo struct {
	depts []department.Department
	err   error
}

func (f *fakeDepartmentRepo) FindAll(ctx context.Context) ([]department.Department, error) {
	return f.depts, f.err
}

func TestDepartmentHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		repo := &fakeDepartmentRepo{depts: []department.Department{
			{ID: 1, Name: "Engineering"},
			{ID: 2, Name: "Finance"},
		}}
		h := department.NewHandler(repo)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Engineering")
		assert.Contains(t, w.Body.String(), "Finance")
	})

	t.Run("repository failure is an opaque 500", func(t *testing.T) {
		repo := &fakeDepartmentRepo{err: errors.New("connection reset by peer")}
		h := department.NewHandler(repo)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}
