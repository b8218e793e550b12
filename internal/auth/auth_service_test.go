package auth_test

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"testing"

	"github.com/preyapanngam2004-art/leave-project/internal/auth"
	autherrors "github.com/preyapanngam2004-art/leave-project/internal/auth/errors"
	"github.com/preyapanngam2004-art/leave-project/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuthRepo struct {
	byUsername map[string]*auth.User
	byID       map[int64]*auth.User
}

func (f *fakeAuthRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAuthRepo) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

type fakeEmployeeRepo struct {
	employees map[int64]*employee.Employee
}

func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	if e, ok := f.employees[id]; ok {
		return e, nil
	}
	return nil, sql.ErrNoRows
}

func setupAuthService(t *testing.T) (auth.Service, *fakeAuthRepo) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	assert.NoError(t, err)

	user := &auth.User{
		ID:           1,
		EmployeeID:   4,
		Username:     "somchai",
		PasswordHash: string(hash),
		Role:         "EMPLOYEE",
		IsActive:     true,
	}
	repo := &fakeAuthRepo{
		byUsername: map[string]*auth.User{"somchai": user},
		byID:       map[int64]*auth.User{1: user},
	}
	employees := &fakeEmployeeRepo{employees: map[int64]*employee.Employee{
		4: {ID: 4, FirstName: "Somchai", LastName: "Dee", Email: "somchai@example.com"},
	}}

	return auth.NewService(repo, employees), repo
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, _ := setupAuthService(t)

		access, refresh, resp, err := svc.Login(ctx, "somchai", "s3cret")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Somchai Dee", resp.FullName)
		assert.Equal(t, "somchai@example.com", resp.Email)
	})

	t.Run("token carries identity claims", func(t *testing.T) {
		svc, _ := setupAuthService(t)

		access, _, _, err := svc.Login(ctx, "somchai", "s3cret")
		assert.NoError(t, err)

		token, err := jwt.Parse(access, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		assert.NoError(t, err)

		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, strconv.FormatInt(1, 10), claims["user_id"])
		assert.Equal(t, strconv.FormatInt(4, 10), claims["employee_id"])
		assert.Equal(t, "EMPLOYEE", claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := setupAuthService(t)

		_, _, _, err := svc.Login(ctx, "somchai", "wrong")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		svc, _ := setupAuthService(t)

		_, _, _, err := svc.Login(ctx, "nobody", "s3cret")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates both tokens", func(t *testing.T) {
		svc, _ := setupAuthService(t)

		_, refresh, _, err := svc.Login(ctx, "somchai", "s3cret")
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, "somchai", resp.Username)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc, _ := setupAuthService(t)

		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, _ := setupAuthService(t)

		resp, err := svc.GetMe(ctx, "1")

		assert.NoError(t, err)
		assert.Equal(t, "somchai", resp.Username)
		assert.Equal(t, int64(4), resp.EmployeeID)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		svc, _ := setupAuthService(t)

		_, err := svc.GetMe(ctx, "abc")

		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, _ := setupAuthService(t)

		_, err := svc.GetMe(ctx, "999")

		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}
