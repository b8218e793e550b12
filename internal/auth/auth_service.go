package auth

import (
	"context"
	"os"
	"strconv"
	"time"

	autherrors "github.com/preyapanngam2004-art/leave-project/internal/auth/errors"
	"github.com/preyapanngam2004-art/leave-project/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
}

func NewService(repo Repository, employeeRepo employee.Repository) Service {
	return &service{repo: repo, employeeRepo: employeeRepo}
}

func (s *service) Login(ctx context.Context, username, password string) (string, string, AuthResponse, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := s.generateToken(user, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(user, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, s.buildResponse(ctx, user), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	newAccessToken, err := s.generateToken(user, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	newRefreshToken, err := s.generateToken(user, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, s.buildResponse(ctx, user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := s.buildResponse(ctx, u)
	return &resp, nil
}

// buildResponse enriches the account with directory data; a missing
// employee row only leaves the display fields empty.
func (s *service) buildResponse(ctx context.Context, user *User) AuthResponse {
	resp := AuthResponse{
		ID:         user.ID,
		EmployeeID: user.EmployeeID,
		Username:   user.Username,
		Role:       user.Role,
	}

	if emp, err := s.employeeRepo.FindByID(ctx, user.EmployeeID); err == nil {
		resp.FullName = emp.FullName()
		resp.Email = emp.Email
	}

	return resp
}

func (s *service) generateToken(user *User, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":     strconv.FormatInt(user.ID, 10),
		"employee_id": strconv.FormatInt(user.EmployeeID, 10),
		"role":        user.Role,
		"exp":         time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
