package auth

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Where("is_active").
		First(&user).Error
	return &user, err
}

func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	return &user, err
}
