package employee

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}
