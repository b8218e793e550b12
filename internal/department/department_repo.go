package department

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Department, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).Order("name ASC").Find(&depts).Error
	return depts, err
}
