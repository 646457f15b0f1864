package repository

import (
	"context"

	"gorm.io/gorm"

	"fieldoffice-hris/internal/model"
)

// EmploymentStatusRepository 聘用状态数据访问接口
type EmploymentStatusRepository interface {
	Create(ctx context.Context, status *model.EmploymentStatus) error
	GetByID(ctx context.Context, id string) (*model.EmploymentStatus, error)
	GetActiveByName(ctx context.Context, name string) (*model.EmploymentStatus, error)
	List(ctx context.Context) ([]model.EmploymentStatus, error)
	ListAll(ctx context.Context) ([]model.EmploymentStatus, error)
	Update(ctx context.Context, status *model.EmploymentStatus) error
	CountEmployees(ctx context.Context, statusID string) (int64, error)
}

// employmentStatusRepo EmploymentStatusRepository 的 GORM 实现
type employmentStatusRepo struct {
	db *gorm.DB
}

// NewEmploymentStatusRepo 创建 EmploymentStatusRepository 实例
func NewEmploymentStatusRepo(db *gorm.DB) EmploymentStatusRepository {
	return &employmentStatusRepo{db: db}
}

func (r *employmentStatusRepo) Create(ctx context.Context, status *model.EmploymentStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *employmentStatusRepo) GetByID(ctx context.Context, id string) (*model.EmploymentStatus, error) {
	var status model.EmploymentStatus
	err := r.db.WithContext(ctx).
		Where("status_id = ?", id).
		First(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *employmentStatusRepo) GetActiveByName(ctx context.Context, name string) (*model.EmploymentStatus, error) {
	var status model.EmploymentStatus
	err := r.db.WithContext(ctx).
		Where("name = ? AND is_archived = FALSE", name).
		First(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *employmentStatusRepo) List(ctx context.Context) ([]model.EmploymentStatus, error) {
	var statuses []model.EmploymentStatus
	err := r.db.WithContext(ctx).
		Where("is_archived = FALSE").
		Order("name ASC").
		Find(&statuses).Error
	return statuses, err
}

func (r *employmentStatusRepo) ListAll(ctx context.Context) ([]model.EmploymentStatus, error) {
	var statuses []model.EmploymentStatus
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&statuses).Error
	return statuses, err
}

func (r *employmentStatusRepo) Update(ctx context.Context, status *model.EmploymentStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *employmentStatusRepo) CountEmployees(ctx context.Context, statusID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("employment_status_id = ?", statusID).
		Count(&count).Error
	return count, err
}
