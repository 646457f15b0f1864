package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fieldoffice-hris/internal/model"
)

// AssignmentRepository 任职记录数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	GetOpenByEmployee(ctx context.Context, employeeID string) (*model.Assignment, error)
	// CloseOpen 结束员工当前未结束的任职记录
	CloseOpen(ctx context.Context, employeeID string, endDate time.Time) error
	ListByEmployee(ctx context.Context, employeeID string) ([]model.Assignment, error)
	Count(ctx context.Context) (int64, error)
	CountOpen(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]model.Assignment, error)
	ListSince(ctx context.Context, from *time.Time) ([]model.Assignment, error)
}

// assignmentRepo AssignmentRepository 的 GORM 实现
type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) GetOpenByEmployee(ctx context.Context, employeeID string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Section").
		Where("employee_id = ? AND end_date IS NULL", employeeID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) CloseOpen(ctx context.Context, employeeID string, endDate time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("employee_id = ? AND end_date IS NULL", employeeID).
		Update("end_date", endDate).Error
}

func (r *assignmentRepo) ListByEmployee(ctx context.Context, employeeID string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Section").
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Assignment{}).Count(&count).Error
	return count, err
}

func (r *assignmentRepo) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("end_date IS NULL").
		Count(&count).Error
	return count, err
}

func (r *assignmentRepo) ListRecent(ctx context.Context, limit int) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.Section").
		Preload("Section").
		Order("created_at DESC").
		Limit(limit).
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListSince(ctx context.Context, from *time.Time) ([]model.Assignment, error) {
	db := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.Section").
		Preload("Section")
	if from != nil {
		db = db.Where("start_date >= ?", *from)
	}
	var assignments []model.Assignment
	err := db.Order("start_date ASC").Find(&assignments).Error
	return assignments, err
}
