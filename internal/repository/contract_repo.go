package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fieldoffice-hris/internal/model"
)

// ContractRepository 合同数据访问接口
type ContractRepository interface {
	Create(ctx context.Context, contract *model.Contract) error
	GetActiveByEmployee(ctx context.Context, employeeID string) (*model.Contract, error)
	// CloseActive 将员工所有 Active 合同置为 Expired 并写入结束日期
	CloseActive(ctx context.Context, employeeID string, endDate time.Time) error
	ListByEmployee(ctx context.Context, employeeID string) ([]model.Contract, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]model.Contract, error)
	// ListSince 导出视图数据源；from 为 nil 时不限时间窗口
	ListSince(ctx context.Context, from *time.Time) ([]model.Contract, error)
}

// contractRepo ContractRepository 的 GORM 实现
type contractRepo struct {
	db *gorm.DB
}

// NewContractRepo 创建 ContractRepository 实例
func NewContractRepo(db *gorm.DB) ContractRepository {
	return &contractRepo{db: db}
}

func (r *contractRepo) Create(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *contractRepo) GetActiveByEmployee(ctx context.Context, employeeID string) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status = ?", employeeID, model.ContractStatusActive).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepo) CloseActive(ctx context.Context, employeeID string, endDate time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Contract{}).
		Where("employee_id = ? AND status = ?", employeeID, model.ContractStatusActive).
		Updates(map[string]interface{}{
			"status":   model.ContractStatusExpired,
			"end_date": endDate,
		}).Error
}

func (r *contractRepo) ListByEmployee(ctx context.Context, employeeID string) ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&contracts).Error
	return contracts, err
}

func (r *contractRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Contract{}).Count(&count).Error
	return count, err
}

func (r *contractRepo) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Contract{}).
		Where("status = ?", model.ContractStatusActive).
		Count(&count).Error
	return count, err
}

func (r *contractRepo) ListRecent(ctx context.Context, limit int) ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.Section").
		Order("created_at DESC").
		Limit(limit).
		Find(&contracts).Error
	return contracts, err
}

func (r *contractRepo) ListSince(ctx context.Context, from *time.Time) ([]model.Contract, error) {
	db := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.Section")
	if from != nil {
		db = db.Where("start_date >= ?", *from)
	}
	var contracts []model.Contract
	err := db.Order("start_date ASC").Find(&contracts).Error
	return contracts, err
}
