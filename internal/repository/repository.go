package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Employee         EmployeeRepository
	Section          SectionRepository
	EmploymentStatus EmploymentStatusRepository
	Contract         ContractRepository
	Assignment       AssignmentRepository
	Resignation      ResignationRepository
	Timeline         TimelineRepository
	ActivityLog      ActivityLogRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:               db,
		Employee:         NewEmployeeRepo(db),
		Section:          NewSectionRepo(db),
		EmploymentStatus: NewEmploymentStatusRepo(db),
		Contract:         NewContractRepo(db),
		Assignment:       NewAssignmentRepo(db),
		Resignation:      NewResignationRepo(db),
		Timeline:         NewTimelineRepo(db),
		ActivityLog:      NewActivityLogRepo(db),
	}
}

// BeginTx 开启事务
// 单元测试中以 mock 字段构造的聚合没有底层连接，此时返回 nil 事务，
// 调用方需对 nil 事务做空值容忍（与 WithTx 的降级策略配套）
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository 聚合；tx 为 nil 时返回自身
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
