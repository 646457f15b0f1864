package repository

import (
	"context"

	"gorm.io/gorm"

	"fieldoffice-hris/internal/model"
)

// SectionRepository 科室数据访问接口
type SectionRepository interface {
	Create(ctx context.Context, section *model.Section) error
	GetByID(ctx context.Context, id string) (*model.Section, error)
	// GetActiveByName 按名称查找未归档科室（名称唯一性仅约束未归档行）
	GetActiveByName(ctx context.Context, name string) (*model.Section, error)
	List(ctx context.Context) ([]model.Section, error)
	ListAll(ctx context.Context) ([]model.Section, error)
	Update(ctx context.Context, section *model.Section) error
	CountEmployees(ctx context.Context, sectionID string) (int64, error)
}

// sectionRepo SectionRepository 的 GORM 实现
type sectionRepo struct {
	db *gorm.DB
}

// NewSectionRepo 创建 SectionRepository 实例
func NewSectionRepo(db *gorm.DB) SectionRepository {
	return &sectionRepo{db: db}
}

func (r *sectionRepo) Create(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *sectionRepo) GetByID(ctx context.Context, id string) (*model.Section, error) {
	var section model.Section
	err := r.db.WithContext(ctx).
		Where("section_id = ?", id).
		First(&section).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepo) GetActiveByName(ctx context.Context, name string) (*model.Section, error) {
	var section model.Section
	err := r.db.WithContext(ctx).
		Where("name = ? AND is_archived = FALSE", name).
		First(&section).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// List 未归档科室，按名称排序
func (r *sectionRepo) List(ctx context.Context) ([]model.Section, error) {
	var sections []model.Section
	err := r.db.WithContext(ctx).
		Where("is_archived = FALSE").
		Order("name ASC").
		Find(&sections).Error
	return sections, err
}

// ListAll 全部科室（含归档），按名称排序
func (r *sectionRepo) ListAll(ctx context.Context) ([]model.Section, error) {
	var sections []model.Section
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&sections).Error
	return sections, err
}

func (r *sectionRepo) Update(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).Save(section).Error
}

func (r *sectionRepo) CountEmployees(ctx context.Context, sectionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("section_id = ?", sectionID).
		Count(&count).Error
	return count, err
}
