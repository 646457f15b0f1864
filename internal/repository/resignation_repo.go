package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fieldoffice-hris/internal/model"
)

// HistoryFilters 离职历史列表筛选条件
type HistoryFilters struct {
	Search    string // 员工姓名自由文本
	SectionID string
	Since     *time.Time // 离职日期下限（最近 N 天窗口）
}

// ResignationRepository 离职记录数据访问接口
type ResignationRepository interface {
	Create(ctx context.Context, resignation *model.Resignation) error
	// GetByEmployeeAndDate 去重键查询：同员工同日期的离职记录最多一条
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*model.Resignation, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]model.Resignation, error)
	ListHistory(ctx context.Context, filters *HistoryFilters, offset, limit int) ([]model.Resignation, int64, error)
	Count(ctx context.Context) (int64, error)
	CountInMonth(ctx context.Context, year int, month time.Month) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]model.Resignation, error)
	ListSince(ctx context.Context, from *time.Time) ([]model.Resignation, error)
}

// resignationRepo ResignationRepository 的 GORM 实现
type resignationRepo struct {
	db *gorm.DB
}

// NewResignationRepo 创建 ResignationRepository 实例
func NewResignationRepo(db *gorm.DB) ResignationRepository {
	return &resignationRepo{db: db}
}

func (r *resignationRepo) Create(ctx context.Context, resignation *model.Resignation) error {
	return r.db.WithContext(ctx).Create(resignation).Error
}

func (r *resignationRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*model.Resignation, error) {
	var resignation model.Resignation
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND resignation_date = ?", employeeID, date).
		First(&resignation).Error
	if err != nil {
		return nil, err
	}
	return &resignation, nil
}

func (r *resignationRepo) ListByEmployee(ctx context.Context, employeeID string) ([]model.Resignation, error) {
	var resignations []model.Resignation
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("resignation_date DESC").
		Find(&resignations).Error
	return resignations, err
}

func (r *resignationRepo) ListHistory(ctx context.Context, filters *HistoryFilters, offset, limit int) ([]model.Resignation, int64, error) {
	db := r.db.WithContext(ctx).
		Model(&model.Resignation{}).
		Joins("JOIN employees ON employees.employee_id = resignations.employee_id")

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		db = db.Where(`(employees.first_name ILIKE ?
			OR employees.last_name ILIKE ?
			OR (employees.first_name || ' ' || COALESCE(employees.middle_name, '') || ' ' || employees.last_name) ILIKE ?)`,
			pattern, pattern, pattern)
	}
	if filters.SectionID != "" {
		db = db.Where("employees.section_id = ?", filters.SectionID)
	}
	if filters.Since != nil {
		db = db.Where("resignations.resignation_date >= ?", *filters.Since)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var resignations []model.Resignation
	err := db.Select("resignations.*").
		Preload("Employee").
		Preload("Employee.Section").
		Preload("Employee.EmploymentStatus").
		Order("resignations.resignation_date DESC").
		Offset(offset).Limit(limit).
		Find(&resignations).Error
	if err != nil {
		return nil, 0, err
	}

	return resignations, total, nil
}

func (r *resignationRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Resignation{}).Count(&count).Error
	return count, err
}

func (r *resignationRepo) CountInMonth(ctx context.Context, year int, month time.Month) (int64, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Resignation{}).
		Where("resignation_date >= ? AND resignation_date < ?", start, end).
		Count(&count).Error
	return count, err
}

func (r *resignationRepo) ListRecent(ctx context.Context, limit int) ([]model.Resignation, error) {
	var resignations []model.Resignation
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.Section").
		Order("created_at DESC").
		Limit(limit).
		Find(&resignations).Error
	return resignations, err
}

func (r *resignationRepo) ListSince(ctx context.Context, from *time.Time) ([]model.Resignation, error) {
	db := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.Section")
	if from != nil {
		db = db.Where("resignation_date >= ?", *from)
	}
	var resignations []model.Resignation
	err := db.Order("resignation_date ASC").Find(&resignations).Error
	return resignations, err
}
