package repository

import (
	"context"

	"gorm.io/gorm"

	"fieldoffice-hris/internal/model"
)

// TimelineRepository 员工时间线数据访问接口（只追加）
type TimelineRepository interface {
	Create(ctx context.Context, event *model.TimelineEvent) error
	ListByEmployee(ctx context.Context, employeeID string) ([]model.TimelineEvent, error)
}

// timelineRepo TimelineRepository 的 GORM 实现
type timelineRepo struct {
	db *gorm.DB
}

// NewTimelineRepo 创建 TimelineRepository 实例
func NewTimelineRepo(db *gorm.DB) TimelineRepository {
	return &timelineRepo{db: db}
}

func (r *timelineRepo) Create(ctx context.Context, event *model.TimelineEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *timelineRepo) ListByEmployee(ctx context.Context, employeeID string) ([]model.TimelineEvent, error) {
	var events []model.TimelineEvent
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("event_date DESC, created_at DESC").
		Find(&events).Error
	return events, err
}
