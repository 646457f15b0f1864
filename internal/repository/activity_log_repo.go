package repository

import (
	"context"

	"gorm.io/gorm"

	"fieldoffice-hris/internal/model"
)

// ActivityLogRepository 审计日志数据访问接口（只追加）
type ActivityLogRepository interface {
	Create(ctx context.Context, log *model.ActivityLog) error
	ListBySubject(ctx context.Context, subjectType, subjectID string, limit int) ([]model.ActivityLog, error)
}

// activityLogRepo ActivityLogRepository 的 GORM 实现
type activityLogRepo struct {
	db *gorm.DB
}

// NewActivityLogRepo 创建 ActivityLogRepository 实例
func NewActivityLogRepo(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) Create(ctx context.Context, log *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *activityLogRepo) ListBySubject(ctx context.Context, subjectType, subjectID string, limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.db.WithContext(ctx).
		Where("subject_type = ? AND subject_id = ?", subjectType, subjectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
