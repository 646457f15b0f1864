package service

import (
	"go.uber.org/zap"

	"fieldoffice-hris/config"
	"fieldoffice-hris/internal/repository"
	"fieldoffice-hris/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Lifecycle        LifecycleService
	Search           SearchService
	History          HistoryService
	Import           ImportService
	Section          SectionService
	EmploymentStatus EmploymentStatusService
}

// NewService 创建 Service 聚合；rdb 可为 nil（无缓存降级运行）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	lifecycle := NewLifecycleService(repo, logger)
	return &Service{
		Lifecycle:        lifecycle,
		Search:           NewSearchService(repo, logger),
		History:          NewHistoryService(repo, rdb, &cfg.Dashboard, logger),
		Import:           NewImportService(repo, lifecycle, logger),
		Section:          NewSectionService(repo, logger),
		EmploymentStatus: NewEmploymentStatusService(repo, logger),
	}
}
