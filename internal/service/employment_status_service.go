package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fieldoffice-hris/internal/dto"
	"fieldoffice-hris/internal/model"
	"fieldoffice-hris/internal/repository"
)

// ── 聘用状态模块业务错误 ──

var (
	ErrStatusNameExists = errors.New("an employment status with this name already exists")
	ErrStatusInUse      = errors.New("employment status still has employees assigned")
)

// EmploymentStatusService 聘用状态业务接口
type EmploymentStatusService interface {
	Create(ctx context.Context, req *dto.CreateEmploymentStatusRequest, actor Actor) (*dto.EmploymentStatusResponse, error)
	List(ctx context.Context) ([]dto.EmploymentStatusResponse, error)
	ListAll(ctx context.Context) ([]dto.EmploymentStatusResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEmploymentStatusRequest, actor Actor) (*dto.EmploymentStatusResponse, error)
	Archive(ctx context.Context, id string, actor Actor) error
	Restore(ctx context.Context, id string, actor Actor) error
}

type employmentStatusService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmploymentStatusService 创建 EmploymentStatusService 实例
func NewEmploymentStatusService(repo *repository.Repository, logger *zap.Logger) EmploymentStatusService {
	return &employmentStatusService{repo: repo, logger: logger}
}

func (s *employmentStatusService) Create(ctx context.Context, req *dto.CreateEmploymentStatusRequest, actor Actor) (*dto.EmploymentStatusResponse, error) {
	name := normalizeName(req.Name)
	if name == "" {
		return nil, newValidationError("name", "name is required")
	}

	if _, err := s.repo.EmploymentStatus.GetActiveByName(ctx, name); err == nil {
		return nil, ErrStatusNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("按名称查找聘用状态失败", zap.Error(err))
		return nil, err
	}

	status := &model.EmploymentStatus{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.EmploymentStatus.Create(ctx, status); err != nil {
		s.logger.Error("创建聘用状态失败", zap.Error(err))
		return nil, err
	}

	s.record(ctx, actor, status.StatusID, "created", fmt.Sprintf("Employment status created: %s", name), nil, model.JSONMap{"name": name})

	resp := toStatusResponse(status, 0)
	return &resp, nil
}

func (s *employmentStatusService) List(ctx context.Context) ([]dto.EmploymentStatusResponse, error) {
	statuses, err := s.repo.EmploymentStatus.List(ctx)
	if err != nil {
		s.logger.Error("查询聘用状态列表失败", zap.Error(err))
		return nil, err
	}
	return s.withCounts(ctx, statuses)
}

func (s *employmentStatusService) ListAll(ctx context.Context) ([]dto.EmploymentStatusResponse, error) {
	statuses, err := s.repo.EmploymentStatus.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询聘用状态列表失败", zap.Error(err))
		return nil, err
	}
	return s.withCounts(ctx, statuses)
}

func (s *employmentStatusService) withCounts(ctx context.Context, statuses []model.EmploymentStatus) ([]dto.EmploymentStatusResponse, error) {
	result := make([]dto.EmploymentStatusResponse, 0, len(statuses))
	for i := range statuses {
		count, err := s.repo.EmploymentStatus.CountEmployees(ctx, statuses[i].StatusID)
		if err != nil {
			s.logger.Error("统计聘用状态员工数失败", zap.Error(err))
			return nil, err
		}
		result = append(result, toStatusResponse(&statuses[i], count))
	}
	return result, nil
}

func (s *employmentStatusService) Update(ctx context.Context, id string, req *dto.UpdateEmploymentStatusRequest, actor Actor) (*dto.EmploymentStatusResponse, error) {
	status, err := s.repo.EmploymentStatus.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		s.logger.Error("查询聘用状态失败", zap.Error(err))
		return nil, err
	}

	oldValues := model.JSONMap{}
	newValues := model.JSONMap{}

	if req.Name != nil {
		name := normalizeName(*req.Name)
		if name == "" {
			return nil, newValidationError("name", "name is required")
		}
		if name != status.Name {
			if existing, err := s.repo.EmploymentStatus.GetActiveByName(ctx, name); err == nil && existing.StatusID != id {
				return nil, ErrStatusNameExists
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Error("按名称查找聘用状态失败", zap.Error(err))
				return nil, err
			}
			oldValues["name"] = status.Name
			newValues["name"] = name
			status.Name = name
		}
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != status.Description {
		oldValues["description"] = status.Description
		newValues["description"] = strings.TrimSpace(*req.Description)
		status.Description = strings.TrimSpace(*req.Description)
	}

	if len(newValues) > 0 {
		if err := s.repo.EmploymentStatus.Update(ctx, status); err != nil {
			s.logger.Error("更新聘用状态失败", zap.Error(err))
			return nil, err
		}
		s.record(ctx, actor, status.StatusID, "updated", fmt.Sprintf("Employment status updated: %s", status.Name), oldValues, newValues)
	}

	count, err := s.repo.EmploymentStatus.CountEmployees(ctx, status.StatusID)
	if err != nil {
		s.logger.Error("统计聘用状态员工数失败", zap.Error(err))
		return nil, err
	}
	resp := toStatusResponse(status, count)
	return &resp, nil
}

func (s *employmentStatusService) Archive(ctx context.Context, id string, actor Actor) error {
	status, err := s.repo.EmploymentStatus.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStatusNotFound
		}
		s.logger.Error("查询聘用状态失败", zap.Error(err))
		return err
	}
	if status.IsArchived {
		return ErrAlreadyArchived
	}

	count, err := s.repo.EmploymentStatus.CountEmployees(ctx, id)
	if err != nil {
		s.logger.Error("统计聘用状态员工数失败", zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrStatusInUse
	}

	now := time.Now()
	status.IsArchived = true
	status.ArchivedAt = &now
	if err := s.repo.EmploymentStatus.Update(ctx, status); err != nil {
		s.logger.Error("归档聘用状态失败", zap.Error(err))
		return err
	}

	s.record(ctx, actor, status.StatusID, "archived", fmt.Sprintf("Employment status archived: %s", status.Name), nil, nil)
	return nil
}

func (s *employmentStatusService) Restore(ctx context.Context, id string, actor Actor) error {
	status, err := s.repo.EmploymentStatus.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStatusNotFound
		}
		s.logger.Error("查询聘用状态失败", zap.Error(err))
		return err
	}
	if !status.IsArchived {
		return nil
	}

	// 归档期间可能已建立同名状态，恢复前复查唯一性
	if existing, err := s.repo.EmploymentStatus.GetActiveByName(ctx, status.Name); err == nil && existing.StatusID != id {
		return ErrStatusNameExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("按名称查找聘用状态失败", zap.Error(err))
		return err
	}

	status.IsArchived = false
	status.ArchivedAt = nil
	if err := s.repo.EmploymentStatus.Update(ctx, status); err != nil {
		s.logger.Error("恢复聘用状态失败", zap.Error(err))
		return err
	}

	s.record(ctx, actor, status.StatusID, "restored", fmt.Sprintf("Employment status restored: %s", status.Name), nil, nil)
	return nil
}

func (s *employmentStatusService) record(ctx context.Context, actor Actor, subjectID, action, description string, oldValues, newValues model.JSONMap) {
	logEntry := &model.ActivityLog{
		SubjectType: model.SubjectEmploymentStatus,
		SubjectID:   subjectID,
		Action:      action,
		Description: description,
		OldValues:   oldValues,
		NewValues:   newValues,
		ActorID:     actor.causerID(),
		IPAddress:   actor.IP,
		UserAgent:   actor.UserAgent,
	}
	if err := s.repo.ActivityLog.Create(ctx, logEntry); err != nil {
		s.logger.Warn("写入审计日志失败", zap.Error(err))
	}
}
