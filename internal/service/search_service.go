package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fieldoffice-hris/internal/dto"
	"fieldoffice-hris/internal/repository"
)

// 检索分页与建议条数约定（页大小固定，越界分页参数收敛到默认值）
const (
	SearchPageSize = 12
	suggestLimit   = 12
)

// SearchService 员工检索业务接口（只读）
type SearchService interface {
	// Search 复合条件检索；有检索词时按七档相关度排序
	Search(ctx context.Context, req *dto.SearchEmployeesRequest) ([]dto.EmployeeResponse, int64, error)
	// Suggest 公共目录输入建议（五档简化排序，至多 12 条，最小投影）
	Suggest(ctx context.Context, term string) ([]dto.SuggestItem, error)
	// Facets 检索页筛选项数据源（科室/聘用状态/职位并集）
	Facets(ctx context.Context) (*dto.SearchFacets, error)
}

type searchService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSearchService 创建 SearchService 实例
func NewSearchService(repo *repository.Repository, logger *zap.Logger) SearchService {
	return &searchService{repo: repo, logger: logger}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchEmployeesRequest) ([]dto.EmployeeResponse, int64, error) {
	// 分页参数就地收敛，供调用方回读生效页码
	if req.Page < 1 {
		req.Page = 1
	}

	// 未知筛选 ID 返回空结果集而非报错
	if req.Section != "" {
		if _, err := s.repo.Section.GetByID(ctx, req.Section); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []dto.EmployeeResponse{}, 0, nil
			}
			s.logger.Error("查询科室失败", zap.Error(err))
			return nil, 0, err
		}
	}
	if req.Status != "" {
		if _, err := s.repo.EmploymentStatus.GetByID(ctx, req.Status); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []dto.EmployeeResponse{}, 0, nil
			}
			s.logger.Error("查询雇佣状态失败", zap.Error(err))
			return nil, 0, err
		}
	}

	filters := &repository.EmployeeSearchFilters{
		Search:          strings.TrimSpace(req.Search),
		SectionID:       req.Section,
		StatusID:        req.Status,
		Position:        strings.TrimSpace(req.Position),
		IncludeArchived: req.Archived,
	}

	offset := (req.Page - 1) * SearchPageSize
	employees, total, err := s.repo.Employee.Search(ctx, filters, offset, SearchPageSize)
	if err != nil {
		s.logger.Error("员工检索失败", zap.Error(err))
		return nil, 0, err
	}

	now := time.Now()
	result := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		result = append(result, *toEmployeeResponse(&employees[i], now))
	}
	return result, total, nil
}

func (s *searchService) Suggest(ctx context.Context, term string) ([]dto.SuggestItem, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []dto.SuggestItem{}, nil
	}

	employees, err := s.repo.Employee.Suggest(ctx, term, suggestLimit)
	if err != nil {
		s.logger.Error("员工建议检索失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.SuggestItem, 0, len(employees))
	for i := range employees {
		e := &employees[i]
		item := dto.SuggestItem{
			ID:         e.EmployeeID,
			FirstName:  e.FirstName,
			MiddleName: e.MiddleName,
			LastName:   e.LastName,
			Position:   e.EffectivePosition(),
		}
		if e.Section != nil {
			item.SectionName = e.Section.Name
		}
		if e.EmploymentStatus != nil {
			item.StatusName = e.EmploymentStatus.Name
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *searchService) Facets(ctx context.Context) (*dto.SearchFacets, error) {
	sections, err := s.repo.Section.List(ctx)
	if err != nil {
		s.logger.Error("查询科室列表失败", zap.Error(err))
		return nil, err
	}
	statuses, err := s.repo.EmploymentStatus.List(ctx)
	if err != nil {
		s.logger.Error("查询雇佣状态列表失败", zap.Error(err))
		return nil, err
	}
	positions, err := s.repo.Employee.ListPositions(ctx)
	if err != nil {
		s.logger.Error("查询职位列表失败", zap.Error(err))
		return nil, err
	}

	facets := &dto.SearchFacets{
		Sections:  make([]dto.SectionResponse, 0, len(sections)),
		Statuses:  make([]dto.EmploymentStatusResponse, 0, len(statuses)),
		Positions: positions,
	}
	for i := range sections {
		facets.Sections = append(facets.Sections, toSectionResponse(&sections[i], 0))
	}
	for i := range statuses {
		facets.Statuses = append(facets.Statuses, toStatusResponse(&statuses[i], 0))
	}
	return facets, nil
}
