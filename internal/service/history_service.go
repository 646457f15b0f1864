package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fieldoffice-hris/config"
	"fieldoffice-hris/internal/dto"
	"fieldoffice-hris/internal/model"
	"fieldoffice-hris/internal/repository"
	"fieldoffice-hris/pkg/redis"
)

// 可导出的数据类型
const (
	ExportTypeContracts    = "contracts"
	ExportTypeAssignments  = "assignments"
	ExportTypeResignations = "resignations"
	ExportTypeAll          = "all"
)

// HistoryPageSize 离职历史列表页大小
const HistoryPageSize = 10

// dashboardCacheKey 仪表盘聚合视图缓存键
const dashboardCacheKey = "hris:dashboard"

// ErrUnknownExportType 导出类型不在支持列表内
var ErrUnknownExportType = errors.New("unknown export type")

// ExportTable 导出结果：表头 + 行（end_date 为空渲染为 Present）
type ExportTable struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// HistoryService 历史投影业务接口（只读派生视图，绝不回写实体状态）
type HistoryService interface {
	// Dashboard 仪表盘聚合视图（可选 Redis 缓存）
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	// ListHistory 离职历史列表（联员工/科室，按姓名/科室/时间窗过滤）
	ListHistory(ctx context.Context, req *dto.HistoryListRequest) ([]dto.HistoryRecordResponse, int64, error)
	// Stats 离职历史统计
	Stats(ctx context.Context) (*dto.HistoryStats, error)
	// Export 合同/任职/离职记录的表格投影
	Export(ctx context.Context, req *dto.ExportRequest) (*ExportTable, error)
	// InvalidateDashboard 生命周期变更后主动失效缓存
	InvalidateDashboard(ctx context.Context)
}

type historyService struct {
	repo   *repository.Repository
	rdb    *redis.Client
	cfg    *config.DashboardConfig
	logger *zap.Logger
}

// NewHistoryService 创建 HistoryService 实例；rdb 为 nil 时跳过缓存
func NewHistoryService(repo *repository.Repository, rdb *redis.Client, cfg *config.DashboardConfig, logger *zap.Logger) HistoryService {
	return &historyService{repo: repo, rdb: rdb, cfg: cfg, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Dashboard
// ════════════════════════════════════════════════════════════

func (s *historyService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	if s.rdb != nil {
		var cached dto.DashboardResponse
		err := s.rdb.GetJSON(ctx, dashboardCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			// 缓存故障降级为直查
			s.logger.Warn("读取仪表盘缓存失败", zap.Error(err))
		}
	}

	resp, err := s.buildDashboard(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.SetJSON(ctx, dashboardCacheKey, resp, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("写入仪表盘缓存失败", zap.Error(err))
		}
	}
	return resp, nil
}

func (s *historyService) InvalidateDashboard(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Delete(ctx, dashboardCacheKey); err != nil {
		s.logger.Warn("失效仪表盘缓存失败", zap.Error(err))
	}
}

func (s *historyService) buildDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	total, err := s.repo.Employee.Count(ctx)
	if err != nil {
		s.logger.Error("统计员工总数失败", zap.Error(err))
		return nil, err
	}
	active, err := s.repo.Employee.CountByArchived(ctx, false)
	if err != nil {
		s.logger.Error("统计在册员工数失败", zap.Error(err))
		return nil, err
	}
	archived, err := s.repo.Employee.CountByArchived(ctx, true)
	if err != nil {
		s.logger.Error("统计已归档员工数失败", zap.Error(err))
		return nil, err
	}
	bySection, err := s.repo.Employee.CountBySection(ctx)
	if err != nil {
		s.logger.Error("按科室统计员工数失败", zap.Error(err))
		return nil, err
	}

	totalContracts, err := s.repo.Contract.Count(ctx)
	if err != nil {
		s.logger.Error("统计合同总数失败", zap.Error(err))
		return nil, err
	}
	activeContracts, err := s.repo.Contract.CountActive(ctx)
	if err != nil {
		s.logger.Error("统计在期合同数失败", zap.Error(err))
		return nil, err
	}
	totalAssignments, err := s.repo.Assignment.Count(ctx)
	if err != nil {
		s.logger.Error("统计任职记录总数失败", zap.Error(err))
		return nil, err
	}
	openAssignments, err := s.repo.Assignment.CountOpen(ctx)
	if err != nil {
		s.logger.Error("统计未结束任职数失败", zap.Error(err))
		return nil, err
	}
	totalResignations, err := s.repo.Resignation.Count(ctx)
	if err != nil {
		s.logger.Error("统计离职记录总数失败", zap.Error(err))
		return nil, err
	}

	recentEmployees, err := s.repo.Employee.ListRecent(ctx, 5)
	if err != nil {
		s.logger.Error("查询近期入职员工失败", zap.Error(err))
		return nil, err
	}
	recentHistory, err := s.mergeRecentRecords(ctx, 3, 5)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Stats: dto.DashboardStats{
			TotalEmployees:    total,
			ActiveEmployees:   active,
			ArchivedEmployees: archived,
		},
		EmployeesBySection: bySection,
		HistoryTotals: dto.HistoryTotals{
			TotalContracts:    totalContracts,
			TotalAssignments:  totalAssignments,
			TotalResignations: totalResignations,
			ActiveRecords:     activeContracts + openAssignments,
		},
		RecentEmployees: make([]dto.RecentEmployee, 0, len(recentEmployees)),
		RecentHistory:   recentHistory,
	}
	for i := range recentEmployees {
		e := &recentEmployees[i]
		item := dto.RecentEmployee{
			ID:          e.EmployeeID,
			FirstName:   e.FirstName,
			MiddleName:  e.MiddleName,
			LastName:    e.LastName,
			Position:    e.EffectivePosition(),
			DateStarted: formatDate(e.DateStarted),
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		}
		if e.Section != nil {
			item.SectionName = e.Section.Name
		}
		if e.EmploymentStatus != nil {
			item.StatusName = e.EmploymentStatus.Name
		}
		resp.RecentEmployees = append(resp.RecentEmployees, item)
	}
	return resp, nil
}

// mergeRecentRecords 三类记录各取最近 perType 条，按创建时间倒序混排取前 limit 条
func (s *historyService) mergeRecentRecords(ctx context.Context, perType, limit int) ([]dto.RecentRecord, error) {
	contracts, err := s.repo.Contract.ListRecent(ctx, perType)
	if err != nil {
		s.logger.Error("查询近期合同失败", zap.Error(err))
		return nil, err
	}
	assignments, err := s.repo.Assignment.ListRecent(ctx, perType)
	if err != nil {
		s.logger.Error("查询近期任职记录失败", zap.Error(err))
		return nil, err
	}
	resignations, err := s.repo.Resignation.ListRecent(ctx, perType)
	if err != nil {
		s.logger.Error("查询近期离职记录失败", zap.Error(err))
		return nil, err
	}

	type stamped struct {
		record    dto.RecentRecord
		createdAt time.Time
	}
	merged := make([]stamped, 0, len(contracts)+len(assignments)+len(resignations))

	for i := range contracts {
		c := &contracts[i]
		start := c.StartDate
		merged = append(merged, stamped{
			createdAt: c.CreatedAt,
			record: dto.RecentRecord{
				ID:           c.ContractID,
				Type:         "Contract",
				EmployeeName: employeeName(c.Employee),
				SectionName:  employeeSectionName(c.Employee),
				Details:      c.ContractType,
				StartDate:    formatDate(&start),
				EndDate:      presentOr(c.EndDate),
				Status:       c.Status,
				CreatedAt:    c.CreatedAt.Format(time.RFC3339),
			},
		})
	}
	for i := range assignments {
		a := &assignments[i]
		start := a.StartDate
		status := "Ended"
		if a.EndDate == nil {
			status = "Current"
		}
		rec := dto.RecentRecord{
			ID:           a.AssignmentID,
			Type:         "Assignment",
			EmployeeName: employeeName(a.Employee),
			Details:      a.Position,
			StartDate:    formatDate(&start),
			EndDate:      presentOr(a.EndDate),
			Status:       status,
			CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		}
		if a.Section != nil {
			rec.SectionName = a.Section.Name
		}
		merged = append(merged, stamped{createdAt: a.CreatedAt, record: rec})
	}
	for i := range resignations {
		r := &resignations[i]
		date := r.ResignationDate
		merged = append(merged, stamped{
			createdAt: r.CreatedAt,
			record: dto.RecentRecord{
				ID:           r.ResignationID,
				Type:         "Resignation",
				EmployeeName: employeeName(r.Employee),
				SectionName:  employeeSectionName(r.Employee),
				Details:      r.Reason,
				StartDate:    formatDate(&date),
				Status:       "Resigned",
				CreatedAt:    r.CreatedAt.Format(time.RFC3339),
			},
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].createdAt.After(merged[j].createdAt)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}

	result := make([]dto.RecentRecord, 0, len(merged))
	for _, m := range merged {
		result = append(result, m.record)
	}
	return result, nil
}

// ════════════════════════════════════════════════════════════
// 离职历史列表与统计
// ════════════════════════════════════════════════════════════

func (s *historyService) ListHistory(ctx context.Context, req *dto.HistoryListRequest) ([]dto.HistoryRecordResponse, int64, error) {
	if req.Page < 1 {
		req.Page = 1
	}

	filters := &repository.HistoryFilters{
		Search:    strings.TrimSpace(req.Search),
		SectionID: req.Section,
		Since:     sinceFromRange(req.DateRange),
	}
	if req.Section != "" {
		if _, err := s.repo.Section.GetByID(ctx, req.Section); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []dto.HistoryRecordResponse{}, 0, nil
			}
			s.logger.Error("查询科室失败", zap.Error(err))
			return nil, 0, err
		}
	}

	offset := (req.Page - 1) * HistoryPageSize
	resignations, total, err := s.repo.Resignation.ListHistory(ctx, filters, offset, HistoryPageSize)
	if err != nil {
		s.logger.Error("查询离职历史失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.HistoryRecordResponse, 0, len(resignations))
	for i := range resignations {
		r := &resignations[i]
		date := r.ResignationDate
		row := dto.HistoryRecordResponse{
			ID:              r.ResignationID,
			EmployeeID:      r.EmployeeID,
			EmployeeName:    employeeName(r.Employee),
			ResignationDate: formatDate(&date),
			Reason:          r.Reason,
			Notes:           r.Notes,
		}
		if r.Employee != nil {
			row.SectionName = employeeSectionName(r.Employee)
			if r.Employee.EmploymentStatus != nil {
				row.StatusName = r.Employee.EmploymentStatus.Name
			}
		}
		result = append(result, row)
	}
	return result, total, nil
}

func (s *historyService) Stats(ctx context.Context) (*dto.HistoryStats, error) {
	total, err := s.repo.Resignation.Count(ctx)
	if err != nil {
		s.logger.Error("统计离职记录总数失败", zap.Error(err))
		return nil, err
	}
	now := time.Now()
	thisMonth, err := s.repo.Resignation.CountInMonth(ctx, now.Year(), now.Month())
	if err != nil {
		s.logger.Error("统计本月离职数失败", zap.Error(err))
		return nil, err
	}
	inactive, err := s.repo.Employee.CountByArchived(ctx, true)
	if err != nil {
		s.logger.Error("统计已归档员工数失败", zap.Error(err))
		return nil, err
	}
	return &dto.HistoryStats{
		TotalResignations:     total,
		ThisMonthResignations: thisMonth,
		InactiveEmployees:     inactive,
	}, nil
}

// ════════════════════════════════════════════════════════════
// Export — 表格投影
// ════════════════════════════════════════════════════════════

func (s *historyService) Export(ctx context.Context, req *dto.ExportRequest) (*ExportTable, error) {
	since := sinceFromRange(req.DateRange)

	switch req.Type {
	case ExportTypeContracts:
		return s.exportContracts(ctx, since)
	case ExportTypeAssignments:
		return s.exportAssignments(ctx, since)
	case ExportTypeResignations:
		return s.exportResignations(ctx, since)
	case ExportTypeAll, "":
		return s.exportAll(ctx, since)
	default:
		return nil, ErrUnknownExportType
	}
}

func (s *historyService) exportContracts(ctx context.Context, since *time.Time) (*ExportTable, error) {
	contracts, err := s.repo.Contract.ListSince(ctx, since)
	if err != nil {
		s.logger.Error("导出查询合同失败", zap.Error(err))
		return nil, err
	}
	table := &ExportTable{
		Name:    "contracts",
		Headers: []string{"Employee Name", "Section", "Contract Type", "Status", "Start Date", "End Date", "Notes"},
	}
	for i := range contracts {
		c := &contracts[i]
		start := c.StartDate
		table.Rows = append(table.Rows, []string{
			employeeName(c.Employee),
			employeeSectionName(c.Employee),
			c.ContractType,
			c.Status,
			formatDate(&start),
			presentOr(c.EndDate),
			c.Notes,
		})
	}
	return table, nil
}

func (s *historyService) exportAssignments(ctx context.Context, since *time.Time) (*ExportTable, error) {
	assignments, err := s.repo.Assignment.ListSince(ctx, since)
	if err != nil {
		s.logger.Error("导出查询任职记录失败", zap.Error(err))
		return nil, err
	}
	table := &ExportTable{
		Name:    "assignments",
		Headers: []string{"Employee Name", "Section", "Position", "Start Date", "End Date", "Notes"},
	}
	for i := range assignments {
		a := &assignments[i]
		start := a.StartDate
		sectionName := employeeSectionName(a.Employee)
		if a.Section != nil {
			sectionName = a.Section.Name
		}
		table.Rows = append(table.Rows, []string{
			employeeName(a.Employee),
			sectionName,
			a.Position,
			formatDate(&start),
			presentOr(a.EndDate),
			a.Notes,
		})
	}
	return table, nil
}

func (s *historyService) exportResignations(ctx context.Context, since *time.Time) (*ExportTable, error) {
	resignations, err := s.repo.Resignation.ListSince(ctx, since)
	if err != nil {
		s.logger.Error("导出查询离职记录失败", zap.Error(err))
		return nil, err
	}
	table := &ExportTable{
		Name:    "resignations",
		Headers: []string{"Employee Name", "Section", "Resignation Date", "Reason", "Notes"},
	}
	for i := range resignations {
		r := &resignations[i]
		date := r.ResignationDate
		table.Rows = append(table.Rows, []string{
			employeeName(r.Employee),
			employeeSectionName(r.Employee),
			formatDate(&date),
			r.Reason,
			r.Notes,
		})
	}
	return table, nil
}

// exportAll 三类记录并集，按起始/事件日期升序
func (s *historyService) exportAll(ctx context.Context, since *time.Time) (*ExportTable, error) {
	contracts, err := s.repo.Contract.ListSince(ctx, since)
	if err != nil {
		s.logger.Error("导出查询合同失败", zap.Error(err))
		return nil, err
	}
	assignments, err := s.repo.Assignment.ListSince(ctx, since)
	if err != nil {
		s.logger.Error("导出查询任职记录失败", zap.Error(err))
		return nil, err
	}
	resignations, err := s.repo.Resignation.ListSince(ctx, since)
	if err != nil {
		s.logger.Error("导出查询离职记录失败", zap.Error(err))
		return nil, err
	}

	type dated struct {
		date time.Time
		row  []string
	}
	merged := make([]dated, 0, len(contracts)+len(assignments)+len(resignations))

	for i := range contracts {
		c := &contracts[i]
		start := c.StartDate
		merged = append(merged, dated{date: c.StartDate, row: []string{
			"Contract",
			employeeName(c.Employee),
			employeeSectionName(c.Employee),
			fmt.Sprintf("%s (%s)", c.ContractType, c.Status),
			formatDate(&start),
			presentOr(c.EndDate),
		}})
	}
	for i := range assignments {
		a := &assignments[i]
		start := a.StartDate
		sectionName := employeeSectionName(a.Employee)
		if a.Section != nil {
			sectionName = a.Section.Name
		}
		merged = append(merged, dated{date: a.StartDate, row: []string{
			"Assignment",
			employeeName(a.Employee),
			sectionName,
			a.Position,
			formatDate(&start),
			presentOr(a.EndDate),
		}})
	}
	for i := range resignations {
		r := &resignations[i]
		date := r.ResignationDate
		merged = append(merged, dated{date: r.ResignationDate, row: []string{
			"Resignation",
			employeeName(r.Employee),
			employeeSectionName(r.Employee),
			r.Reason,
			formatDate(&date),
			"",
		}})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].date.Before(merged[j].date)
	})

	table := &ExportTable{
		Name:    "employment-history",
		Headers: []string{"Record Type", "Employee Name", "Section", "Details", "Start Date", "End Date"},
	}
	for _, m := range merged {
		table.Rows = append(table.Rows, m.row)
	}
	return table, nil
}

// ── 小工具 ──

// sinceFromRange 最近 N 天窗口的下界；0 或负数表示不限
func sinceFromRange(days int) *time.Time {
	if days <= 0 {
		return nil
	}
	t := time.Now().AddDate(0, 0, -days)
	return &t
}

// presentOr 未结束记录的 end_date 渲染为 Present
func presentOr(t *time.Time) string {
	if t == nil {
		return "Present"
	}
	return t.Format(dateLayout)
}

func employeeName(e *model.Employee) string {
	if e == nil {
		return ""
	}
	return e.FullName()
}

func employeeSectionName(e *model.Employee) string {
	if e == nil || e.Section == nil {
		return ""
	}
	return e.Section.Name
}
